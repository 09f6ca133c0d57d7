// Package storage persists the bibliography database: a JSONL file as
// the source of truth plus an ephemeral SQLite cache for queries.
package storage

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mr91i/bibmanager/internal/bib"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL
// lines (1MB per line). Raw BibTeX records with long abstracts fit well
// under this.
const MaxJSONLLineCapacity = 1024 * 1024

const (
	entriesFile = "entries.jsonl"
	cacheDir    = "cache"
	cacheDBFile = "entries.db"
)

// EntriesPath returns the JSONL database path under a data root.
func EntriesPath(root string) string {
	return filepath.Join(root, entriesFile)
}

// CachePath returns the cache directory path under a data root.
func CachePath(root string) string {
	return filepath.Join(root, cacheDir)
}

// CacheDBPath returns the SQLite cache path under a data root.
func CacheDBPath(root string) string {
	return filepath.Join(root, cacheDir, cacheDBFile)
}

// ReadAll reads all entries from a JSONL file. A missing file yields an
// empty database, not an error.
func ReadAll(path string) ([]bib.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening entries file: %w", err)
	}
	defer f.Close()

	var entries []bib.Entry
	scanner := bufio.NewScanner(f)

	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var entry bib.Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading entries file: %w", err)
	}

	return entries, nil
}

// WriteAll writes all entries to a JSONL file, replacing existing
// content. The write goes through a temp file in the same directory so
// a crash cannot leave a half-written database behind.
func WriteAll(path string, entries []bib.Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), entriesFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	for i, entry := range entries {
		data, err := json.Marshal(entry)
		if err != nil {
			tmp.Close()
			return fmt.Errorf("encoding entry %d: %w", i, err)
		}
		data = append(data, '\n')
		if _, err := tmp.Write(data); err != nil {
			tmp.Close()
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing entries file: %w", err)
	}
	return nil
}

// FileHash returns the hex SHA-256 of a file's content, or an empty
// string for a missing file.
func FileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
