package storage

import (
	"fmt"

	"github.com/mr91i/bibmanager/internal/bib"
)

// Database is the ordered collection of bibliography entries. Order is
// the JSONL file order; lookups go through a key index. Keys are unique.
type Database struct {
	root    string
	entries []bib.Entry
	byKey   map[string]int
}

// LoadDatabase reads the database under the given data root. A missing
// entries file yields an empty database.
func LoadDatabase(root string) (*Database, error) {
	entries, err := ReadAll(EntriesPath(root))
	if err != nil {
		return nil, err
	}

	db := &Database{root: root, entries: entries, byKey: make(map[string]int, len(entries))}
	for i, e := range entries {
		if _, dup := db.byKey[e.Key]; dup {
			return nil, fmt.Errorf("duplicate key %q in database", e.Key)
		}
		db.byKey[e.Key] = i
	}
	return db, nil
}

// Root returns the data root the database was loaded from.
func (d *Database) Root() string {
	return d.root
}

// Len returns the number of entries.
func (d *Database) Len() int {
	return len(d.entries)
}

// Entries returns all entries in database order.
func (d *Database) Entries() []bib.Entry {
	return d.entries
}

// Keys returns all citation keys in database order.
func (d *Database) Keys() []string {
	keys := make([]string, len(d.entries))
	for i, e := range d.entries {
		keys[i] = e.Key
	}
	return keys
}

// Get returns the entry for a citation key.
func (d *Database) Get(key string) (bib.Entry, bool) {
	i, ok := d.byKey[key]
	if !ok {
		return bib.Entry{}, false
	}
	return d.entries[i], true
}

// FindByDOI returns the first entry with the given DOI.
func (d *Database) FindByDOI(doi string) (bib.Entry, bool) {
	if doi == "" {
		return bib.Entry{}, false
	}
	for _, e := range d.entries {
		if e.DOI == doi {
			return e, true
		}
	}
	return bib.Entry{}, false
}

// Merge folds entries into the database: a new key is appended, an
// existing key is replaced in place. Returns the counts of added and
// updated entries.
func (d *Database) Merge(entries []bib.Entry) (added, updated int) {
	for _, e := range entries {
		if e.Key == "" {
			continue
		}
		if i, ok := d.byKey[e.Key]; ok {
			d.entries[i] = e
			updated++
			continue
		}
		d.byKey[e.Key] = len(d.entries)
		d.entries = append(d.entries, e)
		added++
	}
	return added, updated
}

// Save writes the database back to its data root.
func (d *Database) Save() error {
	return WriteAll(EntriesPath(d.root), d.entries)
}

// Export writes the given entries as a BibTeX file at bibfile.
func (d *Database) Export(entries []bib.Entry, bibfile string) error {
	return bib.WriteFile(bibfile, entries)
}
