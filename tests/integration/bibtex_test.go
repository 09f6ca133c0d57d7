// Package integration provides integration tests for bibman commands.
package integration

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

var (
	bibmanBinary     string
	bibmanBinaryErr  error
	bibmanBinaryOnce sync.Once
)

type buildError struct {
	output string
	err    error
}

func (e *buildError) Error() string {
	return fmt.Sprintf("building bibman: %v\n%s", e.err, e.output)
}

// getBibmanBinary builds the bibman binary once and returns its path.
func getBibmanBinary(t *testing.T) string {
	t.Helper()
	bibmanBinaryOnce.Do(func() {
		// Get module root directory
		_, filename, _, ok := runtime.Caller(0)
		if !ok {
			bibmanBinaryErr = os.ErrInvalid
			return
		}
		moduleRoot := filepath.Dir(filepath.Dir(filepath.Dir(filename)))

		tmpDir, err := os.MkdirTemp("", "bibman-test-*")
		if err != nil {
			bibmanBinaryErr = err
			return
		}
		bibmanBinary = filepath.Join(tmpDir, "bibman")

		cmd := exec.Command("go", "build", "-o", bibmanBinary, "./cmd/bibman")
		cmd.Dir = moduleRoot
		if output, err := cmd.CombinedOutput(); err != nil {
			bibmanBinaryErr = &buildError{output: string(output), err: err}
			return
		}
	})
	if bibmanBinaryErr != nil {
		t.Fatal(bibmanBinaryErr)
	}
	return bibmanBinary
}

// setupTestRepo creates a working directory, a database with test
// entries, and a config pointing bibman at that database.
func setupTestRepo(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()

	dataDir := filepath.Join(tmpDir, "refs")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		t.Fatal(err)
	}

	entriesContent := `{"key":"Slipher1913","title":"The radial velocity of the Andromeda Nebula","authors":"{Slipher}, V.~M.","year":1913}
{"key":"Perez1925","title":"The formation of spiral nebulae","authors":"{Perez}, F. and {Granger}, B.~E.","year":1925}
{"key":"Curtis1917","title":"Novae in the Spiral Nebulae and the Island Universe Theory","authors":"{Curtis}, H.~D.","year":1917}
`
	if err := os.WriteFile(filepath.Join(dataDir, "entries.jsonl"), []byte(entriesContent), 0644); err != nil {
		t.Fatal(err)
	}

	configDir := filepath.Join(tmpDir, "config", "bibman")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	configContent := "data_dir: " + dataDir + "\npaper: letter\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yml"), []byte(configContent), 0644); err != nil {
		t.Fatal(err)
	}

	return tmpDir
}

// runBibman runs bibman in repoDir and returns its combined output.
func runBibman(t *testing.T, repoDir string, args ...string) (string, error) {
	t.Helper()
	bin := getBibmanBinary(t)
	cmd := exec.Command(bin, args...)
	cmd.Dir = repoDir
	// Point XDG_CONFIG_HOME at the test config directory (parent of bibman/)
	configHome := filepath.Join(repoDir, "config")
	cmd.Env = append(os.Environ(), "XDG_CONFIG_HOME="+configHome)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func TestBibtexBuild(t *testing.T) {
	repoDir := setupTestRepo(t)

	texContent := `\documentclass{article}
\begin{document}
Radial velocities \citep{Slipher1913} suggested motion
\cite{Perez1925}.
\bibliography{refs}
\end{document}
`
	if err := os.WriteFile(filepath.Join(repoDir, "paper.tex"), []byte(texContent), 0644); err != nil {
		t.Fatal(err)
	}

	output, err := runBibman(t, repoDir, "bibtex", "paper.tex")
	if err != nil {
		t.Fatalf("bibtex failed: %v\nOutput: %s", err, output)
	}

	var result struct {
		Bibfile string   `json:"bibfile"`
		Keys    []string `json:"keys"`
		Missing []string `json:"missing"`
	}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("failed to parse bibtex output: %v\nOutput: %s", err, output)
	}
	if result.Bibfile != "refs.bib" {
		t.Errorf("expected bibfile refs.bib, got %q", result.Bibfile)
	}
	if len(result.Keys) != 2 {
		t.Errorf("expected 2 keys, got %v", result.Keys)
	}
	if len(result.Missing) != 0 {
		t.Errorf("expected no missing keys, got %v", result.Missing)
	}

	bibData, err := os.ReadFile(filepath.Join(repoDir, "refs.bib"))
	if err != nil {
		t.Fatalf("refs.bib not written: %v", err)
	}
	bibText := string(bibData)
	for _, key := range []string{"Slipher1913", "Perez1925"} {
		if !strings.Contains(bibText, key) {
			t.Errorf("refs.bib missing entry %s:\n%s", key, bibText)
		}
	}
	if strings.Contains(bibText, "Curtis1917") {
		t.Errorf("refs.bib holds an uncited entry:\n%s", bibText)
	}
}

func TestBibtexMissingKeys(t *testing.T) {
	repoDir := setupTestRepo(t)

	texContent := `\cite{Slipher1913, Unknown2020}
\bibliography{refs}
`
	if err := os.WriteFile(filepath.Join(repoDir, "paper.tex"), []byte(texContent), 0644); err != nil {
		t.Fatal(err)
	}

	output, err := runBibman(t, repoDir, "bibtex", "paper.tex")
	if err != nil {
		t.Fatalf("bibtex failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "References not found") || !strings.Contains(output, "Unknown2020") {
		t.Errorf("missing keys not reported:\n%s", output)
	}

	// The .bib file is still written with the entries that were found.
	bibData, err := os.ReadFile(filepath.Join(repoDir, "refs.bib"))
	if err != nil {
		t.Fatalf("refs.bib not written: %v", err)
	}
	if !strings.Contains(string(bibData), "Slipher1913") {
		t.Errorf("refs.bib missing found entry:\n%s", bibData)
	}
}

func TestBibtexNoBibliographyDeclaration(t *testing.T) {
	repoDir := setupTestRepo(t)

	texContent := "\\cite{Slipher1913}\n"
	if err := os.WriteFile(filepath.Join(repoDir, "paper.tex"), []byte(texContent), 0644); err != nil {
		t.Fatal(err)
	}

	output, err := runBibman(t, repoDir, "bibtex", "paper.tex")
	if err == nil {
		t.Fatalf("expected failure, got output: %s", output)
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected exit error, got %v", err)
	}
	if exitErr.ExitCode() != 3 {
		t.Errorf("expected exit code 3, got %d", exitErr.ExitCode())
	}
	if !strings.Contains(output, "bibliography") {
		t.Errorf("unexpected error output: %s", output)
	}
	if _, err := os.Stat(filepath.Join(repoDir, "refs.bib")); !os.IsNotExist(err) {
		t.Error("no .bib file should be written without a declaration")
	}
}

func TestBibtexExplicitBibfile(t *testing.T) {
	repoDir := setupTestRepo(t)

	// No \bibliography declaration, but an explicit output name.
	texContent := "\\citet{Curtis1917}\n"
	if err := os.WriteFile(filepath.Join(repoDir, "paper.tex"), []byte(texContent), 0644); err != nil {
		t.Fatal(err)
	}

	output, err := runBibman(t, repoDir, "bibtex", "paper.tex", "out.bib")
	if err != nil {
		t.Fatalf("bibtex failed: %v\nOutput: %s", err, output)
	}
	bibData, err := os.ReadFile(filepath.Join(repoDir, "out.bib"))
	if err != nil {
		t.Fatalf("out.bib not written: %v", err)
	}
	if !strings.Contains(string(bibData), "Curtis1917") {
		t.Errorf("out.bib missing entry:\n%s", bibData)
	}
}
