package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindInitScriptWalksUpward(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	initPath := filepath.Join(root, "a", InitFilename)
	if err := os.WriteFile(initPath, []byte("set ignorecase\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got := FindInitScript(nested)
	if got != initPath {
		t.Fatalf("FindInitScript() = %q, want %q", got, initPath)
	}
}

func TestFindInitScriptMissing(t *testing.T) {
	root := t.TempDir()
	if got := FindInitScript(root); got != "" {
		t.Fatalf("FindInitScript() = %q, want empty", got)
	}
}

func TestReadInitLinesSkipsBlankAndComments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, InitFilename)
	content := "\" a comment\nset ignorecase\n\n\"another comment\nnohlsearch\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	lines, err := ReadInitLines(path)
	if err != nil {
		t.Fatalf("ReadInitLines: %v", err)
	}
	want := []string{"set ignorecase", "nohlsearch"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("lines[%d] = %q, want %q", i, lines[i], want[i])
		}
	}
}

type fakeRunner struct {
	ran []string
	err error
	fail string
}

func (f *fakeRunner) ExecuteLine(line string) error {
	if f.fail != "" && line == f.fail {
		return f.err
	}
	f.ran = append(f.ran, line)
	return nil
}

func TestLoadRunsEachLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, InitFilename)
	if err := os.WriteFile(path, []byte("set ignorecase\nnohlsearch\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	runner := &fakeRunner{}
	if err := Load(dir, runner); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(runner.ran) != 2 {
		t.Fatalf("ran = %v, want 2 lines executed", runner.ran)
	}
}

func TestLoadNoInitScriptIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	runner := &fakeRunner{}
	if err := Load(dir, runner); err != nil {
		t.Fatalf("Load() with no init script = %v, want nil", err)
	}
	if len(runner.ran) != 0 {
		t.Fatalf("ran = %v, want none", runner.ran)
	}
}

func TestLoadStopsOnFirstError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, InitFilename)
	if err := os.WriteFile(path, []byte("set ignorecase\nbogus\nnohlsearch\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	wantErr := os.ErrInvalid
	runner := &fakeRunner{fail: "bogus", err: wantErr}
	err := Load(dir, runner)
	if err != wantErr {
		t.Fatalf("Load() err = %v, want %v", err, wantErr)
	}
	if len(runner.ran) != 1 || runner.ran[0] != "set ignorecase" {
		t.Fatalf("ran = %v, want only the line before the failure", runner.ran)
	}
}
