package highscore

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "none.txt"), nil)
	if got := f.Load(); got != 0 {
		t.Errorf("Load() = %d, expected 0 for missing file", got)
	}
}

func TestLoadContents(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected int
	}{
		{"plain", "42", 42},
		{"trailing newline", "17\n", 17},
		{"garbage", "not a number", 0},
		{"negative", "-5", 0},
		{"empty", "", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "highscore.txt")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("WriteFile() failed: %v", err)
			}
			if got := NewFile(path, nil).Load(); got != tc.expected {
				t.Errorf("Load() = %d, expected %d", got, tc.expected)
			}
		})
	}
}

func TestSubmitCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "highscore.txt")
	f := NewFile(path, nil)
	if f.Path() != path {
		t.Errorf("Path() = %q, expected %q", f.Path(), path)
	}

	if best, err := f.Submit(128); err != nil || best != 128 {
		t.Fatalf("Submit() = %d, %v", best, err)
	}
	if got := f.Load(); got != 128 {
		t.Errorf("Load() = %d, expected 128", got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if string(data) != "128" {
		t.Errorf("file content = %q, expected plain decimal", data)
	}
}

func TestSubmitFailureIsReported(t *testing.T) {
	dir := t.TempDir()
	// A regular file where a directory is expected.
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	f := NewFile(filepath.Join(blocker, "highscore.txt"), nil)
	if _, err := f.Submit(1); err == nil {
		t.Error("Submit() should fail when the parent is a file")
	}
	if got := f.Load(); got != 0 {
		t.Errorf("Load() = %d, expected 0 after failed save", got)
	}
}

func TestSubmitKeepsHigherScore(t *testing.T) {
	tests := []struct {
		name     string
		stored   int
		score    int
		expected int
	}{
		{"beats stored", 5, 9, 9},
		{"ties stored", 5, 5, 5},
		{"below stored", 20, 6, 20},
		{"empty file", 0, 3, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "highscore.txt")
			if tc.stored > 0 {
				if err := os.WriteFile(path, []byte(strconv.Itoa(tc.stored)), 0o644); err != nil {
					t.Fatalf("WriteFile() failed: %v", err)
				}
			}

			f := NewFile(path, nil)
			best, err := f.Submit(tc.score)
			if err != nil {
				t.Fatalf("Submit() failed: %v", err)
			}
			if best != tc.expected {
				t.Errorf("Submit() = %d, expected %d", best, tc.expected)
			}
			if got := f.Load(); got != tc.expected {
				t.Errorf("Load() = %d, expected %d", got, tc.expected)
			}
		})
	}
}

func TestConcurrentSubmits(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "highscore.txt"), nil)

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			f.Submit(score) //nolint:errcheck // Checked through Load below
		}(i)
	}
	wg.Wait()

	if got := f.Load(); got != 20 {
		t.Errorf("Load() = %d, expected the highest submitted score 20", got)
	}
}
