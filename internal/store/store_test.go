package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/paceview/paceview/internal/dataset"
)

func testDataset() *dataset.Dataset {
	return &dataset.Dataset{
		Headers: []string{"A"},
		Rows: []dataset.Row{
			{Date: dataset.NewDate(2027, time.January, 1), Values: map[string]float64{"A": 2}},
		},
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "cache"))

	if s.Exists() {
		t.Fatal("Exists before Save")
	}
	if err := s.Save(testDataset()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !s.Exists() {
		t.Fatal("Exists false after Save")
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Rows[0].Values["A"] != 2 {
		t.Errorf("loaded value: got %v, want 2", loaded.Rows[0].Values["A"])
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := New(t.TempDir())

	if err := s.Save(testDataset()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	d := testDataset()
	d.Rows[0].Values["A"] = 7
	if err := s.Save(d); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Rows[0].Values["A"] != 7 {
		t.Errorf("loaded value: got %v, want 7", loaded.Rows[0].Values["A"])
	}

	// No temp files may survive a successful save.
	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("cache dir has %d entries, want 1", len(entries))
	}
}

func TestLoadRejectsCorruptCache(t *testing.T) {
	s := New(t.TempDir())
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(); err == nil {
		t.Error("Load accepted a corrupt cache file")
	}
}

func TestClear(t *testing.T) {
	s := New(t.TempDir())

	// Clearing an absent cache is not an error.
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear on empty cache failed: %v", err)
	}

	if err := s.Save(testDataset()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if s.Exists() {
		t.Error("cache still exists after Clear")
	}
}
