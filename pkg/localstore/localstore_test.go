package localstore

import (
	"path/filepath"
	"testing"
)

func testStore(t *testing.T, s Store) {
	t.Helper()

	if _, ok, err := s.Get("missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v", ok, err)
	}

	if err := s.Put("auth/token", []byte("tok-1")); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	value, ok, err := s.Get("auth/token")
	if err != nil || !ok {
		t.Fatalf("Get after Put: ok=%v err=%v", ok, err)
	}
	if string(value) != "tok-1" {
		t.Fatalf("Get value: %q", value)
	}

	if err := s.Put("auth/token", []byte("tok-2")); err != nil {
		t.Fatalf("overwrite error: %v", err)
	}
	value, _, _ = s.Get("auth/token")
	if string(value) != "tok-2" {
		t.Fatalf("overwrite not applied: %q", value)
	}

	if err := s.Delete("auth/token"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, ok, _ := s.Get("auth/token"); ok {
		t.Fatalf("key survived Delete")
	}
	// Deleting an absent key is not an error.
	if err := s.Delete("auth/token"); err != nil {
		t.Fatalf("Delete absent key: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	testStore(t, NewMemory())
}

func TestBoltStore(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.db")
	s, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt error: %v", err)
	}
	defer s.Close()

	testStore(t, s)
}

func TestBoltStore_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.db")
	s, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt error: %v", err)
	}
	if err := s.Put("ui/theme", []byte("dark")); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	s, err = OpenBolt(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer s.Close()

	value, ok, err := s.Get("ui/theme")
	if err != nil || !ok || string(value) != "dark" {
		t.Fatalf("value lost across reopen: %q ok=%v err=%v", value, ok, err)
	}
}
