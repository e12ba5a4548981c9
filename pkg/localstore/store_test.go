package localstore

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSetGet(t *testing.T) {
	s := openTestStore(t)

	if _, found, err := s.Get("missing"); err != nil || found {
		t.Fatalf("expected missing key, got found=%v err=%v", found, err)
	}

	if err := s.Set("guest_mode", "true"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, found, err := s.Get("guest_mode")
	if err != nil || !found {
		t.Fatalf("Get failed: found=%v err=%v", found, err)
	}
	if v != "true" {
		t.Errorf("expected 'true', got %q", v)
	}

	// Overwrite
	if err := s.Set("guest_mode", "false"); err != nil {
		t.Fatalf("Set overwrite failed: %v", err)
	}
	v, _, _ = s.Get("guest_mode")
	if v != "false" {
		t.Errorf("expected 'false' after overwrite, got %q", v)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)

	if err := s.Set("k", "v"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found, _ := s.Get("k"); found {
		t.Error("key still present after Delete")
	}

	// Deleting an absent key is not an error
	if err := s.Delete("absent"); err != nil {
		t.Errorf("Delete of absent key failed: %v", err)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	s := openTestStore(t)

	in := []string{"gh-1", "gl-2"}
	if err := s.SetJSON("hidden", in); err != nil {
		t.Fatalf("SetJSON failed: %v", err)
	}

	var out []string
	found, err := s.GetJSON("hidden", &out)
	if err != nil || !found {
		t.Fatalf("GetJSON failed: found=%v err=%v", found, err)
	}
	if len(out) != 2 || out[0] != "gh-1" || out[1] != "gl-2" {
		t.Errorf("unexpected value: %v", out)
	}

	var missing []string
	found, err = s.GetJSON("nope", &missing)
	if err != nil || found {
		t.Errorf("expected missing JSON key, got found=%v err=%v", found, err)
	}
}
