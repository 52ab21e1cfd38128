package pending

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"
	"time"
)

// storeUnderTest covers the behavior shared by every backend.
func storeUnderTest(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	r := NewReport("scene.json", "Face", "Visemes", []string{"Wink", "Blink"})
	if r.ID == "" {
		t.Fatal("NewReport() produced empty ID")
	}

	if _, err := s.Get(ctx, r.Key()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() before Set error = %v, want ErrNotFound", err)
	}

	if err := s.Set(ctx, r); err != nil {
		t.Fatalf("Set() returned error: %v", err)
	}

	got, err := s.Get(ctx, r.Key())
	if err != nil {
		t.Fatalf("Get() returned error: %v", err)
	}
	if got.ID != r.ID || got.Object != "Face" || got.Roster != "Visemes" {
		t.Errorf("Get() = %+v, want stored report", got)
	}
	if !reflect.DeepEqual(got.Missing, []string{"Wink", "Blink"}) {
		t.Errorf("Missing = %v, want [Wink Blink]", got.Missing)
	}

	// A later check for the same target replaces the report.
	r2 := NewReport("scene.json", "Face", "Visemes", []string{"Blink"})
	if err := s.Set(ctx, r2); err != nil {
		t.Fatalf("Set() replacement returned error: %v", err)
	}
	got, err = s.Get(ctx, r.Key())
	if err != nil {
		t.Fatalf("Get() after replacement returned error: %v", err)
	}
	if got.ID != r2.ID {
		t.Errorf("Get() ID = %s, want replacement %s", got.ID, r2.ID)
	}

	if err := s.Clear(ctx, r.Key()); err != nil {
		t.Fatalf("Clear() returned error: %v", err)
	}
	if _, err := s.Get(ctx, r.Key()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Clear error = %v, want ErrNotFound", err)
	}

	// Clearing an absent key is not an error.
	if err := s.Clear(ctx, r.Key()); err != nil {
		t.Errorf("Clear() on absent key returned error: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	storeUnderTest(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() returned error: %v", err)
	}
	storeUnderTest(t, s)
}

func TestMemoryStore_Expiry(t *testing.T) {
	s := NewMemoryStore()
	s.ttl = time.Millisecond

	r := NewReport("s", "o", "l", nil)
	r.CreatedAt = time.Now().Add(-time.Hour)
	if err := s.Set(context.Background(), r); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(context.Background(), r.Key()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() on expired report error = %v, want ErrNotFound", err)
	}
}

func TestFileStore_CorruptEntryTreatedAsAbsent(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	r := NewReport("s", "o", "l", []string{"A"})
	ctx := context.Background()
	if err := s.Set(ctx, r); err != nil {
		t.Fatal(err)
	}

	// Truncate the state file behind the store's back.
	if err := writeCorrupt(s.path(r.Key())); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, r.Key()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() on corrupt file error = %v, want ErrNotFound", err)
	}
}

func writeCorrupt(path string) error {
	return os.WriteFile(path, []byte("{not json"), 0o644)
}

func TestTargetKey_DistinguishesTargets(t *testing.T) {
	if TargetKey("a", "b") == TargetKey("ab", "") {
		t.Error("TargetKey() collides for adjacent scene/object strings")
	}
}
