package overlay

import (
	"testing"

	"github.com/cancunvm/engine/kvstore"
)

func TestOverlayCommit(t *testing.T) {
	backend := kvstore.NewMemoryDB()
	ov := New(backend, []byte("k"))

	ov.Set([]byte("a"), []byte("1"))
	cp := ov.Checkpoint()
	ov.Set([]byte("a"), []byte("2"))
	ov.Commit(cp)

	got, ok := ov.Get([]byte("a"))
	if !ok || string(got) != "2" {
		t.Errorf("after commit, Get(a) = (%q, %v), want (2, true)", got, ok)
	}
}

func TestOverlayDiscard(t *testing.T) {
	backend := kvstore.NewMemoryDB()
	ov := New(backend, []byte("k"))

	ov.Set([]byte("a"), []byte("1"))
	cp := ov.Checkpoint()
	ov.Set([]byte("a"), []byte("2"))
	ov.Delete([]byte("b"))
	ov.Discard(cp)

	got, ok := ov.Get([]byte("a"))
	if !ok || string(got) != "1" {
		t.Errorf("after discard, Get(a) = (%q, %v), want (1, true)", got, ok)
	}
}

func TestOverlayDeleteTombstone(t *testing.T) {
	backend := kvstore.NewMemoryDB()
	ov := New(backend, []byte("k"))
	ov.Set([]byte("a"), []byte("1"))
	if err := ov.Persist(); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	ov.Delete([]byte("a"))
	if _, ok := ov.Get([]byte("a")); ok {
		t.Error("Get(a) after Delete = found, want not found")
	}

	// Persisting the tombstone must remove it from the backend too.
	if err := ov.Persist(); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if _, err := backend.Get(kvstore.Namespace([]byte("k"), []byte("a"))); err != kvstore.ErrNotFound {
		t.Errorf("backend.Get(a) after persisted delete = %v, want ErrNotFound", err)
	}
}

func TestOverlayFallsThroughToBackend(t *testing.T) {
	backend := kvstore.NewMemoryDB()
	b := backend.NewBatch()
	b.Put(kvstore.Namespace([]byte("k"), []byte("a")), []byte("from-backend"))
	b.Write()

	ov := New(backend, []byte("k"))
	got, ok := ov.Get([]byte("a"))
	if !ok || string(got) != "from-backend" {
		t.Errorf("Get(a) = (%q, %v), want (from-backend, true)", got, ok)
	}
}

func TestOverlayNestedCheckpoints(t *testing.T) {
	backend := kvstore.NewMemoryDB()
	ov := New(backend, []byte("k"))

	cp1 := ov.Checkpoint()
	ov.Set([]byte("a"), []byte("1"))
	cp2 := ov.Checkpoint()
	ov.Set([]byte("a"), []byte("2"))

	ov.Discard(cp2)
	got, _ := ov.Get([]byte("a"))
	if string(got) != "1" {
		t.Errorf("after discarding the inner checkpoint, Get(a) = %q, want 1", got)
	}

	ov.Discard(cp1)
	if _, ok := ov.Get([]byte("a")); ok {
		t.Error("after discarding the outer checkpoint, Get(a) should be absent")
	}
}

func TestOverlayCommitWrongLevelPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Commit on a non-topmost checkpoint should panic")
		}
	}()
	backend := kvstore.NewMemoryDB()
	ov := New(backend, []byte("k"))
	cp1 := ov.Checkpoint()
	ov.Checkpoint()
	ov.Commit(cp1)
}
