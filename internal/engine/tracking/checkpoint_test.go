package tracking

import (
	"fmt"
	"testing"
	"time"

	"github.com/dshills/editcore/internal/engine/buffer"
)

func TestCreateAndGet(t *testing.T) {
	s := NewStore(0)

	rev := buffer.NewRevisionID()
	cp := s.Create("first", "hello", rev)

	if cp.ID == "" {
		t.Error("checkpoint should get an ID")
	}
	if cp.Text() != "hello" {
		t.Errorf("Text() = %q, want %q", cp.Text(), "hello")
	}
	if cp.Len() != 5 {
		t.Errorf("Len() = %d, want 5", cp.Len())
	}
	if cp.Revision != rev {
		t.Error("wrong revision")
	}
	if age := cp.Age(); age < 0 || age > time.Minute {
		t.Errorf("Age() = %s, want just created", age)
	}

	got, ok := s.Get(cp.ID)
	if !ok || got.ID != cp.ID {
		t.Error("Get should find the checkpoint by ID")
	}

	byName, ok := s.GetByName("first")
	if !ok || byName.ID != cp.ID {
		t.Error("GetByName should find the checkpoint")
	}
}

func TestGetMissing(t *testing.T) {
	s := NewStore(0)
	if _, ok := s.Get(NewCheckpointID()); ok {
		t.Error("Get of unknown ID should report false")
	}
	if _, ok := s.GetByName("nope"); ok {
		t.Error("GetByName of unknown name should report false")
	}
}

func TestCreateReplacesSameName(t *testing.T) {
	s := NewStore(0)

	old := s.Create("cp", "v1", buffer.NewRevisionID())
	nw := s.Create("cp", "v2", buffer.NewRevisionID())

	if _, ok := s.Get(old.ID); ok {
		t.Error("replaced checkpoint should be removed")
	}
	got, ok := s.GetByName("cp")
	if !ok || got.ID != nw.ID || got.Text() != "v2" {
		t.Error("name should resolve to the newest checkpoint")
	}
	if s.Count() != 1 {
		t.Errorf("Count() = %d, want 1", s.Count())
	}
}

func TestUnnamedCheckpointsCoexist(t *testing.T) {
	s := NewStore(0)
	a := s.Create("", "a", buffer.NewRevisionID())
	b := s.Create("", "b", buffer.NewRevisionID())
	if a.ID == b.ID {
		t.Error("unnamed checkpoints must get distinct IDs")
	}
	if s.Count() != 2 {
		t.Errorf("Count() = %d, want 2", s.Count())
	}
}

func TestListNewestFirst(t *testing.T) {
	s := NewStore(0)
	for i := 0; i < 3; i++ {
		s.Create(fmt.Sprintf("cp%d", i), "x", buffer.NewRevisionID())
		time.Sleep(time.Millisecond)
	}

	list := s.List()
	if len(list) != 3 {
		t.Fatalf("List() length = %d, want 3", len(list))
	}
	if list[0].Name != "cp2" || list[2].Name != "cp0" {
		t.Errorf("List() order = %s, %s, %s; want newest first",
			list[0].Name, list[1].Name, list[2].Name)
	}
}

func TestMaxEntriesTrimsOldest(t *testing.T) {
	s := NewStore(2)
	for i := 0; i < 4; i++ {
		s.Create(fmt.Sprintf("cp%d", i), "x", buffer.NewRevisionID())
		time.Sleep(time.Millisecond)
	}

	if s.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", s.Count())
	}
	if _, ok := s.GetByName("cp0"); ok {
		t.Error("oldest checkpoint should be trimmed")
	}
	if _, ok := s.GetByName("cp3"); !ok {
		t.Error("newest checkpoint should survive")
	}
}

func TestRemove(t *testing.T) {
	s := NewStore(0)
	cp := s.Create("cp", "x", buffer.NewRevisionID())

	if !s.Remove(cp.ID) {
		t.Error("Remove should report true for an existing checkpoint")
	}
	if s.Remove(cp.ID) {
		t.Error("Remove should report false for a missing checkpoint")
	}
	if _, ok := s.GetByName("cp"); ok {
		t.Error("name lookup should fail after Remove")
	}
}

func TestClear(t *testing.T) {
	s := NewStore(0)
	s.Create("a", "x", buffer.NewRevisionID())
	s.Create("b", "y", buffer.NewRevisionID())

	s.Clear()
	if s.Count() != 0 {
		t.Errorf("Count() = %d, want 0 after Clear", s.Count())
	}
}
