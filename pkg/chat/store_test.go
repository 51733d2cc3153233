package chat

import (
	"sync"
	"testing"
	"time"
)

func TestStoreAppendPreservesOrder(t *testing.T) {
	s := NewStore()
	s.Append(Message{ID: "1", Sender: PartyA})
	s.Append(Message{ID: "2", Sender: PartyB})

	got := s.Messages()
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestStoreSnapshotIsolation(t *testing.T) {
	s := NewStore()
	s.Append(Message{ID: "1"})
	snap := s.Messages()
	s.Append(Message{ID: "2"})
	if len(snap) != 1 {
		t.Fatalf("snapshot must not observe later appends")
	}
}

func TestStoreClear(t *testing.T) {
	s := NewStore()
	s.Append(Message{ID: "1"})
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("expected empty store after clear")
	}
}

func TestStoreConcurrentAppends(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(p Party) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.Append(Message{Sender: p, CreatedAt: time.Now()})
			}
		}([]Party{PartyA, PartyB}[i])
	}
	wg.Wait()
	if s.Len() != 100 {
		t.Fatalf("expected 100 messages, got %d", s.Len())
	}
}
