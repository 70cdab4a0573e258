package bbolt

import (
	"os"
	"testing"

	"go.etcd.io/bbolt"

	"github.com/jdoyle/centavo/storage"
)

func newTestDB(t *testing.T) (*bbolt.DB, func()) {
	t.Helper()
	f, err := os.CreateTemp("", "tokens-test-*.db")
	if err != nil {
		t.Fatalf("could not create temp file: %v", err)
	}
	path := f.Name()
	f.Close()

	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		os.Remove(path)
		t.Fatalf("could not open db: %v", err)
	}
	return db, func() {
		db.Close()
		os.Remove(path)
	}
}

func TestBBoltTokenStore(t *testing.T) {
	db, cleanup := newTestDB(t)
	defer cleanup()

	s := NewStore(db)

	t.Run("EmptyBeforeWrite", func(t *testing.T) {
		pair, err := s.Tokens()
		if err != nil {
			t.Fatalf("Tokens failed: %v", err)
		}
		if !pair.Empty() {
			t.Errorf("expected empty pair, got %+v", pair)
		}
	})

	t.Run("WriteAndRead", func(t *testing.T) {
		err := s.WritePair(storage.TokenPair{Access: "acc-1", Refresh: "ref-1"})
		if err != nil {
			t.Fatalf("WritePair failed: %v", err)
		}
		pair, err := s.Tokens()
		if err != nil {
			t.Fatalf("Tokens failed: %v", err)
		}
		if pair.Access != "acc-1" || pair.Refresh != "ref-1" {
			t.Errorf("unexpected pair: %+v", pair)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		err := s.WritePair(storage.TokenPair{Access: "acc-2", Refresh: "ref-2"})
		if err != nil {
			t.Fatalf("WritePair failed: %v", err)
		}
		pair, _ := s.Tokens()
		if pair.Access != "acc-2" || pair.Refresh != "ref-2" {
			t.Errorf("unexpected pair after overwrite: %+v", pair)
		}
	})

	t.Run("PartialPair", func(t *testing.T) {
		err := s.WritePair(storage.TokenPair{Access: "acc-3"})
		if err != nil {
			t.Fatalf("WritePair failed: %v", err)
		}
		pair, _ := s.Tokens()
		if pair.Access != "acc-3" || pair.Refresh != "" {
			t.Errorf("unexpected pair: %+v", pair)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		if err := s.Clear(); err != nil {
			t.Fatalf("Clear failed: %v", err)
		}
		pair, err := s.Tokens()
		if err != nil {
			t.Fatalf("Tokens failed: %v", err)
		}
		if !pair.Empty() {
			t.Errorf("expected empty pair after clear, got %+v", pair)
		}
	})

	t.Run("ClearWhenEmpty", func(t *testing.T) {
		if err := s.Clear(); err != nil {
			t.Errorf("Clear on empty store failed: %v", err)
		}
	})
}

func TestBBoltTokenStoreSurvivesReopen(t *testing.T) {
	f, err := os.CreateTemp("", "tokens-reopen-*.db")
	if err != nil {
		t.Fatalf("could not create temp file: %v", err)
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	s, err := NewStoreFromFile(path, nil)
	if err != nil {
		t.Fatalf("NewStoreFromFile failed: %v", err)
	}
	if err := s.WritePair(storage.TokenPair{Access: "acc", Refresh: "ref"}); err != nil {
		t.Fatalf("WritePair failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s2, err := NewStoreFromFile(path, nil)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()

	pair, err := s2.Tokens()
	if err != nil {
		t.Fatalf("Tokens failed: %v", err)
	}
	if pair.Access != "acc" || pair.Refresh != "ref" {
		t.Errorf("pair did not survive reopen: %+v", pair)
	}
}
