// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-keyring.
//
// go-keyring is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package memory

import (
	"bytes"
	"testing"

	"github.com/jeremyhahn/go-keyring/pkg/datastore"
)

func TestPutGet(t *testing.T) {
	s := New()
	defer s.Close()

	if err := s.Put("/alice", []byte("pem"), nil); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	value, err := s.Get("/alice")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(value, []byte("pem")) {
		t.Errorf("Get returned %q, want %q", value, "pem")
	}
}

func TestGetNotFound(t *testing.T) {
	s := New()
	defer s.Close()

	if _, err := s.Get("/missing"); err != datastore.ErrNotFound {
		t.Errorf("Get on missing key returned %v, want ErrNotFound", err)
	}
}

func TestExists(t *testing.T) {
	s := New()
	defer s.Close()

	exists, err := s.Exists("/alice")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("Exists returned true for missing key")
	}

	if err := s.Put("/alice", []byte("pem"), nil); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	exists, err = s.Exists("/alice")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("Exists returned false for present key")
	}
}

func TestDelete(t *testing.T) {
	s := New()
	defer s.Close()

	if err := s.Delete("/missing"); err != datastore.ErrNotFound {
		t.Errorf("Delete on missing key returned %v, want ErrNotFound", err)
	}

	if err := s.Put("/alice", []byte("pem"), nil); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := s.Delete("/alice"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get("/alice"); err != datastore.ErrNotFound {
		t.Error("key still present after Delete")
	}
}

func TestList(t *testing.T) {
	s := New()
	defer s.Close()

	for _, key := range []string{"/bob", "/alice", "/carol"} {
		if err := s.Put(key, []byte("pem"), nil); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	keys, err := s.List("/")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	expected := []string{"/alice", "/bob", "/carol"}
	if len(keys) != len(expected) {
		t.Fatalf("List returned %d keys, want %d", len(keys), len(expected))
	}
	for i, key := range expected {
		if keys[i] != key {
			t.Errorf("List[%d] = %q, want %q", i, keys[i], key)
		}
	}
}

func TestDefensiveCopies(t *testing.T) {
	s := New()
	defer s.Close()

	value := []byte("pem")
	if err := s.Put("/alice", value, nil); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	value[0] = 'X'

	stored, err := s.Get("/alice")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(stored, []byte("pem")) {
		t.Error("stored value was modified through the caller's slice")
	}

	stored[0] = 'Y'
	again, err := s.Get("/alice")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(again, []byte("pem")) {
		t.Error("stored value was modified through a returned slice")
	}
}

func TestBatch(t *testing.T) {
	t.Run("PutAndDelete", func(t *testing.T) {
		s := New()
		defer s.Close()

		if err := s.Put("/old", []byte("pem"), nil); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		b, err := s.Batch()
		if err != nil {
			t.Fatalf("Batch failed: %v", err)
		}
		b.Put("/new", []byte("pem"), nil)
		b.Delete("/old")

		// Nothing visible before commit
		if exists, _ := s.Exists("/new"); exists {
			t.Error("staged put visible before Commit")
		}
		if exists, _ := s.Exists("/old"); !exists {
			t.Error("staged delete applied before Commit")
		}

		if err := b.Commit(); err != nil {
			t.Fatalf("Commit failed: %v", err)
		}

		if exists, _ := s.Exists("/new"); !exists {
			t.Error("put not applied by Commit")
		}
		if exists, _ := s.Exists("/old"); exists {
			t.Error("delete not applied by Commit")
		}
	})

	t.Run("DoubleCommit", func(t *testing.T) {
		s := New()
		defer s.Close()

		b, err := s.Batch()
		if err != nil {
			t.Fatalf("Batch failed: %v", err)
		}
		b.Put("/a", []byte("x"), nil)
		if err := b.Commit(); err != nil {
			t.Fatalf("Commit failed: %v", err)
		}
		if err := b.Commit(); err != datastore.ErrBatchCommitted {
			t.Errorf("second Commit returned %v, want ErrBatchCommitted", err)
		}
	})
}

func TestClosed(t *testing.T) {
	s := New()
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if _, err := s.Get("/a"); err != datastore.ErrClosed {
		t.Errorf("Get after Close returned %v, want ErrClosed", err)
	}
	if err := s.Put("/a", []byte("x"), nil); err != datastore.ErrClosed {
		t.Errorf("Put after Close returned %v, want ErrClosed", err)
	}
	if _, err := s.List(""); err != datastore.ErrClosed {
		t.Errorf("List after Close returned %v, want ErrClosed", err)
	}

	// Close is idempotent
	if err := s.Close(); err != nil {
		t.Errorf("second Close returned %v", err)
	}
}
