package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mmfb/entitylogger/internal/geometry"
	"github.com/mmfb/entitylogger/internal/snapshot"
)

// createTestStore creates a new store backed by a temp file.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRecord creates a record with only the required fields set.
func createTestRecord(name string, category snapshot.Category, x, y, z, distance float64) snapshot.EntityRecord {
	return snapshot.EntityRecord{
		Name:     name,
		Position: geometry.Point3{X: x, Y: y, Z: z},
		Category: category,
		Distance: distance,
	}
}

// seedSnapshot commits records and info as one refresh.
func seedSnapshot(t *testing.T, s *Store, records []snapshot.EntityRecord, info snapshot.WorldInfo) {
	t.Helper()
	err := s.WithRefresh(context.Background(), func(r Refresher) error {
		if err := r.ClearEntities(context.Background()); err != nil {
			return err
		}
		if err := r.InsertEntities(context.Background(), records); err != nil {
			return err
		}
		return r.UpsertWorldInfo(context.Background(), info)
	})
	if err != nil {
		t.Fatalf("seed refresh failed: %v", err)
	}
}

func ptr[T any](v T) *T {
	return &v
}
