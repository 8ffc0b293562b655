package core

import (
	"testing"

	"github.com/google/uuid"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestNewIDIsUUIDv7 tests that generated IDs parse as version 7 UUIDs
func TestNewIDIsUUIDv7(t *testing.T) {
	parsed, err := uuid.Parse(NewExperimentID().String())
	if err != nil {
		t.Fatalf("Expected a valid UUID, got error: %v", err)
	}
	if parsed.Version() != 7 {
		t.Errorf("Expected UUID version 7, got %d", parsed.Version())
	}
}

// TestIDIsEmpty tests ID emptiness check
func TestIDIsEmpty(t *testing.T) {
	if !ID("").IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}
	if ID("not-empty").IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}
