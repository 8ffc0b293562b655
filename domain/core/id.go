package core

import "github.com/google/uuid"

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// v7 keeps batch rows sortable by creation time
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	ExperimentID ID
	BatchID      ID
)

// String conversions for domain IDs
func (id ExperimentID) String() string { return ID(id).String() }
func (id BatchID) String() string      { return ID(id).String() }

// NewExperimentID creates an identifier for a single evaluation
func NewExperimentID() ExperimentID { return ExperimentID(NewID()) }

// NewBatchID creates an identifier for a batch evaluation
func NewBatchID() BatchID { return BatchID(NewID()) }
