package model

// EntityID identifies an entity inside the model arena.
type EntityID uint32

const (
	// NoEntityID marks the absence of an entity reference.
	NoEntityID EntityID = 0
)

// IsValid reports whether the ID refers to an allocated entity.
func (id EntityID) IsValid() bool { return id != NoEntityID }
