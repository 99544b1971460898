package domain

import "errors"

var (
	// ErrSectionNotFound is returned when a section id does not exist.
	ErrSectionNotFound = errors.New("section not found")
	// ErrItemNotFound is returned when an item id does not exist in its section.
	ErrItemNotFound = errors.New("item not found")
	// ErrCategoryNotFound is returned when a category id does not exist.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrEngineNotFound is returned when an engine name does not exist in its category.
	ErrEngineNotFound = errors.New("engine not found")

	// ErrLastCategory rejects deleting the sole remaining category.
	ErrLastCategory = errors.New("cannot delete the last category")
	// ErrLastEngine rejects deleting the sole remaining engine of a category.
	ErrLastEngine = errors.New("cannot delete the last engine of a category")

	// ErrDuplicateID rejects creating an entity whose id already exists.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrEmptyField rejects a mutation with a missing required field.
	ErrEmptyField = errors.New("required field is empty")
	// ErrIndexRange rejects a reorder with an out-of-range index.
	ErrIndexRange = errors.New("index out of range")
)
