package models

import "slices"

// Course represents a catalog entry.
type Course struct {
	ID            string   `json:"id" db:"id"`
	Title         string   `json:"title" db:"title"`
	Description   string   `json:"description" db:"description"`
	Prerequisites []string `json:"prerequisites" db:"prerequisites"` // Ordered course IDs
}

// Clone returns a deep copy of the course, so callers never share the prerequisites slice.
func (c *Course) Clone() *Course {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Prerequisites = slices.Clone(c.Prerequisites)
	if clone.Prerequisites == nil {
		clone.Prerequisites = []string{}
	}
	return &clone
}

// HasPrerequisite reports whether id is listed as one of the course's prerequisites.
func (c *Course) HasPrerequisite(id string) bool {
	return slices.Contains(c.Prerequisites, id)
}

// CreateCourseData holds the caller-supplied fields for a new course.
type CreateCourseData struct {
	ID            string
	Title         string
	Description   string
	Prerequisites []string
}
