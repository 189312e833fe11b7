package models

// Semester represents a half of the academic year
type Semester int

// Semester constants
const (
	SemesterFirst  Semester = 1
	SemesterSecond Semester = 2
)

// IsValid reports whether the semester is one of the known values.
func (s Semester) IsValid() bool {
	return s == SemesterFirst || s == SemesterSecond
}
