package models

import "fmt"

// CourseInstance represents a delivery of a course in a given year and semester.
type CourseInstance struct {
	ID       string   `json:"id" db:"id"`
	CourseID string   `json:"courseId" db:"course_id"`
	Year     int      `json:"year" db:"year"`
	Semester Semester `json:"semester" db:"semester"`

	// Relations (populated on read paths)
	Course *Course `json:"course,omitempty"`
}

// Key returns the (course, year, semester) triple identifying the instance.
func (i *CourseInstance) Key() InstanceKey {
	return InstanceKey{CourseID: i.CourseID, Year: i.Year, Semester: i.Semester}
}

// Clone returns a deep copy of the instance including its denormalized course.
func (i *CourseInstance) Clone() *CourseInstance {
	if i == nil {
		return nil
	}
	clone := *i
	clone.Course = i.Course.Clone()
	return &clone
}

// InstanceKey uniquely identifies a course instance.
type InstanceKey struct {
	CourseID string
	Year     int
	Semester Semester
}

func (k InstanceKey) String() string {
	return fmt.Sprintf("%s in %d semester %d", k.CourseID, k.Year, k.Semester)
}

// CreateInstanceData holds the caller-supplied fields for a new instance.
type CreateInstanceData struct {
	CourseID string
	Year     int
	Semester Semester
}

// InstanceFilter narrows an instance listing. Nil fields match everything.
type InstanceFilter struct {
	Year     *int
	Semester *Semester
}

// Matches reports whether the instance satisfies the filter.
func (f InstanceFilter) Matches(i *CourseInstance) bool {
	if f.Year != nil && i.Year != *f.Year {
		return false
	}
	if f.Semester != nil && i.Semester != *f.Semester {
		return false
	}
	return true
}
