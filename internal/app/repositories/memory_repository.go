package repositories

import (
	"context"
	"slices"
	"sync"

	"github.com/yigit/coursecatalog/internal/app/models"
)

// MemoryCourseRepository keeps courses in insertion order in process memory
type MemoryCourseRepository struct {
	mu      sync.RWMutex
	courses []*models.Course
}

// NewMemoryCourseRepository creates an empty in-memory course repository
func NewMemoryCourseRepository() *MemoryCourseRepository {
	return &MemoryCourseRepository{}
}

// GetAll retrieves all courses
func (r *MemoryCourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	courses := make([]*models.Course, 0, len(r.courses))
	for _, course := range r.courses {
		courses = append(courses, course.Clone())
	}
	return courses, nil
}

// GetByID retrieves a course by ID
func (r *MemoryCourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx == -1 {
		return nil, ErrCourseNotFound
	}
	return r.courses[idx].Clone(), nil
}

// Exists checks if a course with the given ID is stored
func (r *MemoryCourseRepository) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.indexOf(id) != -1, nil
}

// FindDependents returns the IDs of courses that list id as a prerequisite
func (r *MemoryCourseRepository) FindDependents(ctx context.Context, id string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dependents := []string{}
	for _, course := range r.courses {
		if course.HasPrerequisite(id) {
			dependents = append(dependents, course.ID)
		}
	}
	return dependents, nil
}

// Create appends a new course
func (r *MemoryCourseRepository) Create(ctx context.Context, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(course.ID) != -1 {
		return ErrCourseAlreadyExists
	}
	r.courses = append(r.courses, course.Clone())
	return nil
}

// Delete removes a course by ID
func (r *MemoryCourseRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx == -1 {
		return ErrCourseNotFound
	}
	r.courses = slices.Delete(r.courses, idx, idx+1)
	return nil
}

func (r *MemoryCourseRepository) indexOf(id string) int {
	return slices.IndexFunc(r.courses, func(c *models.Course) bool { return c.ID == id })
}

// MemoryInstanceRepository keeps course instances in insertion order in process memory
type MemoryInstanceRepository struct {
	mu        sync.RWMutex
	instances []*models.CourseInstance
}

// NewMemoryInstanceRepository creates an empty in-memory instance repository
func NewMemoryInstanceRepository() *MemoryInstanceRepository {
	return &MemoryInstanceRepository{}
}

// GetAll retrieves all instances matching the filter
func (r *MemoryInstanceRepository) GetAll(ctx context.Context, filter models.InstanceFilter) ([]*models.CourseInstance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	instances := make([]*models.CourseInstance, 0, len(r.instances))
	for _, instance := range r.instances {
		if filter.Matches(instance) {
			instances = append(instances, instance.Clone())
		}
	}
	return instances, nil
}

// GetByKey retrieves an instance by its (course, year, semester) triple
func (r *MemoryInstanceRepository) GetByKey(ctx context.Context, key models.InstanceKey) (*models.CourseInstance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(key)
	if idx == -1 {
		return nil, ErrInstanceNotFound
	}
	return r.instances[idx].Clone(), nil
}

// Create appends a new instance
func (r *MemoryInstanceRepository) Create(ctx context.Context, instance *models.CourseInstance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(instance.Key()) != -1 {
		return ErrInstanceAlreadyExists
	}
	stored := instance.Clone()
	stored.Course = nil
	r.instances = append(r.instances, stored)
	return nil
}

// Delete removes an instance by its (course, year, semester) triple
func (r *MemoryInstanceRepository) Delete(ctx context.Context, key models.InstanceKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(key)
	if idx == -1 {
		return ErrInstanceNotFound
	}
	r.instances = slices.Delete(r.instances, idx, idx+1)
	return nil
}

func (r *MemoryInstanceRepository) indexOf(key models.InstanceKey) int {
	return slices.IndexFunc(r.instances, func(i *models.CourseInstance) bool { return i.Key() == key })
}
