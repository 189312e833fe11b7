package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/coursecatalog/internal/app/models"
)

// Repository error types
var (
	ErrCourseNotFound        = errors.New("course not found")
	ErrCourseAlreadyExists   = errors.New("course with this ID already exists")
	ErrPrerequisiteNotFound  = errors.New("prerequisite course not found")
	ErrCourseReferenced      = errors.New("course is referenced as a prerequisite")
	ErrInstanceNotFound      = errors.New("course instance not found")
	ErrInstanceAlreadyExists = errors.New("course instance for this course, year and semester already exists")
)

// CourseRepository is the storage contract for course records.
// Returned records are copies owned by the caller.
type CourseRepository interface {
	GetAll(ctx context.Context) ([]*models.Course, error)
	GetByID(ctx context.Context, id string) (*models.Course, error)
	Exists(ctx context.Context, id string) (bool, error)
	// FindDependents returns, in insertion order, the IDs of courses listing id as a prerequisite.
	FindDependents(ctx context.Context, id string) ([]string, error)
	Create(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
}

// InstanceRepository is the storage contract for course instance records.
// Returned records never carry the denormalized course.
type InstanceRepository interface {
	GetAll(ctx context.Context, filter models.InstanceFilter) ([]*models.CourseInstance, error)
	GetByKey(ctx context.Context, key models.InstanceKey) (*models.CourseInstance, error)
	Create(ctx context.Context, instance *models.CourseInstance) error
	Delete(ctx context.Context, key models.InstanceKey) error
}

// Repositories holds all the repository instances
type Repositories struct {
	CourseRepository   CourseRepository
	InstanceRepository InstanceRepository
}

// NewMemoryRepositories initializes in-memory repositories
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		CourseRepository:   NewMemoryCourseRepository(),
		InstanceRepository: NewMemoryInstanceRepository(),
	}
}

// NewPostgresRepositories initializes repositories backed by a PostgreSQL pool
func NewPostgresRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		CourseRepository:   NewCourseRepository(db),
		InstanceRepository: NewInstanceRepository(db),
	}
}
