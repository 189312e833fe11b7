package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/coursecatalog/internal/app/models"
	"github.com/yigit/coursecatalog/internal/app/services"
	"github.com/yigit/coursecatalog/internal/pkg/apperrors"
)

// DefaultCourses is the demo catalog, ordered so every prerequisite precedes its dependents
var DefaultCourses = []models.CreateCourseData{
	{
		ID:            "CS101",
		Title:         "Introduction to Computer Programming",
		Description:   "This course provides a basic introduction to Computer Programming using Python. Students will learn fundamental programming concepts, data structures, and problem-solving techniques.",
		Prerequisites: []string{},
	},
	{
		ID:            "CS201",
		Title:         "Data Structures and Algorithms",
		Description:   "Advanced programming concepts including data structures, algorithms, and complexity analysis. Students will implement various data structures and learn algorithmic problem-solving.",
		Prerequisites: []string{"CS101"},
	},
	{
		ID:            "CS301",
		Title:         "Database Systems",
		Description:   "Introduction to database design, SQL, and database management systems. Covers relational database theory, normalization, and practical database implementation.",
		Prerequisites: []string{"CS101", "CS201"},
	},
	{
		ID:            "MATH101",
		Title:         "Calculus I",
		Description:   "Introduction to differential and integral calculus. Covers limits, derivatives, and basic integration techniques with applications.",
		Prerequisites: []string{},
	},
	{
		ID:            "MATH201",
		Title:         "Linear Algebra",
		Description:   "Vector spaces, matrices, linear transformations, and eigenvalues. Essential mathematical foundation for computer science and engineering.",
		Prerequisites: []string{"MATH101"},
	},
}

// DefaultInstances schedules the demo catalog
var DefaultInstances = []models.CreateInstanceData{
	{CourseID: "CS101", Year: 2024, Semester: models.SemesterFirst},
	{CourseID: "CS201", Year: 2024, Semester: models.SemesterFirst},
	{CourseID: "CS101", Year: 2024, Semester: models.SemesterSecond},
	{CourseID: "CS301", Year: 2025, Semester: models.SemesterFirst},
	{CourseID: "MATH101", Year: 2024, Semester: models.SemesterFirst},
	{CourseID: "MATH201", Year: 2024, Semester: models.SemesterSecond},
}

// CreateDefaultData creates the demo courses and instances if they don't exist.
// Records that already exist are skipped; other failures are collected and returned together.
func CreateDefaultData(ctx context.Context, svcs *services.Services, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Courses/Instances)...")
	var finalErr error

	createdCourses := 0
	for _, data := range DefaultCourses {
		_, err := svcs.CourseService.CreateCourse(ctx, data)
		switch {
		case err == nil:
			createdCourses++
		case errors.Is(err, apperrors.ErrDuplicateID):
			lgr.Debug().Str("courseId", data.ID).Msg("Default course already exists")
		default:
			lgr.Error().Err(err).Str("courseId", data.ID).Msg("Error creating default course")
			finalErr = errors.Join(finalErr, err)
		}
	}

	createdInstances := 0
	for _, data := range DefaultInstances {
		_, err := svcs.InstanceService.CreateInstance(ctx, data)
		switch {
		case err == nil:
			createdInstances++
		case errors.Is(err, apperrors.ErrDuplicateInstance):
			lgr.Debug().Str("courseId", data.CourseID).Int("year", data.Year).Msg("Default instance already exists")
		default:
			lgr.Error().Err(err).Str("courseId", data.CourseID).Msg("Error creating default instance")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().
		Int("courses", createdCourses).
		Int("instances", createdInstances).
		Msg("Default data check/creation finished.")
	return finalErr
}
