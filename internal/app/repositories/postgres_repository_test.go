package repositories

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coursecatalog/internal/app/migrations"
	"github.com/yigit/coursecatalog/internal/app/models"
)

// newTestPool connects to TEST_DATABASE_URL, applies the migrations and empties the tables.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	migrator := migrations.NewMigrator(pool, zerolog.Nop())
	require.NoError(t, migrator.MigrateFromDirectory(ctx, "../../../migrations"))

	_, err = pool.Exec(ctx, "TRUNCATE course_instances, course_prerequisites, courses")
	require.NoError(t, err)
	return pool
}

func TestPostgresCourseRepository(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := NewCourseRepository(pool)

	require.NoError(t, repo.Create(ctx, &models.Course{ID: "CS101", Title: "Intro"}))
	require.NoError(t, repo.Create(ctx, &models.Course{ID: "CS201", Title: "DS", Prerequisites: []string{"CS101"}}))
	require.NoError(t, repo.Create(ctx, &models.Course{ID: "CS301", Title: "Algo", Prerequisites: []string{"CS201", "CS101"}}))
	assert.ErrorIs(t, repo.Create(ctx, &models.Course{ID: "CS101", Title: "Again"}), ErrCourseAlreadyExists)

	courses, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 3)
	assert.Equal(t, "CS101", courses[0].ID)
	assert.Equal(t, []string{}, courses[0].Prerequisites)
	assert.Equal(t, []string{"CS201", "CS101"}, courses[2].Prerequisites)

	dependents, err := repo.FindDependents(ctx, "CS101")
	require.NoError(t, err)
	assert.Equal(t, []string{"CS201", "CS301"}, dependents)

	exists, err := repo.Exists(ctx, "CS999")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Delete(ctx, "CS301"))
	assert.ErrorIs(t, repo.Delete(ctx, "CS301"), ErrCourseNotFound)
	_, err = repo.GetByID(ctx, "CS301")
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestPostgresInstanceRepository(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := NewInstanceRepository(pool)

	first := &models.CourseInstance{ID: "11111111-1111-1111-1111-111111111111", CourseID: "CS101", Year: 2024, Semester: 1}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, &models.CourseInstance{ID: "22222222-2222-2222-2222-222222222222", CourseID: "CS101", Year: 2025, Semester: 2}))
	assert.ErrorIs(t, repo.Create(ctx, &models.CourseInstance{ID: "33333333-3333-3333-3333-333333333333", CourseID: "CS101", Year: 2024, Semester: 1}), ErrInstanceAlreadyExists)

	got, err := repo.GetByKey(ctx, first.Key())
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, models.SemesterFirst, got.Semester)

	year := 2025
	filtered, err := repo.GetAll(ctx, models.InstanceFilter{Year: &year})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, models.SemesterSecond, filtered[0].Semester)

	require.NoError(t, repo.Delete(ctx, first.Key()))
	assert.ErrorIs(t, repo.Delete(ctx, first.Key()), ErrInstanceNotFound)
}
