package repositories

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coursecatalog/internal/app/models"
)

func TestMemoryCourseRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryCourseRepository()

	require.NoError(t, repo.Create(ctx, &models.Course{ID: "CS101", Title: "Intro"}))
	require.NoError(t, repo.Create(ctx, &models.Course{ID: "CS201", Title: "Data Structures", Prerequisites: []string{"CS101"}}))
	require.NoError(t, repo.Create(ctx, &models.Course{ID: "CS301", Title: "Algorithms", Prerequisites: []string{"CS101", "CS201"}}))

	assert.ErrorIs(t, repo.Create(ctx, &models.Course{ID: "CS101", Title: "Again"}), ErrCourseAlreadyExists)

	courses, err := repo.GetAll(ctx)
	require.NoError(t, err)
	want := []*models.Course{
		{ID: "CS101", Title: "Intro", Prerequisites: []string{}},
		{ID: "CS201", Title: "Data Structures", Prerequisites: []string{"CS101"}},
		{ID: "CS301", Title: "Algorithms", Prerequisites: []string{"CS101", "CS201"}},
	}
	if diff := cmp.Diff(want, courses); diff != "" {
		t.Errorf("GetAll mismatch (-want +got):\n%s", diff)
	}

	dependents, err := repo.FindDependents(ctx, "CS101")
	require.NoError(t, err)
	assert.Equal(t, []string{"CS201", "CS301"}, dependents)

	dependents, err = repo.FindDependents(ctx, "CS301")
	require.NoError(t, err)
	assert.Equal(t, []string{}, dependents)

	exists, err := repo.Exists(ctx, "CS201")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.Delete(ctx, "CS201"))
	assert.ErrorIs(t, repo.Delete(ctx, "CS201"), ErrCourseNotFound)

	_, err = repo.GetByID(ctx, "CS201")
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestMemoryCourseRepositoryIsolatesCallers(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryCourseRepository()

	input := &models.Course{ID: "CS201", Title: "DS", Prerequisites: []string{"CS101"}}
	require.NoError(t, repo.Create(ctx, input))
	input.Prerequisites[0] = "CHANGED"

	got, err := repo.GetByID(ctx, "CS201")
	require.NoError(t, err)
	got.Prerequisites = append(got.Prerequisites, "EXTRA")

	again, err := repo.GetByID(ctx, "CS201")
	require.NoError(t, err)
	assert.Equal(t, []string{"CS101"}, again.Prerequisites)
}

func TestMemoryInstanceRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryInstanceRepository()

	first := &models.CourseInstance{
		ID: "i-1", CourseID: "CS101", Year: 2024, Semester: models.SemesterFirst,
		Course: &models.Course{ID: "CS101"},
	}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, &models.CourseInstance{ID: "i-2", CourseID: "CS101", Year: 2024, Semester: models.SemesterSecond}))
	require.NoError(t, repo.Create(ctx, &models.CourseInstance{ID: "i-3", CourseID: "CS201", Year: 2025, Semester: models.SemesterFirst}))

	dup := &models.CourseInstance{ID: "i-4", CourseID: "CS101", Year: 2024, Semester: models.SemesterFirst}
	assert.ErrorIs(t, repo.Create(ctx, dup), ErrInstanceAlreadyExists)

	stored, err := repo.GetByKey(ctx, first.Key())
	require.NoError(t, err)
	assert.Equal(t, "i-1", stored.ID)
	assert.Nil(t, stored.Course)

	semester := models.SemesterFirst
	firstSemester, err := repo.GetAll(ctx, models.InstanceFilter{Semester: &semester})
	require.NoError(t, err)
	ids := make([]string, 0, len(firstSemester))
	for _, i := range firstSemester {
		ids = append(ids, i.ID)
	}
	assert.Equal(t, []string{"i-1", "i-3"}, ids)

	require.NoError(t, repo.Delete(ctx, first.Key()))
	assert.ErrorIs(t, repo.Delete(ctx, first.Key()), ErrInstanceNotFound)

	all, err := repo.GetAll(ctx, models.InstanceFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
