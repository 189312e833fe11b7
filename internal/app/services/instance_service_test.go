package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coursecatalog/internal/app/models"
	"github.com/yigit/coursecatalog/internal/pkg/apperrors"
)

func key(courseID string, year int, semester models.Semester) models.InstanceKey {
	return models.InstanceKey{CourseID: courseID, Year: year, Semester: semester}
}

func TestCreateInstanceRoundTrip(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t)
	mustCreateCourse(t, svcs.CourseService, "CS101")

	created, err := svcs.InstanceService.CreateInstance(ctx, models.CreateInstanceData{
		CourseID: "CS101",
		Year:     2024,
		Semester: models.SemesterFirst,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	require.NotNil(t, created.Course)
	assert.Equal(t, "CS101", created.Course.ID)

	fetched, err := svcs.InstanceService.GetInstance(ctx, key("CS101", 2024, models.SemesterFirst))
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	require.NotNil(t, fetched.Course)
	assert.Equal(t, "CS101", fetched.Course.ID)
}

func TestCreateInstanceUnknownCourse(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t)

	_, err := svcs.InstanceService.CreateInstance(ctx, models.CreateInstanceData{
		CourseID: "CS999",
		Year:     2024,
		Semester: models.SemesterFirst,
	})
	require.ErrorIs(t, err, apperrors.ErrUnknownCourse)
	assert.Equal(t, "CS999", apperrors.DetailsOf(err)["courseId"])

	instances, err := svcs.InstanceService.ListInstances(ctx, models.InstanceFilter{})
	require.NoError(t, err)
	assert.Empty(t, instances)
}

func TestCreateInstanceDuplicateTriple(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t)
	mustCreateCourse(t, svcs.CourseService, "CS101")

	data := models.CreateInstanceData{CourseID: "CS101", Year: 2024, Semester: models.SemesterFirst}
	first, err := svcs.InstanceService.CreateInstance(ctx, data)
	require.NoError(t, err)

	_, err = svcs.InstanceService.CreateInstance(ctx, data)
	require.ErrorIs(t, err, apperrors.ErrDuplicateInstance)
	assert.Contains(t, err.Error(), "CS101 in 2024 semester 1")

	fetched, err := svcs.InstanceService.GetInstance(ctx, key("CS101", 2024, models.SemesterFirst))
	require.NoError(t, err)
	assert.Equal(t, first.ID, fetched.ID)

	_, err = svcs.InstanceService.CreateInstance(ctx, models.CreateInstanceData{
		CourseID: "CS101", Year: 2024, Semester: models.SemesterSecond,
	})
	assert.NoError(t, err)
}

func TestCreateInstanceValidation(t *testing.T) {
	tests := []struct {
		name string
		data models.CreateInstanceData
	}{
		{"empty course", models.CreateInstanceData{CourseID: " ", Year: 2024, Semester: 1}},
		{"year too small", models.CreateInstanceData{CourseID: "CS101", Year: 0, Semester: 1}},
		{"semester zero", models.CreateInstanceData{CourseID: "CS101", Year: 2024, Semester: 0}},
		{"semester three", models.CreateInstanceData{CourseID: "CS101", Year: 2024, Semester: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcs := newTestServices(t)
			mustCreateCourse(t, svcs.CourseService, "CS101")
			_, err := svcs.InstanceService.CreateInstance(context.Background(), tt.data)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}

func TestListInstancesFiltersAndJoins(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t)
	mustCreateCourse(t, svcs.CourseService, "CS101")
	mustCreateCourse(t, svcs.CourseService, "MATH101")

	for _, data := range []models.CreateInstanceData{
		{CourseID: "CS101", Year: 2024, Semester: 1},
		{CourseID: "MATH101", Year: 2024, Semester: 1},
		{CourseID: "CS101", Year: 2024, Semester: 2},
		{CourseID: "CS101", Year: 2025, Semester: 1},
	} {
		_, err := svcs.InstanceService.CreateInstance(ctx, data)
		require.NoError(t, err)
	}

	all, err := svcs.InstanceService.ListInstances(ctx, models.InstanceFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)
	for _, instance := range all {
		require.NotNil(t, instance.Course)
		assert.Equal(t, instance.CourseID, instance.Course.ID)
	}

	year := 2024
	semester := models.SemesterFirst
	filtered, err := svcs.InstanceService.ListInstances(ctx, models.InstanceFilter{Year: &year, Semester: &semester})
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	assert.Equal(t, "CS101", filtered[0].CourseID)
	assert.Equal(t, "MATH101", filtered[1].CourseID)

	byYear, err := svcs.InstanceService.ListInstances(ctx, models.InstanceFilter{Year: &year})
	require.NoError(t, err)
	assert.Len(t, byYear, 3)
}

func TestInstanceOfDeletedCourseIsListedWithoutCourse(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t)
	mustCreateCourse(t, svcs.CourseService, "CS101")
	_, err := svcs.InstanceService.CreateInstance(ctx, models.CreateInstanceData{CourseID: "CS101", Year: 2024, Semester: 1})
	require.NoError(t, err)

	require.NoError(t, svcs.CourseService.DeleteCourse(ctx, "CS101"))

	instances, err := svcs.InstanceService.ListInstances(ctx, models.InstanceFilter{})
	require.NoError(t, err)
	require.Len(t, instances, 1)
	assert.Nil(t, instances[0].Course)

	fetched, err := svcs.InstanceService.GetInstance(ctx, key("CS101", 2024, 1))
	require.NoError(t, err)
	assert.Nil(t, fetched.Course)
}

func TestDenormalizedCourseIsACopy(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t)
	mustCreateCourse(t, svcs.CourseService, "CS101")
	mustCreateCourse(t, svcs.CourseService, "CS201", "CS101")
	_, err := svcs.InstanceService.CreateInstance(ctx, models.CreateInstanceData{CourseID: "CS201", Year: 2024, Semester: 1})
	require.NoError(t, err)

	fetched, err := svcs.InstanceService.GetInstance(ctx, key("CS201", 2024, 1))
	require.NoError(t, err)
	fetched.Course.Prerequisites[0] = "MUTATED"
	fetched.Course.Title = "Mutated"

	course, err := svcs.CourseService.GetCourse(ctx, "CS201")
	require.NoError(t, err)
	assert.Equal(t, []string{"CS101"}, course.Prerequisites)
	assert.Equal(t, "Course CS201", course.Title)
}

func TestDeleteInstance(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t)
	mustCreateCourse(t, svcs.CourseService, "CS101")
	_, err := svcs.InstanceService.CreateInstance(ctx, models.CreateInstanceData{CourseID: "CS101", Year: 2024, Semester: 1})
	require.NoError(t, err)

	err = svcs.InstanceService.DeleteInstance(ctx, key("CS101", 2024, 2))
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	require.NoError(t, svcs.InstanceService.DeleteInstance(ctx, key("CS101", 2024, 1)))

	_, err = svcs.InstanceService.GetInstance(ctx, key("CS101", 2024, 1))
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	err = svcs.InstanceService.DeleteInstance(ctx, key("CS101", 2024, 1))
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestConcurrentDuplicateInstancesCreateExactlyOne(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t)
	mustCreateCourse(t, svcs.CourseService, "CS101")

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		conflicts atomic.Int32
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svcs.InstanceService.CreateInstance(ctx, models.CreateInstanceData{
				CourseID: "CS101", Year: 2024, Semester: 1,
			})
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, apperrors.ErrDuplicateInstance):
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(15), conflicts.Load())
}

func TestConcurrentCourseDeleteAndInstanceCreate(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t)
	mustCreateCourse(t, svcs.CourseService, "CS101")

	var (
		wg          sync.WaitGroup
		deleteErr   error
		instanceErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		deleteErr = svcs.CourseService.DeleteCourse(ctx, "CS101")
	}()
	go func() {
		defer wg.Done()
		_, instanceErr = svcs.InstanceService.CreateInstance(ctx, models.CreateInstanceData{
			CourseID: "CS101", Year: 2024, Semester: 1,
		})
	}()
	wg.Wait()

	require.NoError(t, deleteErr)
	instances, err := svcs.InstanceService.ListInstances(ctx, models.InstanceFilter{})
	require.NoError(t, err)
	if instanceErr != nil {
		assert.ErrorIs(t, instanceErr, apperrors.ErrUnknownCourse)
		assert.Empty(t, instances)
	} else {
		assert.Len(t, instances, 1)
	}
}
