package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/schoolops-api/internal/models"
	appErrors "github.com/noah-isme/schoolops-api/pkg/errors"
)

func TestTeacherCreateWithAddress(t *testing.T) {
	db := newFakeDB()
	svc := NewTeacherService(db, nil, nil, zap.NewNop())
	ctx := context.Background()

	created, err := svc.Create(ctx, models.CreateTeacherRequest{
		Name:    "Budi",
		Salary:  4000,
		Address: &models.AddressRequest{City: "Bandung", Street: "Jl. Merdeka 1"},
	})
	require.NoError(t, err)
	require.NotNil(t, created.AddressID)

	detail, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Address)
	assert.Equal(t, "Bandung", detail.Address.City)
	assert.Empty(t, detail.CourseIDs)
}

func TestTeacherCreateRollsBackAddress(t *testing.T) {
	db := newFakeDB()
	db.failOn("Teachers.Create", assert.AnError)
	svc := NewTeacherService(db, nil, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), models.CreateTeacherRequest{
		Name:    "Budi",
		Address: &models.AddressRequest{City: "Bandung", Street: "Jl. Merdeka 1"},
	})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrStorage))
	assert.Empty(t, db.snapshot().addresses)
}

func TestTeacherCreateValidatesAddress(t *testing.T) {
	db := newFakeDB()
	svc := NewTeacherService(db, nil, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), models.CreateTeacherRequest{Name: "Budi", Address: &models.AddressRequest{}})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
}

func TestTeacherListCourses(t *testing.T) {
	db := newFakeDB()
	teacher := db.seedTeacher("Budi")
	course := db.seedCourse("Physics", "100")
	db.seedCourse("Chemistry", "100")
	require.NoError(t, db.Repos().Courses.SetTeacher(context.Background(), course.ID, &teacher.ID))
	svc := NewTeacherService(db, nil, nil, zap.NewNop())

	courses, page, err := svc.ListCourses(context.Background(), teacher.ID, models.CourseFilter{})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Physics", courses[0].Name)
	assert.Equal(t, 1, page.TotalCount)

	detail, err := svc.Get(context.Background(), teacher.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{course.ID}, detail.CourseIDs)

	_, _, err = svc.ListCourses(context.Background(), 999, models.CourseFilter{})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
}

func TestTeacherUpdateCreatesMissingAddress(t *testing.T) {
	db := newFakeDB()
	teacher := db.seedTeacher("Budi")
	svc := NewTeacherService(db, nil, nil, zap.NewNop())
	ctx := context.Background()

	salary := 5000
	updated, err := svc.Update(ctx, teacher.ID, models.UpdateTeacherRequest{
		Salary:  &salary,
		Address: &models.AddressRequest{City: "Bandung", Street: "Jl. Merdeka 1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Budi", updated.Name)
	assert.Equal(t, 5000, updated.Salary)
	require.NotNil(t, updated.Address)
	assert.Equal(t, "Bandung", updated.Address.City)
}

func TestTeacherUpdateRollsBackOnFailure(t *testing.T) {
	db := newFakeDB()
	teacher := db.seedTeacher("Budi")
	db.failOn("Teachers.Update", assert.AnError)
	svc := NewTeacherService(db, nil, nil, zap.NewNop())

	name := "Budi Santoso"
	_, err := svc.Update(context.Background(), teacher.ID, models.UpdateTeacherRequest{
		Name:    &name,
		Address: &models.AddressRequest{City: "Bandung", Street: "Jl. Merdeka 1"},
	})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrStorage))
	state := db.snapshot()
	assert.Empty(t, state.addresses)
	assert.Equal(t, "Budi", state.teachers[teacher.ID].Name)
}
