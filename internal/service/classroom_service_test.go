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

type classroomFixture struct {
	db      *fakeDB
	objects *fakeObjectStore
	svc     *ClassroomService
	course  models.Course
	student models.Student
}

func newClassroomFixture() *classroomFixture {
	db := newFakeDB()
	objects := newFakeObjectStore()
	course := db.seedCourse("Biology", "100")
	student := db.seedStudent("Ana", 1)
	db.seedEnrollment(course.ID, student.ID)
	return &classroomFixture{
		db:      db,
		objects: objects,
		svc:     NewClassroomService(db, newTestImages(objects), nil, zap.NewNop()),
		course:  course,
		student: student,
	}
}

func TestPostClassWorkWithReference(t *testing.T) {
	f := newClassroomFixture()
	ctx := context.Background()

	work, err := f.svc.PostClassWork(ctx, f.course.ID, models.PostClassWorkRequest{Title: "Cells", TotalMarks: 10, LastDate: "2024-06-01"}, pngHeader)
	require.NoError(t, err)
	assert.NotEmpty(t, work.ReferenceURL)
	assert.True(t, f.objects.has(work.ReferencePublicID))
	require.NotNil(t, work.LastDate)

	list, err := f.svc.ListClassWork(ctx, f.course.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Cells", list[0].Title)
}

func TestPostClassWorkReleasesReferenceOnFailure(t *testing.T) {
	f := newClassroomFixture()
	f.db.failOn("Classrooms.CreateClassWork", assert.AnError)

	_, err := f.svc.PostClassWork(context.Background(), f.course.ID, models.PostClassWorkRequest{Title: "Cells"}, pngHeader)
	require.Error(t, err)
	assert.Len(t, f.objects.deletedIDs(), 1)
	assert.Empty(t, f.db.snapshot().classworks)
}

func TestSubmitWorkChecksEnrollment(t *testing.T) {
	f := newClassroomFixture()
	ctx := context.Background()
	outsider := f.db.seedStudent("Bima", 0)
	work, err := f.svc.PostClassWork(ctx, f.course.ID, models.PostClassWorkRequest{Title: "Cells", TotalMarks: 10}, nil)
	require.NoError(t, err)

	submitted, err := f.svc.SubmitWork(ctx, work.ID, f.student.ID, models.SubmitWorkRequest{Content: "answer"})
	require.NoError(t, err)
	assert.NotZero(t, submitted.ID)
	assert.True(t, submitted.Marks.IsZero())

	_, err = f.svc.SubmitWork(ctx, work.ID, outsider.ID, models.SubmitWorkRequest{Content: "answer"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidData))

	_, err = f.svc.SubmitWork(ctx, work.ID, f.student.ID, models.SubmitWorkRequest{})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))

	_, err = f.svc.SubmitWork(ctx, 999, f.student.ID, models.SubmitWorkRequest{Content: "answer"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))

	works, err := f.svc.ListWorks(ctx, work.ID)
	require.NoError(t, err)
	assert.Len(t, works, 1)
}

func TestGradeWorkBoundsAndGrader(t *testing.T) {
	f := newClassroomFixture()
	ctx := context.Background()
	teacher := f.db.seedTeacher("Budi")
	stranger := f.db.seedTeacher("Sari")
	f.db.assignTeacher(f.course.ID, teacher.ID)
	classWork, err := f.svc.PostClassWork(ctx, f.course.ID, models.PostClassWorkRequest{Title: "Cells", TotalMarks: 10}, nil)
	require.NoError(t, err)
	submitted, err := f.svc.SubmitWork(ctx, classWork.ID, f.student.ID, models.SubmitWorkRequest{Content: "answer"})
	require.NoError(t, err)

	graded, err := f.svc.GradeWork(ctx, submitted.ID, &teacher.ID, models.GradeWorkRequest{Marks: dec("8.5")})
	require.NoError(t, err)
	assert.True(t, graded.Marks.Equal(dec("8.5")))
	assert.True(t, f.db.snapshot().works[submitted.ID].Marks.Equal(dec("8.5")))

	_, err = f.svc.GradeWork(ctx, submitted.ID, &stranger.ID, models.GradeWorkRequest{Marks: dec("9")})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden))

	_, err = f.svc.GradeWork(ctx, submitted.ID, nil, models.GradeWorkRequest{Marks: dec("11")})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidData))

	_, err = f.svc.GradeWork(ctx, submitted.ID, nil, models.GradeWorkRequest{Marks: dec("-1")})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrInvalidData))

	_, err = f.svc.GradeWork(ctx, 999, nil, models.GradeWorkRequest{Marks: dec("1")})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))

	assert.True(t, f.db.snapshot().works[submitted.ID].Marks.Equal(dec("8.5")))
}

func TestDeleteClassWorkRemovesSubmissionsAndReference(t *testing.T) {
	f := newClassroomFixture()
	ctx := context.Background()
	work, err := f.svc.PostClassWork(ctx, f.course.ID, models.PostClassWorkRequest{Title: "Cells", TotalMarks: 10}, pngHeader)
	require.NoError(t, err)
	_, err = f.svc.SubmitWork(ctx, work.ID, f.student.ID, models.SubmitWorkRequest{Content: "answer"})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteClassWork(ctx, work.ID))
	state := f.db.snapshot()
	assert.Empty(t, state.classworks)
	assert.Empty(t, state.works)
	assert.Equal(t, []string{work.ReferencePublicID}, f.objects.deletedIDs())

	err = f.svc.DeleteClassWork(ctx, work.ID)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
}
