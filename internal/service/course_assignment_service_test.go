package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/schoolops-api/internal/models"
	appErrors "github.com/noah-isme/schoolops-api/pkg/errors"
)

func newTestAssignment(db *fakeDB) *CourseAssignmentService {
	return NewCourseAssignmentService(db, newTestLedger(db, nil), nil, zap.NewNop())
}

func TestAssignRecordsCourseStartMarker(t *testing.T) {
	db := newFakeDB()
	course := db.seedCourse("Physics", "300")
	teacher := db.seedTeacher("Budi")
	svc := newTestAssignment(db)

	result, err := svc.Assign(context.Background(), course.ID, teacher.ID)
	require.NoError(t, err)
	assert.Nil(t, result.PreviousTeacherID)
	require.NotNil(t, result.Transaction)
	assert.Equal(t, models.TransactionTypeCourseStart, result.Transaction.Type)
	assert.True(t, decimal.Zero.Equal(result.Transaction.Amount))
	assert.Equal(t, strconv.FormatInt(course.ID, 10), result.Transaction.Mode)
	assert.Equal(t, "Physics", result.Transaction.Remarks)

	state := db.snapshot()
	require.NotNil(t, state.courses[course.ID].TeacherID)
	assert.Equal(t, teacher.ID, *state.courses[course.ID].TeacherID)
	assert.True(t, decimal.Zero.Equal(state.accounts[result.AccountID].Balance))
}

func TestAssignMovesCourseFromPreviousTeacher(t *testing.T) {
	db := newFakeDB()
	course := db.seedCourse("Physics", "300")
	first := db.seedTeacher("Budi")
	second := db.seedTeacher("Citra")
	svc := newTestAssignment(db)
	ctx := context.Background()

	_, err := svc.Assign(ctx, course.ID, first.ID)
	require.NoError(t, err)
	result, err := svc.Assign(ctx, course.ID, second.ID)
	require.NoError(t, err)
	require.NotNil(t, result.PreviousTeacherID)
	assert.Equal(t, first.ID, *result.PreviousTeacherID)

	repos := db.Repos()
	firstCourses, err := repos.Courses.ListIDsByTeacher(ctx, first.ID)
	require.NoError(t, err)
	assert.Empty(t, firstCourses)
	secondCourses, err := repos.Courses.ListIDsByTeacher(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{course.ID}, secondCourses)
}

func TestAssignTwiceAddsSecondMarker(t *testing.T) {
	db := newFakeDB()
	course := db.seedCourse("Physics", "300")
	teacher := db.seedTeacher("Budi")
	svc := newTestAssignment(db)
	ctx := context.Background()

	first, err := svc.Assign(ctx, course.ID, teacher.ID)
	require.NoError(t, err)
	_, err = svc.Assign(ctx, course.ID, teacher.ID)
	require.NoError(t, err)
	assert.Len(t, db.transactionsOf(first.AccountID), 2)
	assert.Len(t, db.snapshot().accounts, 1)
}

func TestAssignMissingEntities(t *testing.T) {
	db := newFakeDB()
	course := db.seedCourse("Physics", "300")
	teacher := db.seedTeacher("Budi")
	svc := newTestAssignment(db)

	_, err := svc.Assign(context.Background(), 404, teacher.ID)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))

	_, err = svc.Assign(context.Background(), course.ID, 404)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
	assert.Nil(t, db.snapshot().courses[course.ID].TeacherID)
}
