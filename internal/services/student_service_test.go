package services

import (
	"context"
	"testing"
	"time"

	"github.com/ZigaLarissa/EduAssist/internal/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStudentFixture() (*StudentService, *memStudents) {
	svc, students, _ := newStudentFixtureWithMessenger()
	return svc, students
}

func newStudentFixtureWithMessenger() (*StudentService, *memStudents, *fakeMessenger) {
	students := newMemStudents()
	classes := newMemClasses(
		&models.Class{ID: "a", Name: "Grade 4", TeacherIDs: []string{"t1"}},
		&models.Class{ID: "b", Name: "Grade 5", TeacherIDs: []string{"t1"}},
	)
	users := newMemUsers(
		&models.User{UserID: "p1", Email: "Parent@Example.com", Role: models.RoleParent},
		&models.User{UserID: "p2", Role: models.RoleParent},
		&models.User{UserID: "p3", Email: "dad@example.com", Role: models.RoleParent, FCMToken: "device-3"},
	)
	messenger := newFakeMessenger()
	svc := NewStudentService(students, classes, users, NewNotificationService(messenger, testLogger()), testLogger())
	svc.now = fixedNow
	return svc, students, messenger
}

func TestAddStudentDefaults(t *testing.T) {
	svc, _ := newStudentFixture()

	student, err := svc.AddStudent(context.Background(), "t1", &models.StudentRequest{
		Surname:  " Ada ",
		LastName: "Lovelace",
		Position: "1",
		ClassID:  "a",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, student.ID)
	assert.Equal(t, "Ada", student.Surname)
	assert.Equal(t, "0", student.Percentage)
	assert.Equal(t, models.ParentInfo{}, student.ParentInfo)
	assert.Equal(t, "t1", student.TeacherID)
	assert.Equal(t, fixedNow(), student.CreatedAt)
	assert.Equal(t, fixedNow(), student.UpdatedAt)
}

func TestAddStudentValidation(t *testing.T) {
	svc, students := newStudentFixture()
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.StudentRequest
	}{
		{"missing surname", models.StudentRequest{LastName: "L", Position: "1", ClassID: "a"}},
		{"missing last name", models.StudentRequest{Surname: "S", Position: "1", ClassID: "a"}},
		{"missing position", models.StudentRequest{Surname: "S", LastName: "L", ClassID: "a"}},
		{"blank fields", models.StudentRequest{Surname: " ", LastName: " ", Position: " ", ClassID: "a"}},
		{"missing class", models.StudentRequest{Surname: "S", LastName: "L", Position: "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddStudent(ctx, "t1", &tt.req)
			assert.True(t, IsValidation(err))
		})
	}

	_, err := svc.AddStudent(ctx, "t1", &models.StudentRequest{Surname: "S", LastName: "L", Position: "1", ClassID: "missing"})
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Empty(t, students.students)
}

func TestUpdateStudentKeepsCreatedAt(t *testing.T) {
	svc, students := newStudentFixture()
	ctx := context.Background()
	created := fixedNow().Add(-24 * time.Hour)
	students.students["s1"] = &models.Student{ID: "s1", Surname: "Old", LastName: "Name", Position: "3", ClassID: "a", CreatedAt: created}

	student, err := svc.UpdateStudent(ctx, "t1", "s1", &models.StudentRequest{
		Surname:    "New",
		LastName:   "Name",
		Position:   "2",
		Percentage: "87",
		ParentInfo: models.ParentInfo{Email: " Parent@Example.com "},
		ClassID:    "a",
	})
	require.NoError(t, err)

	assert.Equal(t, created, student.CreatedAt)
	assert.Equal(t, fixedNow(), student.UpdatedAt)
	assert.Equal(t, "87", students.students["s1"].Percentage)
	assert.Equal(t, "parent@example.com", students.students["s1"].ParentInfo.Email)

	_, err = svc.UpdateStudent(ctx, "t1", "missing", &models.StudentRequest{})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDeleteStudent(t *testing.T) {
	svc, students := newStudentFixture()
	ctx := context.Background()
	students.students["s1"] = &models.Student{ID: "s1", ClassID: "a"}

	require.NoError(t, svc.DeleteStudent(ctx, "s1"))
	assert.Empty(t, students.students)
	assert.True(t, errors.Is(svc.DeleteStudent(ctx, "s1"), ErrNotFound))
}

func TestParentStudents(t *testing.T) {
	svc, students := newStudentFixture()
	ctx := context.Background()
	students.students["s1"] = &models.Student{ID: "s1", ClassID: "a", ParentInfo: models.ParentInfo{Email: "parent@example.com"}}
	students.students["s2"] = &models.Student{ID: "s2", ClassID: "a", ParentInfo: models.ParentInfo{Email: "other@example.com"}}

	mine, err := svc.ParentStudents(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "s1", mine[0].ID)

	mine, err = svc.ParentStudents(ctx, "p2")
	require.NoError(t, err)
	assert.Empty(t, mine)

	inClass, err := svc.ClassStudents(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, inClass, 2)
}

func TestAddStudentSubscribesParentDevice(t *testing.T) {
	svc, _, messenger := newStudentFixtureWithMessenger()
	ctx := context.Background()

	student, err := svc.AddStudent(ctx, "t1", &models.StudentRequest{
		Surname:    "Ada",
		LastName:   "Lovelace",
		Position:   "1",
		ParentInfo: models.ParentInfo{Email: " Dad@Example.com "},
		ClassID:    "a",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"device-3"}, messenger.subscribed[ClassTopic("a")])

	_, err = svc.UpdateStudent(ctx, "t1", student.ID, &models.StudentRequest{
		Surname:    "Ada",
		LastName:   "Lovelace",
		Position:   "1",
		ParentInfo: models.ParentInfo{Email: "dad@example.com"},
		ClassID:    "b",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"device-3"}, messenger.subscribed[ClassTopic("b")])

	_, err = svc.AddStudent(ctx, "t1", &models.StudentRequest{
		Surname:    "Alan",
		LastName:   "Turing",
		Position:   "2",
		ParentInfo: models.ParentInfo{Email: "unregistered@example.com"},
		ClassID:    "a",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"device-3"}, messenger.subscribed[ClassTopic("a")])
}
