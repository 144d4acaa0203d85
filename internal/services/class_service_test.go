package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdalla343/kushof/internal/access"
	"github.com/Abdalla343/kushof/internal/apperrors"
	"github.com/Abdalla343/kushof/internal/models"
	"github.com/Abdalla343/kushof/internal/repository"
	"github.com/Abdalla343/kushof/pkg/database"
)

func newClassService(t *testing.T) (*ClassService, *database.Database) {
	t.Helper()
	db := newTestDB(t)
	classRepo := repository.NewClassRepository(db.DB)
	userRepo := repository.NewUserRepository(db.DB)
	return NewClassService(classRepo, userRepo), db
}

func TestCreateClass(t *testing.T) {
	svc, db := newClassService(t)
	teacher := createTestUser(t, db, "Ahmed", "ahmed@test.com", models.RoleTeacher)

	class, err := svc.CreateClass(teacher.ID, "Grade 11", "Science track")
	require.NoError(t, err)
	assert.Equal(t, teacher.ID, class.TeacherID)
	assert.Equal(t, "Grade 11", class.Name)
}

func TestListClassesTeacherSeesOwn(t *testing.T) {
	svc, db := newClassService(t)
	teacher := createTestUser(t, db, "Ahmed", "ahmed@test.com", models.RoleTeacher)
	other := createTestUser(t, db, "Mona", "mona@test.com", models.RoleTeacher)
	createTestClass(t, db, teacher.ID, "Grade 11")
	createTestClass(t, db, other.ID, "Grade 12")

	classes, err := svc.ListClasses(requesterFor(teacher))
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, "Grade 11", classes[0].Name)
}

func TestListClassesStudentSeesEnrolled(t *testing.T) {
	svc, db := newClassService(t)
	teacher := createTestUser(t, db, "Ahmed", "ahmed@test.com", models.RoleTeacher)
	student := createTestUser(t, db, "Omar", "omar@test.com", models.RoleStudent)
	enrolledClass := createTestClass(t, db, teacher.ID, "Grade 11")
	createTestClass(t, db, teacher.ID, "Grade 12")
	enrollStudent(t, db, student.ID, enrolledClass.ID)

	classes, err := svc.ListClasses(requesterFor(student))
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, enrolledClass.ID, classes[0].ID)
}

func TestGetClassOwner(t *testing.T) {
	svc, db := newClassService(t)
	teacher := createTestUser(t, db, "Ahmed", "ahmed@test.com", models.RoleTeacher)
	class := createTestClass(t, db, teacher.ID, "Grade 11")

	got, err := svc.GetClass(requesterFor(teacher), class.ID)
	require.NoError(t, err)
	assert.Equal(t, class.ID, got.ID)
}

func TestGetClassUnenrolledStudentForbidden(t *testing.T) {
	svc, db := newClassService(t)
	teacher := createTestUser(t, db, "Ahmed", "ahmed@test.com", models.RoleTeacher)
	student := createTestUser(t, db, "Omar", "omar@test.com", models.RoleStudent)
	class := createTestClass(t, db, teacher.ID, "Grade 11")

	_, err := svc.GetClass(requesterFor(student), class.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
}

func TestGetClassNotFoundBeforeForbidden(t *testing.T) {
	svc, db := newClassService(t)
	student := createTestUser(t, db, "Omar", "omar@test.com", models.RoleStudent)

	_, err := svc.GetClass(requesterFor(student), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestAddStudentsIgnoresDuplicates(t *testing.T) {
	svc, db := newClassService(t)
	teacher := createTestUser(t, db, "Ahmed", "ahmed@test.com", models.RoleTeacher)
	student := createTestUser(t, db, "Omar", "omar@test.com", models.RoleStudent)
	class := createTestClass(t, db, teacher.ID, "Grade 11")

	require.NoError(t, svc.AddStudents(requesterFor(teacher), class.ID, []uuid.UUID{student.ID}))
	// Повторное зачисление не ошибка и не дубликат
	require.NoError(t, svc.AddStudents(requesterFor(teacher), class.ID, []uuid.UUID{student.ID}))

	var count int64
	require.NoError(t, db.DB.Model(&models.StudentClass{}).Where("class_id = ?", class.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAddStudentsEmptyList(t *testing.T) {
	svc, db := newClassService(t)
	teacher := createTestUser(t, db, "Ahmed", "ahmed@test.com", models.RoleTeacher)
	class := createTestClass(t, db, teacher.ID, "Grade 11")

	err := svc.AddStudents(requesterFor(teacher), class.ID, nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestAddStudentsNotOwner(t *testing.T) {
	svc, db := newClassService(t)
	teacher := createTestUser(t, db, "Ahmed", "ahmed@test.com", models.RoleTeacher)
	other := createTestUser(t, db, "Mona", "mona@test.com", models.RoleTeacher)
	student := createTestUser(t, db, "Omar", "omar@test.com", models.RoleStudent)
	class := createTestClass(t, db, teacher.ID, "Grade 11")

	err := svc.AddStudents(requesterFor(other), class.ID, []uuid.UUID{student.ID})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
}

func TestAvailableStudents(t *testing.T) {
	svc, db := newClassService(t)
	teacher := createTestUser(t, db, "Ahmed", "ahmed@test.com", models.RoleTeacher)
	teacher.IsPrime = true
	require.NoError(t, db.DB.Save(teacher).Error)
	enrolled := createTestUser(t, db, "Omar", "omar@test.com", models.RoleStudent)
	free := createTestUser(t, db, "Sara", "sara@test.com", models.RoleStudent)
	class := createTestClass(t, db, teacher.ID, "Grade 11")
	enrollStudent(t, db, enrolled.ID, class.ID)

	students, err := svc.AvailableStudents(requesterFor(teacher))
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, free.ID, students[0].ID)
}

func TestAvailableStudentsRequiresPrime(t *testing.T) {
	svc, db := newClassService(t)
	teacher := createTestUser(t, db, "Ahmed", "ahmed@test.com", models.RoleTeacher)

	_, err := svc.AvailableStudents(requesterFor(teacher))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
	assert.Equal(t, access.ReasonPremiumOnly, err.Error())
}
