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

func newAdminService(t *testing.T) (*AdminService, *database.Database) {
	t.Helper()
	db := newTestDB(t)
	return NewAdminService(repository.NewUserRepository(db.DB)), db
}

func TestListUsersExcludesAdmins(t *testing.T) {
	svc, db := newAdminService(t)
	admin := createTestUser(t, db, "Admin", "admin@test.com", models.RoleAdmin)
	createTestUser(t, db, "Ahmed", "ahmed@test.com", models.RoleTeacher)
	createTestUser(t, db, "Omar", "omar@test.com", models.RoleStudent)

	users, err := svc.ListUsers(requesterFor(admin))
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, user := range users {
		assert.NotEqual(t, models.RoleAdmin, user.Role)
	}
}

func TestListUsersNonAdmin(t *testing.T) {
	svc, db := newAdminService(t)
	teacher := createTestUser(t, db, "Ahmed", "ahmed@test.com", models.RoleTeacher)

	_, err := svc.ListUsers(requesterFor(teacher))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
}

func TestApproveTeacher(t *testing.T) {
	svc, db := newAdminService(t)
	admin := createTestUser(t, db, "Admin", "admin@test.com", models.RoleAdmin)
	teacher := createTestUser(t, db, "Ahmed", "ahmed@test.com", models.RoleTeacher)
	require.False(t, teacher.IsApproved)

	approved, err := svc.ApproveTeacher(requesterFor(admin), teacher.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	// Повторное подтверждение безопасно
	approved, err = svc.ApproveTeacher(requesterFor(admin), teacher.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)
}

func TestApproveTeacherUnknownUser(t *testing.T) {
	svc, db := newAdminService(t)
	admin := createTestUser(t, db, "Admin", "admin@test.com", models.RoleAdmin)

	_, err := svc.ApproveTeacher(requesterFor(admin), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "User not found")
}

func TestApproveTeacherRejectsStudent(t *testing.T) {
	svc, db := newAdminService(t)
	admin := createTestUser(t, db, "Admin", "admin@test.com", models.RoleAdmin)
	student := createTestUser(t, db, "Omar", "omar@test.com", models.RoleStudent)

	_, err := svc.ApproveTeacher(requesterFor(admin), student.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "Only teacher accounts can be approved")
}

func TestDeleteUser(t *testing.T) {
	svc, db := newAdminService(t)
	admin := createTestUser(t, db, "Admin", "admin@test.com", models.RoleAdmin)
	student := createTestUser(t, db, "Omar", "omar@test.com", models.RoleStudent)

	require.NoError(t, svc.DeleteUser(requesterFor(admin), student.ID))

	var count int64
	require.NoError(t, db.DB.Model(&models.User{}).Where("id = ?", student.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestDeleteAdminAlwaysFails(t *testing.T) {
	svc, db := newAdminService(t)
	admin := createTestUser(t, db, "Admin", "admin@test.com", models.RoleAdmin)
	otherAdmin := createTestUser(t, db, "Second Admin", "admin2@test.com", models.RoleAdmin)

	err := svc.DeleteUser(requesterFor(admin), otherAdmin.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
	assert.Equal(t, access.ReasonCannotDeleteAdmin, err.Error())

	// Даже себя администратор удалить не может
	err = svc.DeleteUser(requesterFor(admin), admin.ID)
	require.Error(t, err)
	assert.Equal(t, access.ReasonCannotDeleteAdmin, err.Error())
}

func TestDeleteUserNonAdmin(t *testing.T) {
	svc, db := newAdminService(t)
	teacher := createTestUser(t, db, "Ahmed", "ahmed@test.com", models.RoleTeacher)
	student := createTestUser(t, db, "Omar", "omar@test.com", models.RoleStudent)

	err := svc.DeleteUser(requesterFor(teacher), student.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
}
