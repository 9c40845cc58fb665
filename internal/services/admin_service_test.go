package services

import (
	"testing"

	"ctrip-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestAdminService(db *gorm.DB) *AdminService {
	return NewAdminService(db, NewAuditService(db))
}

func TestUpdateRole_PromotesUser(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAdminService(db)
	admin := createTestUser(t, db, "admin@veritas.edu", models.RoleAdmin)
	student := createTestUser(t, db, "student@veritas.edu", models.RoleStudent)

	updated, err := svc.UpdateRole(student.ID, admin.ID, models.RoleStaff, "127.0.0.1", "test")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, updated.Role)

	var audit models.AuditLog
	require.NoError(t, db.Where("action = ?", "USER_ROLE_CHANGED").First(&audit).Error)
	assert.Contains(t, audit.Details, "STUDENT -> STAFF")
}

func TestUpdateRole_SelfChangeForbidden(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAdminService(db)
	admin := createTestUser(t, db, "admin@veritas.edu", models.RoleAdmin)

	_, err := svc.UpdateRole(admin.ID, admin.ID, models.RoleStudent, "", "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateRole_InvalidRole(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAdminService(db)
	admin := createTestUser(t, db, "admin@veritas.edu", models.RoleAdmin)
	student := createTestUser(t, db, "student@veritas.edu", models.RoleStudent)

	_, err := svc.UpdateRole(student.ID, admin.ID, "SUPERUSER", "", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateRole_UnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAdminService(db)
	admin := createTestUser(t, db, "admin@veritas.edu", models.RoleAdmin)

	_, err := svc.UpdateRole(uuid.New(), admin.ID, models.RoleStaff, "", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetLocked_SelfLockForbidden(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAdminService(db)
	admin := createTestUser(t, db, "admin@veritas.edu", models.RoleAdmin)

	_, err := svc.SetLocked(admin.ID, admin.ID, true, "", "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSetLocked_UnlockResetsFailedAttempts(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAdminService(db)
	admin := createTestUser(t, db, "admin@veritas.edu", models.RoleAdmin)
	student := createTestUser(t, db, "student@veritas.edu", models.RoleStudent)

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", student.ID).
		Updates(map[string]interface{}{"is_locked": true, "failed_login_attempts": 5}).Error)

	unlocked, err := svc.SetLocked(student.ID, admin.ID, false, "", "")
	require.NoError(t, err)
	assert.False(t, unlocked.IsLocked)
	assert.Equal(t, 0, unlocked.FailedLoginAttempts)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", student.ID).Error)
	assert.False(t, stored.IsLocked)
	assert.Equal(t, 0, stored.FailedLoginAttempts)

	var audit models.AuditLog
	require.NoError(t, db.Where("action = ?", "USER_UNLOCKED").First(&audit).Error)
}

func TestSetLocked_LockBlocksAccount(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAdminService(db)
	authSvc := newTestAuthService(t, db)
	admin := createTestUser(t, db, "admin@veritas.edu", models.RoleAdmin)
	student := createTestUser(t, db, "student@veritas.edu", models.RoleStudent)

	_, err := svc.SetLocked(student.ID, admin.ID, true, "", "")
	require.NoError(t, err)

	_, _, err = authSvc.Login("student@veritas.edu", testPassword, "", "")
	assert.ErrorIs(t, err, ErrAccountLocked)
}

func TestDeleteUser_SelfDeleteForbidden(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAdminService(db)
	admin := createTestUser(t, db, "admin@veritas.edu", models.RoleAdmin)

	err := svc.DeleteUser(admin.ID, admin.ID, "", "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteUser_RemovesAccount(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAdminService(db)
	admin := createTestUser(t, db, "admin@veritas.edu", models.RoleAdmin)
	student := createTestUser(t, db, "student@veritas.edu", models.RoleStudent)

	require.NoError(t, svc.DeleteUser(student.ID, admin.ID, "", ""))

	var count int64
	db.Model(&models.User{}).Where("id = ?", student.ID).Count(&count)
	assert.EqualValues(t, 0, count)

	var audit models.AuditLog
	require.NoError(t, db.Where("action = ?", "USER_DELETED").First(&audit).Error)
	assert.Equal(t, "student@veritas.edu", audit.Details)
}

func TestListUsers_FiltersByRole(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAdminService(db)
	createTestUser(t, db, "admin@veritas.edu", models.RoleAdmin)
	createTestUser(t, db, "a@veritas.edu", models.RoleStudent)
	createTestUser(t, db, "b@veritas.edu", models.RoleStudent)

	users, total, err := svc.ListUsers(1, 10, string(models.RoleStudent))
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, u := range users {
		assert.Equal(t, models.RoleStudent, u.Role)
	}
}
