package services

import (
	"testing"

	"ctrip-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_CreatesStudentAccount(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(t, db)

	user, err := svc.Register("Alice@Veritas.EDU", "Secret123!", "127.0.0.1", "test")
	require.NoError(t, err)

	assert.Equal(t, "alice@veritas.edu", user.Email, "email should be normalized to lower case")
	assert.Equal(t, models.RoleStudent, user.Role, "public registration never grants another role")
	assert.NotEqual(t, "Secret123!", user.PasswordHash)

	var audit models.AuditLog
	require.NoError(t, db.Where("action = ?", "USER_REGISTERED").First(&audit).Error)
	assert.Equal(t, user.ID, *audit.UserID)
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(t, db)

	_, err := svc.Register("bob@veritas.edu", "Secret123!", "", "")
	require.NoError(t, err)

	_, err = svc.Register("BOB@veritas.edu", "Other123!", "", "")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateUser_GrantsArbitraryRole(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(t, db)
	admin := createTestUser(t, db, "admin@veritas.edu", models.RoleAdmin)

	user, err := svc.CreateUser("Analyst@Veritas.EDU", "Secret123!", models.RoleSecurity, admin.ID, "127.0.0.1", "test")
	require.NoError(t, err)
	assert.Equal(t, "analyst@veritas.edu", user.Email)
	assert.Equal(t, models.RoleSecurity, user.Role)

	// The audit entry is attributed to the admin, not the new account.
	var audit models.AuditLog
	require.NoError(t, db.Where("action = ?", "USER_CREATED").First(&audit).Error)
	assert.Equal(t, admin.ID, *audit.UserID)
}

func TestCreateUser_RejectsInvalidRoleAndDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(t, db)
	admin := createTestUser(t, db, "admin@veritas.edu", models.RoleAdmin)

	_, err := svc.CreateUser("x@veritas.edu", "Secret123!", "SUPERUSER", admin.ID, "", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateUser("admin@veritas.edu", "Secret123!", models.RoleStaff, admin.ID, "", "")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLogin_IssuesTokenPair(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(t, db)
	user := createTestUser(t, db, "carol@veritas.edu", models.RoleStudent)

	got, pair, err := svc.Login("carol@veritas.edu", testPassword, "127.0.0.1", "test")
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.Equal(t, user.ID, got.ID)

	claims, err := svc.ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, models.RoleStudent, claims.Role)
}

func TestLogin_WrongPasswordIsRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(t, db)
	user := createTestUser(t, db, "dave@veritas.edu", models.RoleStudent)

	_, _, err := svc.Login("dave@veritas.edu", "wrong-password", "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.Equal(t, 1, stored.FailedLoginAttempts)
	assert.False(t, stored.IsLocked)
}

func TestLogin_LocksAfterFiveFailures(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(t, db)
	user := createTestUser(t, db, "eve@veritas.edu", models.RoleStudent)

	for i := 0; i < 5; i++ {
		_, _, err := svc.Login("eve@veritas.edu", "wrong-password", "", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.True(t, stored.IsLocked)
	assert.Equal(t, 5, stored.FailedLoginAttempts)

	// The correct password no longer helps; the lock is checked first.
	_, _, err := svc.Login("eve@veritas.edu", testPassword, "", "")
	assert.ErrorIs(t, err, ErrAccountLocked)

	var audit models.AuditLog
	require.NoError(t, db.Where("action = ?", "ACCOUNT_LOCKED").First(&audit).Error)

	// The rejected attempt against the locked account is audited too.
	// A fresh struct avoids GORM reusing the previous row's primary key
	// as a query condition.
	var blocked models.AuditLog
	require.NoError(t, db.Where("action = ?", "LOGIN_BLOCKED").First(&blocked).Error)
	assert.Equal(t, user.ID, *blocked.UserID)
}

func TestLogin_SuccessResetsFailureCounter(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(t, db)
	user := createTestUser(t, db, "frank@veritas.edu", models.RoleStudent)

	for i := 0; i < 3; i++ {
		svc.Login("frank@veritas.edu", "wrong-password", "", "")
	}

	_, _, err := svc.Login("frank@veritas.edu", testPassword, "", "")
	require.NoError(t, err)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.Equal(t, 0, stored.FailedLoginAttempts)
}

func TestRefresh_RotatesTheRefreshToken(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(t, db)
	createTestUser(t, db, "grace@veritas.edu", models.RoleStudent)

	_, pair, err := svc.Login("grace@veritas.edu", testPassword, "", "")
	require.NoError(t, err)

	rotated, err := svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// The superseded token can no longer be redeemed.
	_, err = svc.Refresh(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// The current one still can.
	_, err = svc.Refresh(rotated.RefreshToken)
	require.NoError(t, err)
}

func TestRefresh_RejectsUnknownToken(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(t, db)

	_, err := svc.Refresh("not-a-jwt")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestLogout_InvalidatesRefreshToken(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(t, db)
	user := createTestUser(t, db, "heidi@veritas.edu", models.RoleStudent)

	_, pair, err := svc.Login("heidi@veritas.edu", testPassword, "", "")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(user.ID, "", ""))

	_, err = svc.Refresh(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrAccessDenied)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.Nil(t, stored.HashedRefreshToken)
}
