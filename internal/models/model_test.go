package models_test

import (
	"testing"

	"ctrip-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRoleHelpers(t *testing.T) {
	assert.True(t, models.RoleStudent.Valid())
	assert.False(t, models.Role("SUPERUSER").Valid())

	assert.False(t, models.RoleStudent.IsPrivileged())
	assert.False(t, models.RoleStaff.IsPrivileged())
	assert.True(t, models.RoleSecurity.IsPrivileged())
	assert.True(t, models.RoleAdmin.IsPrivileged())

	assert.False(t, models.RoleStudent.IsStaff())
	assert.True(t, models.RoleStaff.IsStaff())

	assert.ElementsMatch(t,
		[]models.Role{models.RoleStaff, models.RoleSecurity, models.RoleAdmin},
		models.StaffRoles())
}

func TestPriorityIsUrgent(t *testing.T) {
	assert.False(t, models.PriorityLow.IsUrgent())
	assert.False(t, models.PriorityMedium.IsUrgent())
	assert.True(t, models.PriorityHigh.IsUrgent())
	assert.True(t, models.PriorityCritical.IsUrgent())
}

func TestInstanceIsActive(t *testing.T) {
	for _, status := range []models.InstanceStatus{
		models.InstanceProvisioning,
		models.InstanceRunning,
		models.InstanceStopped,
	} {
		instance := &models.InvestigationInstance{Status: status}
		assert.True(t, instance.IsActive(), "status %s should count as active", status)
	}

	terminated := &models.InvestigationInstance{Status: models.InstanceTerminated}
	assert.False(t, terminated.IsActive())
}

func TestBeforeCreate_GeneratesUUID(t *testing.T) {
	report := &models.Report{Title: "t", Description: "d", Type: models.ReportTypeOther}
	assert.Equal(t, uuid.Nil, report.ID)

	err := report.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, report.ID)
}

func TestBeforeCreate_PreservesExistingID(t *testing.T) {
	existing := uuid.New()
	user := &models.User{ID: existing, Email: "a@veritas.edu"}

	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.Equal(t, existing, user.ID)
}

func TestUserPublic_StripsSensitiveFields(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Email:        "a@veritas.edu",
		PasswordHash: "secret-hash",
		Role:         models.RoleStudent,
	}

	public := user.Public()
	assert.Equal(t, user.ID, public.ID)
	assert.Equal(t, user.Email, public.Email)
	assert.Equal(t, user.Role, public.Role)

	var nilUser *models.User
	assert.Nil(t, nilUser.Public())
}
