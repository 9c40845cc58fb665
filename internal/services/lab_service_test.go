package services

import (
	"testing"
	"time"

	"ctrip-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestLabService(db *gorm.DB, delay time.Duration) *LabService {
	return NewLabService(db, NewAuditService(db), delay)
}

func spawnTestReport(t *testing.T, db *gorm.DB, authorID uuid.UUID) *models.Report {
	t.Helper()
	report := &models.Report{
		Title:       "Compromised lab workstation",
		Description: "Needs isolated analysis",
		Type:        models.ReportTypeMalware,
		Status:      models.ReportStatusInvestigating,
		Priority:    models.PriorityHigh,
		AuthorID:    &authorID,
	}
	require.NoError(t, db.Create(report).Error)
	return report
}

func TestSpawn_ProvisionsThenRuns(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLabService(db, 20*time.Millisecond)
	defer svc.Shutdown()

	staff := createTestUser(t, db, "staff@veritas.edu", models.RoleStaff)
	report := spawnTestReport(t, db, staff.ID)

	instance, err := svc.Spawn(report.ID, staff.ID, "127.0.0.1", "test")
	require.NoError(t, err)
	assert.Equal(t, models.InstanceProvisioning, instance.Status)
	assert.Contains(t, instance.Name, "lab-")
	assert.Contains(t, instance.SSHCommand, instance.TargetIP)

	require.Eventually(t, func() bool {
		got, err := svc.Get(instance.ID)
		return err == nil && got.Status == models.InstanceRunning
	}, time.Second, 10*time.Millisecond, "instance should transition to RUNNING after the provisioning delay")
}

func TestSpawn_OneActiveInstancePerReport(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLabService(db, time.Hour)
	defer svc.Shutdown()

	staff := createTestUser(t, db, "staff@veritas.edu", models.RoleStaff)
	report := spawnTestReport(t, db, staff.ID)

	_, err := svc.Spawn(report.ID, staff.ID, "", "")
	require.NoError(t, err)

	_, err = svc.Spawn(report.ID, staff.ID, "", "")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestSpawn_UnknownReport(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLabService(db, time.Hour)
	defer svc.Shutdown()

	staff := createTestUser(t, db, "staff@veritas.edu", models.RoleStaff)

	_, err := svc.Spawn(uuid.New(), staff.ID, "", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTerminate_CancelsPendingProvisioning(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLabService(db, 30*time.Millisecond)
	defer svc.Shutdown()

	staff := createTestUser(t, db, "staff@veritas.edu", models.RoleStaff)
	report := spawnTestReport(t, db, staff.ID)

	instance, err := svc.Spawn(report.ID, staff.ID, "", "")
	require.NoError(t, err)

	terminated, err := svc.Terminate(instance.ID, staff.ID, models.RoleStaff, "", "")
	require.NoError(t, err)
	assert.Equal(t, models.InstanceTerminated, terminated.Status)

	// Even after the provisioning delay elapses the instance must stay
	// terminated; the timer was cancelled.
	time.Sleep(80 * time.Millisecond)
	got, err := svc.Get(instance.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InstanceTerminated, got.Status)
}

func TestTerminate_OnlyCreatorOrPrivileged(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLabService(db, time.Hour)
	defer svc.Shutdown()

	creator := createTestUser(t, db, "staff@veritas.edu", models.RoleStaff)
	other := createTestUser(t, db, "other@veritas.edu", models.RoleStaff)
	security := createTestUser(t, db, "security@veritas.edu", models.RoleSecurity)
	report := spawnTestReport(t, db, creator.ID)

	instance, err := svc.Spawn(report.ID, creator.ID, "", "")
	require.NoError(t, err)

	_, err = svc.Terminate(instance.ID, other.ID, models.RoleStaff, "", "")
	assert.ErrorIs(t, err, ErrForbidden)

	// A privileged role can terminate anyone's instance.
	_, err = svc.Terminate(instance.ID, security.ID, models.RoleSecurity, "", "")
	require.NoError(t, err)
}

func TestTerminate_WorksFromAnyState(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLabService(db, time.Hour)
	defer svc.Shutdown()

	staff := createTestUser(t, db, "staff@veritas.edu", models.RoleStaff)
	report := spawnTestReport(t, db, staff.ID)

	instance, err := svc.Spawn(report.ID, staff.ID, "", "")
	require.NoError(t, err)

	// Termination works straight out of PROVISIONING.
	terminated, err := svc.Terminate(instance.ID, staff.ID, models.RoleStaff, "", "")
	require.NoError(t, err)
	assert.Equal(t, models.InstanceTerminated, terminated.Status)

	// And again on an already terminated instance.
	terminated, err = svc.Terminate(instance.ID, staff.ID, models.RoleStaff, "", "")
	require.NoError(t, err)
	assert.Equal(t, models.InstanceTerminated, terminated.Status)
}

func TestSpawn_AllowedAgainAfterTermination(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLabService(db, time.Hour)
	defer svc.Shutdown()

	staff := createTestUser(t, db, "staff@veritas.edu", models.RoleStaff)
	report := spawnTestReport(t, db, staff.ID)

	first, err := svc.Spawn(report.ID, staff.ID, "", "")
	require.NoError(t, err)
	_, err = svc.Terminate(first.ID, staff.ID, models.RoleStaff, "", "")
	require.NoError(t, err)

	second, err := svc.Spawn(report.ID, staff.ID, "", "")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestListMine_ReturnsOnlyOwnInstances(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLabService(db, time.Hour)
	defer svc.Shutdown()

	alice := createTestUser(t, db, "alice@veritas.edu", models.RoleStaff)
	bob := createTestUser(t, db, "bob@veritas.edu", models.RoleStaff)

	_, err := svc.Spawn(spawnTestReport(t, db, alice.ID).ID, alice.ID, "", "")
	require.NoError(t, err)
	_, err = svc.Spawn(spawnTestReport(t, db, bob.ID).ID, bob.ID, "", "")
	require.NoError(t, err)

	mine, err := svc.ListMine(alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, alice.ID, mine[0].CreatorID)
}
