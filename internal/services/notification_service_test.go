package services

import (
	"testing"

	"ctrip-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyStaff_FansOutToStaffCohortOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)

	student := createTestUser(t, db, "student@veritas.edu", models.RoleStudent)
	staff := createTestUser(t, db, "staff@veritas.edu", models.RoleStaff)
	security := createTestUser(t, db, "security@veritas.edu", models.RoleSecurity)
	admin := createTestUser(t, db, "admin@veritas.edu", models.RoleAdmin)

	require.NoError(t, svc.NotifyStaff("New incident report", "A report needs triage"))

	for _, recipient := range []*models.User{staff, security, admin} {
		count, err := svc.UnreadCount(recipient.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	}

	count, err := svc.UnreadCount(student.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count, "students are not part of the staff fan-out")
}

func TestMarkRead_OwnerOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)

	owner := createTestUser(t, db, "owner@veritas.edu", models.RoleStudent)
	stranger := createTestUser(t, db, "stranger@veritas.edu", models.RoleStudent)

	require.NoError(t, svc.Notify(owner.ID, "Report status updated", "Your report is now RESOLVED"))

	var notification models.Notification
	require.NoError(t, db.First(&notification, "user_id = ?", owner.ID).Error)

	// A stranger cannot flip someone else's notification.
	err := svc.MarkRead(notification.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.MarkRead(notification.ID, owner.ID))

	count, err := svc.UnreadCount(owner.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestMarkRead_UnknownNotification(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)
	user := createTestUser(t, db, "user@veritas.edu", models.RoleStudent)

	err := svc.MarkRead(uuid.New(), user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarkAllRead_ReturnsAffectedCount(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)
	user := createTestUser(t, db, "user@veritas.edu", models.RoleStudent)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Notify(user.ID, "t", "m"))
	}

	affected, err := svc.MarkAllRead(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, affected)

	// Second pass has nothing left to flip.
	affected, err = svc.MarkAllRead(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected)
}

func TestList_PaginatesNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)
	user := createTestUser(t, db, "user@veritas.edu", models.RoleStudent)

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.Notify(user.ID, "t", "m"))
	}

	page, total, err := svc.List(user.ID, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, page, 2)
}
