package services

import (
	"fmt"

	"ctrip-server/internal/models"
	"ctrip-server/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
	userRepo         *repositories.UserRepository
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{
		notificationRepo: repositories.NewNotificationRepository(db),
		userRepo:         repositories.NewUserRepository(db),
	}
}

// Notify creates a notification for a single user.
func (s *NotificationService) Notify(userID uuid.UUID, title, message string) error {
	notification := &models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// NotifyRoles fans one message out to every user holding any of the
// given roles. One row per recipient.
func (s *NotificationService) NotifyRoles(roles []models.Role, title, message string) error {
	ids, err := s.userRepo.ListIDsByRoles(roles)
	if err != nil {
		return fmt.Errorf("failed to resolve recipients: %w", err)
	}

	notifications := make([]models.Notification, 0, len(ids))
	for _, id := range ids {
		notifications = append(notifications, models.Notification{
			UserID:  id,
			Title:   title,
			Message: message,
		})
	}
	if err := s.notificationRepo.CreateBatch(notifications); err != nil {
		return fmt.Errorf("failed to create notifications: %w", err)
	}
	return nil
}

// NotifyStaff fans out to the full staff cohort.
func (s *NotificationService) NotifyStaff(title, message string) error {
	return s.NotifyRoles(models.StaffRoles(), title, message)
}

func (s *NotificationService) List(userID uuid.UUID, page, limit int) ([]models.Notification, int64, error) {
	return s.notificationRepo.ListByUser(userID, page, limit)
}

func (s *NotificationService) UnreadCount(userID uuid.UUID) (int64, error) {
	return s.notificationRepo.CountUnread(userID)
}

// MarkRead marks one notification read. Only the owner can flip it.
func (s *NotificationService) MarkRead(id, userID uuid.UUID) error {
	affected, err := s.notificationRepo.MarkRead(id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *NotificationService) MarkAllRead(userID uuid.UUID) (int64, error) {
	return s.notificationRepo.MarkAllRead(userID)
}
