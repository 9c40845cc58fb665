package services

import (
	"fmt"

	"ctrip-server/internal/models"
	"ctrip-server/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditService struct {
	auditRepo *repositories.AuditRepository
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{
		auditRepo: repositories.NewAuditRepository(db),
	}
}

// Record appends one audit entry. An audit write failure fails the
// surrounding operation; the trail is not best-effort.
func (s *AuditService) Record(userID *uuid.UUID, action, details, ip, userAgent string) error {
	entry := &models.AuditLog{
		UserID:    userID,
		Action:    action,
		Details:   details,
		IPAddress: ip,
		UserAgent: userAgent,
	}
	if err := s.auditRepo.Create(entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

func (s *AuditService) List(page, limit int, action string, userID *uuid.UUID) ([]models.AuditLog, int64, error) {
	return s.auditRepo.List(page, limit, action, userID)
}
