package services

import (
	"errors"
	"fmt"

	"ctrip-server/internal/models"
	"ctrip-server/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminService covers user administration: role changes, lock
// management and removal.
type AdminService struct {
	userRepo *repositories.UserRepository
	auditSvc *AuditService
}

func NewAdminService(db *gorm.DB, auditSvc *AuditService) *AdminService {
	return &AdminService{
		userRepo: repositories.NewUserRepository(db),
		auditSvc: auditSvc,
	}
}

func (s *AdminService) ListUsers(page, limit int, role string) ([]models.User, int64, error) {
	return s.userRepo.List(page, limit, role)
}

// UpdateRole assigns a new role. Admins cannot change their own role,
// which keeps at least one admin able to undo a mistake.
func (s *AdminService) UpdateRole(id, actorID uuid.UUID, role models.Role, ip, userAgent string) (*models.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %q: %w", role, ErrValidation)
	}
	if id == actorID {
		return nil, fmt.Errorf("cannot change own role: %w", ErrForbidden)
	}

	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.userRepo.Update(id, map[string]interface{}{"role": role}); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	previous := user.Role
	user.Role = role

	if err := s.auditSvc.Record(&actorID, "USER_ROLE_CHANGED",
		fmt.Sprintf("%s: %s -> %s", user.Email, previous, role), ip, userAgent); err != nil {
		return nil, err
	}

	return user, nil
}

// SetLocked locks or unlocks an account. Unlocking also resets the
// failed-attempt counter so the user starts with a clean slate.
func (s *AdminService) SetLocked(id, actorID uuid.UUID, locked bool, ip, userAgent string) (*models.User, error) {
	if id == actorID && locked {
		return nil, fmt.Errorf("cannot lock own account: %w", ErrForbidden)
	}

	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	updates := map[string]interface{}{"is_locked": locked}
	if !locked {
		updates["failed_login_attempts"] = 0
	}
	if err := s.userRepo.Update(id, updates); err != nil {
		return nil, fmt.Errorf("failed to update lock state: %w", err)
	}
	user.IsLocked = locked
	if !locked {
		user.FailedLoginAttempts = 0
	}

	action := "USER_UNLOCKED"
	if locked {
		action = "USER_LOCKED"
	}
	if err := s.auditSvc.Record(&actorID, action, user.Email, ip, userAgent); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser removes an account. Self-deletion is rejected.
func (s *AdminService) DeleteUser(id, actorID uuid.UUID, ip, userAgent string) error {
	if id == actorID {
		return fmt.Errorf("cannot delete own account: %w", ErrForbidden)
	}

	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.userRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return s.auditSvc.Record(&actorID, "USER_DELETED", user.Email, ip, userAgent)
}
