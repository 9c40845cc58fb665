package services

import (
	"fmt"

	"ctrip-server/internal/models"
	"ctrip-server/internal/repositories"

	"gorm.io/gorm"
)

// AnalyticsService aggregates platform activity for the dashboard.
type AnalyticsService struct {
	reportRepo   *repositories.ReportRepository
	userRepo     *repositories.UserRepository
	instanceRepo *repositories.InstanceRepository
	auditRepo    *repositories.AuditRepository
	eventSvc     *EventService
}

func NewAnalyticsService(db *gorm.DB, eventSvc *EventService) *AnalyticsService {
	return &AnalyticsService{
		reportRepo:   repositories.NewReportRepository(db),
		userRepo:     repositories.NewUserRepository(db),
		instanceRepo: repositories.NewInstanceRepository(db),
		auditRepo:    repositories.NewAuditRepository(db),
		eventSvc:     eventSvc,
	}
}

// Overview is the dashboard aggregate: report breakdowns by status,
// type and priority, plus user and instance figures.
func (s *AnalyticsService) Overview() (map[string]interface{}, error) {
	totalReports, err := s.reportRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}

	byStatus, err := s.reportRepo.CountGrouped("status")
	if err != nil {
		return nil, fmt.Errorf("failed to group by status: %w", err)
	}
	byType, err := s.reportRepo.CountGrouped("type")
	if err != nil {
		return nil, fmt.Errorf("failed to group by type: %w", err)
	}
	byPriority, err := s.reportRepo.CountGrouped("priority")
	if err != nil {
		return nil, fmt.Errorf("failed to group by priority: %w", err)
	}

	totalUsers, err := s.userRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	usersByRole := make(map[string]int64)
	for _, role := range []models.Role{models.RoleStudent, models.RoleStaff, models.RoleSecurity, models.RoleAdmin} {
		count, err := s.userRepo.CountByRole(role)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s users: %w", role, err)
		}
		usersByRole[string(role)] = count
	}

	activeInstances, err := s.instanceRepo.CountActive()
	if err != nil {
		return nil, fmt.Errorf("failed to count instances: %w", err)
	}

	auditEntries, err := s.auditRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count audit entries: %w", err)
	}

	return map[string]interface{}{
		"reports": map[string]interface{}{
			"total":       totalReports,
			"by_status":   byStatus,
			"by_type":     byType,
			"by_priority": byPriority,
		},
		"users": map[string]interface{}{
			"total":   totalUsers,
			"by_role": usersByRole,
		},
		"instances": map[string]interface{}{
			"active": activeInstances,
		},
		"audit_entries": auditEntries,
	}, nil
}

// Trend returns the per-day count of a lifecycle event over the
// trailing window. Backed by the time series store; empty without it.
func (s *AnalyticsService) Trend(event string, days int) (map[string]int64, error) {
	if days < 1 || days > 365 {
		days = 30
	}
	return s.eventSvc.QueryTrend(event, days)
}
