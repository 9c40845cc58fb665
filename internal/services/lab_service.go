package services

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"ctrip-server/internal/models"
	"ctrip-server/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LabService provisions simulated investigation sandboxes. An instance
// spends a fixed delay in PROVISIONING and then flips to RUNNING,
// unless it is terminated first; termination cancels the pending
// transition instead of letting it fire into a dead instance.
type LabService struct {
	instanceRepo *repositories.InstanceRepository
	reportRepo   *repositories.ReportRepository
	auditSvc     *AuditService

	provisionDelay time.Duration

	mu     sync.Mutex
	timers map[uuid.UUID]*time.Timer
}

func NewLabService(db *gorm.DB, auditSvc *AuditService, provisionDelay time.Duration) *LabService {
	return &LabService{
		instanceRepo:   repositories.NewInstanceRepository(db),
		reportRepo:     repositories.NewReportRepository(db),
		auditSvc:       auditSvc,
		provisionDelay: provisionDelay,
		timers:         make(map[uuid.UUID]*time.Timer),
	}
}

// Spawn creates a sandbox for a report. A report holds at most one
// live instance; a second spawn while one is active is a conflict.
func (s *LabService) Spawn(reportID, creatorID uuid.UUID, ip, userAgent string) (*models.InvestigationInstance, error) {
	report, err := s.reportRepo.GetByID(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}

	if _, err := s.instanceRepo.GetActiveByReport(reportID); err == nil {
		return nil, fmt.Errorf("report already has an active instance: %w", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check active instance: %w", err)
	}

	instance := &models.InvestigationInstance{
		ReportID:  reportID,
		CreatorID: creatorID,
		Name:      fmt.Sprintf("lab-%s", report.ID.String()[:8]),
		TargetIP:  randomLabIP(),
		Status:    models.InstanceProvisioning,
	}
	instance.SSHCommand = fmt.Sprintf("ssh investigator@%s", instance.TargetIP)

	if err := s.instanceRepo.Create(instance); err != nil {
		return nil, fmt.Errorf("failed to create instance: %w", err)
	}

	s.scheduleTransition(instance.ID)

	if err := s.auditSvc.Record(&creatorID, "INSTANCE_SPAWNED", instance.ID.String(), ip, userAgent); err != nil {
		return nil, err
	}

	return instance, nil
}

// scheduleTransition arms the PROVISIONING -> RUNNING timer.
func (s *LabService) scheduleTransition(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timers[id] = time.AfterFunc(s.provisionDelay, func() {
		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()

		// Guarded update: a concurrent terminate wins the race.
		if _, err := s.instanceRepo.UpdateStatusIf(id, models.InstanceProvisioning, models.InstanceRunning); err != nil {
			fmt.Printf("Warning: failed to mark instance %s running: %v\n", id, err)
		}
	})
}

// Terminate ends an instance from any state, including PROVISIONING,
// and cancels any pending transition. Terminating an already
// terminated instance is a no-op. Only the creator or a privileged
// role may terminate.
func (s *LabService) Terminate(id, actorID uuid.UUID, actorRole models.Role, ip, userAgent string) (*models.InvestigationInstance, error) {
	instance, err := s.instanceRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load instance: %w", err)
	}

	if instance.CreatorID != actorID && !actorRole.IsPrivileged() {
		return nil, ErrForbidden
	}

	s.cancelTimer(id)

	if err := s.instanceRepo.Update(id, map[string]interface{}{"status": models.InstanceTerminated}); err != nil {
		return nil, fmt.Errorf("failed to terminate instance: %w", err)
	}
	instance.Status = models.InstanceTerminated

	if err := s.auditSvc.Record(&actorID, "INSTANCE_TERMINATED", id.String(), ip, userAgent); err != nil {
		return nil, err
	}

	return instance, nil
}

func (s *LabService) cancelTimer(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}
}

// Get returns a single instance. Any authenticated staff member may
// inspect any instance.
func (s *LabService) Get(id uuid.UUID) (*models.InvestigationInstance, error) {
	instance, err := s.instanceRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load instance: %w", err)
	}
	return instance, nil
}

// ListMine returns the caller's instances, newest first.
func (s *LabService) ListMine(creatorID uuid.UUID) ([]models.InvestigationInstance, error) {
	instances, err := s.instanceRepo.ListByCreator(creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}
	return instances, nil
}

// Shutdown cancels every pending provisioning timer.
func (s *LabService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}

func randomLabIP() string {
	return fmt.Sprintf("10.13.%d.%d", rand.Intn(254)+1, rand.Intn(254)+1)
}
