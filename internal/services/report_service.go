package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"ctrip-server/internal/models"
	"ctrip-server/internal/repositories"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"
)

// Broadcaster pushes urgent report events to connected staff clients.
type Broadcaster interface {
	BroadcastJSON(event string, payload interface{})
}

// CreateReportInput carries the fields a reporter controls.
type CreateReportInput struct {
	Title       string                `json:"title" binding:"required"`
	Description string                `json:"description" binding:"required"`
	Type        models.ReportType     `json:"type" binding:"required"`
	Priority    models.ReportPriority `json:"priority"`
	IsAnonymous bool                  `json:"is_anonymous"`
}

type ReportService struct {
	reportRepo      *repositories.ReportRepository
	notificationSvc *NotificationService
	auditSvc        *AuditService
	eventSvc        *EventService
	broadcaster     Broadcaster

	minioClient *minio.Client
	bucket      string
	maxFileSize int64
	allowedExt  []string
}

func NewReportService(db *gorm.DB, notificationSvc *NotificationService, auditSvc *AuditService, eventSvc *EventService, broadcaster Broadcaster, minioClient *minio.Client, bucket string, maxFileSize int64, allowedExt []string) *ReportService {
	return &ReportService{
		reportRepo:      repositories.NewReportRepository(db),
		notificationSvc: notificationSvc,
		auditSvc:        auditSvc,
		eventSvc:        eventSvc,
		broadcaster:     broadcaster,
		minioClient:     minioClient,
		bucket:          bucket,
		maxFileSize:     maxFileSize,
		allowedExt:      allowedExt,
	}
}

// Create stores a new report and runs its side effects: staff
// notification fan-out, realtime push for urgent priorities, audit and
// lifecycle event. Anonymous reports are stored without an author id;
// the audit trail still records who filed them.
func (s *ReportService) Create(authorID uuid.UUID, input CreateReportInput, ip, userAgent string) (*models.Report, error) {
	if !input.Type.Valid() {
		return nil, fmt.Errorf("invalid report type %q: %w", input.Type, ErrValidation)
	}
	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, fmt.Errorf("invalid priority %q: %w", input.Priority, ErrValidation)
	}

	report := &models.Report{
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		Status:      models.ReportStatusOpen,
		Priority:    input.Priority,
		IsAnonymous: input.IsAnonymous,
		AuthorID:    &authorID,
	}
	if input.IsAnonymous {
		report.AuthorID = nil
	}
	if err := s.reportRepo.Create(report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	if err := s.notificationSvc.NotifyStaff(
		"New incident report",
		fmt.Sprintf("New %s report: %s", report.Type, report.Title),
	); err != nil {
		return nil, err
	}

	// SECURITY gets its own notification for critical reports, on top of
	// the staff-wide one. Recipients holding the role twice over get two
	// rows; that is accepted.
	if report.Priority == models.PriorityCritical {
		if err := s.notificationSvc.NotifyRoles(
			[]models.Role{models.RoleSecurity},
			"Critical incident report",
			fmt.Sprintf("Critical %s report requires immediate attention: %s", report.Type, report.Title),
		); err != nil {
			return nil, err
		}
	}

	if report.Priority.IsUrgent() && s.broadcaster != nil {
		s.broadcaster.BroadcastJSON("critical-report", map[string]interface{}{
			"id":       report.ID,
			"title":    report.Title,
			"priority": report.Priority,
			"message":  fmt.Sprintf("New %s priority report: %s", report.Priority, report.Title),
		})
	}

	if err := s.auditSvc.Record(&authorID, "REPORT_CREATED", report.ID.String(), ip, userAgent); err != nil {
		return nil, err
	}

	if err := s.eventSvc.RecordReportEvent("created", report); err != nil {
		fmt.Printf("Warning: failed to record report event: %v\n", err)
	}

	return s.sanitize(report), nil
}

// Get loads one report with associations, redacted.
func (s *ReportService) Get(id uuid.UUID) (*models.Report, error) {
	report, err := s.reportRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}
	return s.sanitize(report), nil
}

// List returns a redacted, filtered page of reports.
func (s *ReportService) List(page, limit int, status, reportType, priority string) ([]models.Report, int64, error) {
	reports, total, err := s.reportRepo.List(page, limit, status, reportType, priority)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}
	for i := range reports {
		s.sanitizeInPlace(&reports[i])
	}
	return reports, total, nil
}

// ListMine returns the caller's own reports. Anonymous reports carry
// no author id and so never show up here, even for their filer.
func (s *ReportService) ListMine(authorID uuid.UUID) ([]models.Report, error) {
	reports, err := s.reportRepo.ListByAuthor(authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// UpdateStatus sets a new lifecycle status. Any valid status is
// accepted from any current status; triage owns the judgement call.
// The author is notified of the change unless the report is anonymous.
func (s *ReportService) UpdateStatus(id uuid.UUID, status models.ReportStatus, actorID uuid.UUID, ip, userAgent string) (*models.Report, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid status %q: %w", status, ErrValidation)
	}

	report, err := s.reportRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}

	if err := s.reportRepo.Update(id, map[string]interface{}{"status": status}); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	previous := report.Status
	report.Status = status

	if !report.IsAnonymous && report.AuthorID != nil {
		if err := s.notificationSvc.Notify(
			*report.AuthorID,
			"Report status updated",
			fmt.Sprintf("Your report %q is now %s", report.Title, status),
		); err != nil {
			return nil, err
		}
	}

	if err := s.auditSvc.Record(&actorID, "REPORT_STATUS_CHANGED",
		fmt.Sprintf("%s: %s -> %s", id, previous, status), ip, userAgent); err != nil {
		return nil, err
	}

	if err := s.eventSvc.RecordReportEvent("status_changed", report); err != nil {
		fmt.Printf("Warning: failed to record report event: %v\n", err)
	}

	return s.sanitize(report), nil
}

// Vote records the caller's vote, replacing any earlier one. Value
// must be +1 or -1.
func (s *ReportService) Vote(reportID, userID uuid.UUID, value int) (*models.Vote, error) {
	if value != 1 && value != -1 {
		return nil, fmt.Errorf("vote value must be 1 or -1: %w", ErrValidation)
	}

	if _, err := s.reportRepo.GetByID(reportID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}

	vote := &models.Vote{ReportID: reportID, UserID: userID, Value: value}
	if err := s.reportRepo.UpsertVote(vote); err != nil {
		return nil, fmt.Errorf("failed to record vote: %w", err)
	}
	return vote, nil
}

// Comment appends a discussion entry.
func (s *ReportService) Comment(reportID, authorID uuid.UUID, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("comment content is required: %w", ErrValidation)
	}

	if _, err := s.reportRepo.GetByID(reportID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}

	comment := &models.Comment{ReportID: reportID, AuthorID: authorID, Content: content}
	if err := s.reportRepo.CreateComment(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	stored, err := s.reportRepo.GetComment(comment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comment: %w", err)
	}
	stored.AuthorPublic = stored.Author.Public()
	return stored, nil
}

// AddEvidence validates and stores an uploaded file, then records the
// evidence row. Files land in object storage when it is configured;
// otherwise only the metadata row is written with a local path.
func (s *ReportService) AddEvidence(reportID, uploaderID uuid.UUID, file *multipart.FileHeader, ip, userAgent string) (*models.Evidence, error) {
	if _, err := s.reportRepo.GetByID(reportID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}

	if file.Size > s.maxFileSize {
		return nil, fmt.Errorf("file exceeds %d bytes: %w", s.maxFileSize, ErrValidation)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !s.extensionAllowed(ext) {
		return nil, fmt.Errorf("file type %q not allowed: %w", ext, ErrValidation)
	}

	objectName := fmt.Sprintf("evidence/%s/%s%s", reportID, uuid.NewString(), ext)
	fileURL := "/" + objectName

	if s.minioClient != nil {
		src, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open upload: %w", err)
		}
		defer src.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		_, err = s.minioClient.PutObject(ctx, s.bucket, objectName, src, file.Size, minio.PutObjectOptions{
			ContentType: file.Header.Get("Content-Type"),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to upload evidence: %w", err)
		}
		fileURL = fmt.Sprintf("%s/%s", s.bucket, objectName)
	}

	evidence := &models.Evidence{
		ReportID: reportID,
		FileURL:  fileURL,
		FileType: file.Header.Get("Content-Type"),
		FileSize: file.Size,
	}
	if err := s.reportRepo.CreateEvidence(evidence); err != nil {
		return nil, fmt.Errorf("failed to save evidence record: %w", err)
	}

	if err := s.auditSvc.Record(&uploaderID, "EVIDENCE_UPLOADED",
		fmt.Sprintf("%s: %s", reportID, file.Filename), ip, userAgent); err != nil {
		return nil, err
	}

	return evidence, nil
}

func (s *ReportService) extensionAllowed(ext string) bool {
	for _, allowed := range s.allowedExt {
		if ext == allowed {
			return true
		}
	}
	return false
}

// sanitize prepares a report for the outside world: authors collapse
// to their public identity fields, and anonymous reports lose
// authorship entirely. Anonymous rows are written without an author
// id, but the read boundary strips it again in case older rows carry
// one.
func (s *ReportService) sanitize(report *models.Report) *models.Report {
	s.sanitizeInPlace(report)
	return report
}

func (s *ReportService) sanitizeInPlace(report *models.Report) {
	report.AuthorPublic = report.Author.Public()
	for i := range report.Comments {
		comment := &report.Comments[i]
		comment.AuthorPublic = comment.Author.Public()
	}
	if report.IsAnonymous {
		report.AuthorID = nil
		report.Author = nil
		report.AuthorPublic = nil
	}
}
