package repositories

import (
	"ctrip-server/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(report *models.Report) error {
	return r.db.Create(report).Error
}

// GetByID loads a report with its author, evidence, comments (with
// authors), votes and instance.
func (r *ReportRepository) GetByID(id uuid.UUID) (*models.Report, error) {
	var report models.Report
	err := r.db.
		Preload("Author").
		Preload("Evidence").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Comments.Author").
		Preload("Votes").
		Preload("Instance").
		First(&report, "id = ?", id).Error
	return &report, err
}

func (r *ReportRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	return r.db.Model(&models.Report{}).Where("id = ?", id).Updates(updates).Error
}

func (r *ReportRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Report{}, "id = ?", id).Error
}

func (r *ReportRepository) List(page, limit int, status, reportType, priority string) ([]models.Report, int64, error) {
	var reports []models.Report
	var total int64

	query := r.db.Model(&models.Report{})

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if reportType != "" {
		query = query.Where("type = ?", reportType)
	}
	if priority != "" {
		query = query.Where("priority = ?", priority)
	}

	query.Count(&total)

	offset := (page - 1) * limit
	err := query.
		Preload("Author").
		Preload("Votes").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&reports).Error

	return reports, total, err
}

func (r *ReportRepository) ListByAuthor(authorID uuid.UUID) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.
		Preload("Votes").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

// UpsertVote writes the user's vote for a report, replacing any
// previous value. One row per (report, user) pair.
func (r *ReportRepository) UpsertVote(vote *models.Vote) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "report_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(vote).Error
}

func (r *ReportRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *ReportRepository) GetComment(id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("Author").First(&comment, "id = ?", id).Error
	return &comment, err
}

func (r *ReportRepository) CreateEvidence(evidence *models.Evidence) error {
	return r.db.Create(evidence).Error
}

func (r *ReportRepository) CountByStatus(status models.ReportStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Report{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *ReportRepository) CountByPriority(priority models.ReportPriority) (int64, error) {
	var count int64
	err := r.db.Model(&models.Report{}).Where("priority = ?", priority).Count(&count).Error
	return count, err
}

func (r *ReportRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Report{}).Count(&count).Error
	return count, err
}

// GroupCount is one bucket of a group-by aggregate.
type GroupCount struct {
	Key   string `json:"key" gorm:"column:key"`
	Count int64  `json:"count" gorm:"column:count"`
}

// CountGrouped aggregates reports by the given column (status, type or
// priority).
func (r *ReportRepository) CountGrouped(column string) ([]GroupCount, error) {
	var rows []GroupCount
	err := r.db.Model(&models.Report{}).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Find(&rows).Error
	return rows, err
}
