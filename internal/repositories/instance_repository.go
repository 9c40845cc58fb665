package repositories

import (
	"ctrip-server/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InstanceRepository struct {
	db *gorm.DB
}

func NewInstanceRepository(db *gorm.DB) *InstanceRepository {
	return &InstanceRepository{db: db}
}

func (r *InstanceRepository) Create(instance *models.InvestigationInstance) error {
	return r.db.Create(instance).Error
}

func (r *InstanceRepository) GetByID(id uuid.UUID) (*models.InvestigationInstance, error) {
	var instance models.InvestigationInstance
	err := r.db.Preload("Report").First(&instance, "id = ?", id).Error
	return &instance, err
}

// GetActiveByReport returns the non-terminated instance occupying the
// report's slot, if any.
func (r *InstanceRepository) GetActiveByReport(reportID uuid.UUID) (*models.InvestigationInstance, error) {
	var instance models.InvestigationInstance
	err := r.db.
		Where("report_id = ? AND status <> ?", reportID, models.InstanceTerminated).
		First(&instance).Error
	return &instance, err
}

func (r *InstanceRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	return r.db.Model(&models.InvestigationInstance{}).Where("id = ?", id).Updates(updates).Error
}

// UpdateStatusIf moves the instance to next only while it is still in
// from. Returns the number of rows changed so callers can tell whether
// the transition raced with another writer.
func (r *InstanceRepository) UpdateStatusIf(id uuid.UUID, from, next models.InstanceStatus) (int64, error) {
	result := r.db.Model(&models.InvestigationInstance{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", next)
	return result.RowsAffected, result.Error
}

func (r *InstanceRepository) ListByCreator(creatorID uuid.UUID) ([]models.InvestigationInstance, error) {
	var instances []models.InvestigationInstance
	err := r.db.
		Preload("Report").
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&instances).Error
	return instances, err
}

func (r *InstanceRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.InvestigationInstance{}).
		Where("status <> ?", models.InstanceTerminated).
		Count(&count).Error
	return count, err
}
