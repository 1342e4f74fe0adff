package repos

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/celestiaorg/cadence/internal/db/models"
)

// HistoryRepository provides access to schedule run history
type HistoryRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new history repository instance
func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// ListBySchedule returns the runs of a schedule, newest first
func (r *HistoryRepository) ListBySchedule(ctx context.Context, scheduleID uint, opts *models.ListOptions) ([]models.ScheduleHistory, error) {
	var history []models.ScheduleHistory
	db := r.db.WithContext(ctx).Where("schedule_id = ?", scheduleID)
	if opts != nil {
		db = db.Limit(opts.Limit).Offset(opts.Offset)
	}
	err := db.Order(models.HistoryRunAtField + " DESC").Order("id DESC").Find(&history).Error
	return history, err
}

// Count returns the number of runs recorded for a schedule
func (r *HistoryRepository) Count(ctx context.Context, scheduleID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ScheduleHistory{}).
		Where("schedule_id = ?", scheduleID).
		Count(&count).Error
	return count, err
}

// Latest returns the most recent run of a schedule
func (r *HistoryRepository) Latest(ctx context.Context, scheduleID uint) (*models.ScheduleHistory, error) {
	var history models.ScheduleHistory
	err := r.db.WithContext(ctx).
		Where("schedule_id = ?", scheduleID).
		Order(models.HistoryRunAtField + " DESC").Order("id DESC").
		First(&history).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("schedule history not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule history: %w", err)
	}
	return &history, nil
}
