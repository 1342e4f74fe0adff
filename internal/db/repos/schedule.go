package repos

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/celestiaorg/cadence/internal/db/models"
)

// ScheduleRepository provides access to schedule-related database operations
type ScheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a new schedule repository instance
func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Create creates a new schedule in the database
func (r *ScheduleRepository) Create(ctx context.Context, schedule *models.Schedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

// Update saves every field of an existing schedule
func (r *ScheduleRepository) Update(ctx context.Context, schedule *models.Schedule) error {
	return r.db.WithContext(ctx).Save(schedule).Error
}

// GetByID retrieves a schedule by its ID
func (r *ScheduleRepository) GetByID(ctx context.Context, ID uint) (*models.Schedule, error) {
	var schedule models.Schedule
	err := r.db.WithContext(ctx).First(&schedule, ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("schedule not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return &schedule, nil
}

// GetByName retrieves a schedule by its name
func (r *ScheduleRepository) GetByName(ctx context.Context, name string) (*models.Schedule, error) {
	var schedule models.Schedule
	err := r.db.WithContext(ctx).Where(&models.Schedule{Name: name}).First(&schedule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("schedule not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return &schedule, nil
}

// List returns every schedule ordered by ID
func (r *ScheduleRepository) List(ctx context.Context) ([]models.Schedule, error) {
	var schedules []models.Schedule
	err := r.db.WithContext(ctx).Order("id ASC").Find(&schedules).Error
	return schedules, err
}

// ListActive returns the schedules whose trigger is enabled
func (r *ScheduleRepository) ListActive(ctx context.Context) ([]models.Schedule, error) {
	var schedules []models.Schedule
	err := r.db.WithContext(ctx).
		Where(models.ScheduleIsActiveField+" = ?", true).
		Order("id ASC").
		Find(&schedules).Error
	return schedules, err
}

// SetActive enables or disables a schedule
func (r *ScheduleRepository) SetActive(ctx context.Context, ID uint, active bool) error {
	result := r.db.WithContext(ctx).Model(&models.Schedule{}).
		Where("id = ?", ID).
		Update(models.ScheduleIsActiveField, active)
	if result.Error != nil {
		return fmt.Errorf("failed to update schedule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("schedule not found: %w", gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete removes a schedule together with its run history
func (r *ScheduleRepository) Delete(ctx context.Context, ID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("schedule_id = ?", ID).Delete(&models.ScheduleHistory{}).Error; err != nil {
			return fmt.Errorf("failed to delete schedule history: %w", err)
		}
		result := tx.Unscoped().Delete(&models.Schedule{}, ID)
		if result.Error != nil {
			return fmt.Errorf("failed to delete schedule: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("schedule not found: %w", gorm.ErrRecordNotFound)
		}
		return nil
	})
}

// RecordRun stores a scheduled run and makes it the schedule's latest outcome
func (r *ScheduleRepository) RecordRun(ctx context.Context, history *models.ScheduleHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(history).Error; err != nil {
			return fmt.Errorf("failed to create schedule history: %w", err)
		}
		result := tx.Model(&models.Schedule{}).
			Where("id = ?", history.ScheduleID).
			Updates(map[string]interface{}{
				models.ScheduleLatestStatusField: history.Status,
				models.ScheduleLatestRunAtField:  history.RunAt,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update latest run: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("schedule not found: %w", gorm.ErrRecordNotFound)
		}
		return nil
	})
}
