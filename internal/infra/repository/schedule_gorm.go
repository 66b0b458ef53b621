package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ScheduleGormRepository manages the inputs of slot generation: weekly
// working hours and time-off periods.
type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// -------- Working hours --------

func (r *ScheduleGormRepository) ListWorkingHours(
	ctx context.Context,
	barberID uint,
) ([]models.WorkingHours, error) {

	var hours []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("day_of_week ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

// ReplaceWorkingHours swaps the whole weekly schedule of a barber.
func (r *ScheduleGormRepository) ReplaceWorkingHours(
	ctx context.Context,
	barberID uint,
	days []models.WorkingHours,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barber_id = ?", barberID).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}

		if len(days) == 0 {
			return nil
		}

		for i := range days {
			days[i].ID = 0
			days[i].BarberID = barberID
		}

		if err := tx.Create(&days).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				return httperr.ErrBusiness("duplicate_weekday")
			}
			return err
		}
		return nil
	})
}

// -------- Time off --------

func (r *ScheduleGormRepository) ListTimeOff(
	ctx context.Context,
	barberID uint,
	from string,
) ([]models.TimeOff, error) {

	var rows []models.TimeOff
	q := r.db.WithContext(ctx).Where("barber_id = ?", barberID)
	if from != "" {
		q = q.Where("end_date >= ?", from)
	}
	if err := q.Order("start_date ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ScheduleGormRepository) CreateTimeOff(
	ctx context.Context,
	t *models.TimeOff,
) error {

	return r.db.WithContext(ctx).Create(t).Error
}

func (r *ScheduleGormRepository) GetTimeOff(
	ctx context.Context,
	id uint,
) (*models.TimeOff, error) {

	var t models.TimeOff
	err := r.db.WithContext(ctx).First(&t, id).Error
	if httperr.IsRecordNotFound(err) {
		return nil, httperr.ErrNotFound("time_off_not_found")
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ScheduleGormRepository) DeleteTimeOff(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.TimeOff{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound("time_off_not_found")
	}
	return nil
}
