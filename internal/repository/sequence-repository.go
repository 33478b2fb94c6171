package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ehealth-ke/facility-registry/internal/domain"
)

// CodeFloors sets the value below which a model's codes never start.
// Models without an entry start just above zero.
type CodeFloors map[string]int64

func (f CodeFloors) floor(model string) int64 {
	if f == nil {
		return 0
	}
	return f[model]
}

// NextCode reserves the next code for a model inside the caller's
// transaction. The increment takes the counter's row lock, so two
// concurrent writers serialize and read distinct values; rolling back
// the surrounding transaction releases the number with the write that
// wanted it.
func NextCode(tx *gorm.DB, model string, floors CodeFloors) (int64, error) {
	res := tx.Model(&domain.SequenceCounter{}).
		Where("model_name = ?", model).
		UpdateColumn("last_value", gorm.Expr("last_value + 1"))
	if res.Error != nil {
		return 0, res.Error
	}

	if res.RowsAffected == 0 {
		counter := domain.SequenceCounter{ModelName: model, LastValue: floors.floor(model) + 1}
		if err := tx.Create(&counter).Error; err != nil {
			// another writer created the row first; take the increment path
			return incrementExisting(tx, model)
		}
		return counter.LastValue, nil
	}

	var value int64
	err := tx.Model(&domain.SequenceCounter{}).
		Where("model_name = ?", model).
		Select("last_value").
		Scan(&value).Error
	if err != nil {
		return 0, err
	}
	if value == 0 {
		return 0, errors.New("sequence counter disappeared mid transaction")
	}
	return value, nil
}

func incrementExisting(tx *gorm.DB, model string) (int64, error) {
	res := tx.Model(&domain.SequenceCounter{}).
		Where("model_name = ?", model).
		UpdateColumn("last_value", gorm.Expr("last_value + 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, errors.New("sequence counter disappeared mid transaction")
	}

	var value int64
	err := tx.Model(&domain.SequenceCounter{}).
		Where("model_name = ?", model).
		Select("last_value").
		Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return value, nil
}
