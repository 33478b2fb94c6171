package repository

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ehealth-ke/facility-registry/internal/domain"
)

type FacilityUpdateRepository interface {
	Find(id uuid.UUID) (*domain.FacilityUpdate, error)
	List(facilityID *uuid.UUID, pending *bool) ([]domain.FacilityUpdate, error)
	Resolve(id uuid.UUID, approve bool, actorID uuid.UUID) (*domain.FacilityUpdate, error)
}

type facilityUpdateRepository struct {
	db *gorm.DB
}

func NewFacilityUpdateRepository(db *gorm.DB) FacilityUpdateRepository {
	return &facilityUpdateRepository{db: db}
}

func (r *facilityUpdateRepository) Find(id uuid.UUID) (*domain.FacilityUpdate, error) {
	var upd domain.FacilityUpdate
	err := r.db.Scopes(notDeleted).Preload("Facility").First(&upd, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &upd, nil
}

func (r *facilityUpdateRepository) List(facilityID *uuid.UUID, pending *bool) ([]domain.FacilityUpdate, error) {
	q := r.db.Scopes(notDeleted).Preload("Facility").Order("created DESC")
	if facilityID != nil {
		q = q.Where("facility_id = ?", *facilityID)
	}
	if pending != nil {
		if *pending {
			q = q.Where("approved = ? AND cancelled = ?", false, false)
		} else {
			q = q.Where("approved = ? OR cancelled = ?", true, true)
		}
	}

	var out []domain.FacilityUpdate
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Resolve approves or cancels a pending update in one transaction. The
// guarded claim keeps two reviewers from resolving the same update; on
// approval every captured change is applied to the facility and any
// failure rolls the whole decision back. The facility's pending markers
// are recomputed from the updates that remain, so resolving an older
// update leaves the pointer on the newest pending one.
func (r *facilityUpdateRepository) Resolve(id uuid.UUID, approve bool, actorID uuid.UUID) (*domain.FacilityUpdate, error) {
	var resolved domain.FacilityUpdate

	err := r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		cols := map[string]any{
			"updated":       now,
			"updated_by_id": actorID,
		}
		if approve {
			cols["approved"] = true
		} else {
			cols["cancelled"] = true
		}

		res := tx.Model(&domain.FacilityUpdate{}).
			Where("id = ? AND approved = ? AND cancelled = ? AND deleted = ?", id, false, false, false).
			Updates(cols)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var n int64
			if err := tx.Model(&domain.FacilityUpdate{}).Where("id = ?", id).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return gorm.ErrRecordNotFound
			}
			return domain.ErrUpdateResolved
		}

		if err := tx.First(&resolved, "id = ?", id).Error; err != nil {
			return err
		}

		var fac domain.Facility
		if err := tx.First(&fac, "id = ?", resolved.FacilityID).Error; err != nil {
			return err
		}

		if approve {
			var changes []domain.FieldChange
			if err := json.Unmarshal(resolved.Changes, &changes); err != nil {
				return err
			}
			for _, ch := range changes {
				if err := domain.ApplyChange(&fac, ch); err != nil {
					return err
				}
			}
		}

		var newest domain.FacilityUpdate
		err := tx.Where("facility_id = ? AND approved = ? AND cancelled = ? AND deleted = ?",
			fac.ID, false, false, false).
			Order("created DESC").
			First(&newest).Error
		switch {
		case err == nil:
			newestID := newest.ID
			fac.LatestUpdateID = &newestID
			fac.HasEdits = true
		case errors.Is(err, gorm.ErrRecordNotFound):
			fac.LatestUpdateID = nil
			fac.HasEdits = false
		default:
			return err
		}

		fac.Updated = now
		fac.UpdatedByID = actorID
		return tx.Omit(clause.Associations).Save(&fac).Error
	})
	if err != nil {
		return nil, err
	}
	return &resolved, nil
}
