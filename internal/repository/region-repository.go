package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ehealth-ke/facility-registry/internal/domain"
)

type RegionRepository interface {
	CreateCounty(c *domain.County) error
	FindCounty(id uuid.UUID) (*domain.County, error)
	ListCounties(scope domain.Scope) ([]domain.County, error)
	UpdateCounty(id uuid.UUID, cols map[string]any) (*domain.County, error)

	CreateConstituency(c *domain.Constituency) error
	FindConstituency(id uuid.UUID) (*domain.Constituency, error)
	ListConstituencies(scope domain.Scope, countyID *uuid.UUID) ([]domain.Constituency, error)
	UpdateConstituency(id uuid.UUID, cols map[string]any) (*domain.Constituency, error)

	CreateWard(w *domain.Ward) error
	FindWard(id uuid.UUID) (*domain.Ward, error)
	ListWards(scope domain.Scope, constituencyID *uuid.UUID) ([]domain.Ward, error)
	UpdateWard(id uuid.UUID, cols map[string]any) (*domain.Ward, error)
}

type regionRepository struct {
	db     *gorm.DB
	floors CodeFloors
}

func NewRegionRepository(db *gorm.DB, floors CodeFloors) RegionRepository {
	return &regionRepository{db: db, floors: floors}
}

// ---------- County ----------

func (r *regionRepository) CreateCounty(c *domain.County) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if c.Code == 0 {
			code, err := NextCode(tx, domain.SequenceCounty, r.floors)
			if err != nil {
				return err
			}
			c.Code = code
		}
		return tx.Create(c).Error
	})
}

func (r *regionRepository) FindCounty(id uuid.UUID) (*domain.County, error) {
	var c domain.County
	err := r.db.Scopes(notDeleted).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *regionRepository) ListCounties(scope domain.Scope) ([]domain.County, error) {
	q := r.db.Scopes(notDeleted).Order("code ASC")
	if !scope.National && scope.CountyID != nil {
		q = q.Where("id = ?", *scope.CountyID)
	}

	var counties []domain.County
	if err := q.Find(&counties).Error; err != nil {
		return nil, err
	}
	return counties, nil
}

func (r *regionRepository) UpdateCounty(id uuid.UUID, cols map[string]any) (*domain.County, error) {
	res := r.db.Model(&domain.County{}).
		Where("id = ? AND deleted = ?", id, false).
		Updates(cols)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindCounty(id)
}

// ---------- Constituency ----------

func (r *regionRepository) CreateConstituency(c *domain.Constituency) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if c.Code == 0 {
			code, err := NextCode(tx, domain.SequenceConstituency, r.floors)
			if err != nil {
				return err
			}
			c.Code = code
		}
		return tx.Create(c).Error
	})
}

func (r *regionRepository) FindConstituency(id uuid.UUID) (*domain.Constituency, error) {
	var c domain.Constituency
	err := r.db.Scopes(notDeleted).Preload("County").First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *regionRepository) ListConstituencies(scope domain.Scope, countyID *uuid.UUID) ([]domain.Constituency, error) {
	q := r.db.Scopes(notDeleted).Preload("County").Order("code ASC")
	if countyID != nil {
		q = q.Where("county_id = ?", *countyID)
	}
	if !scope.National {
		if scope.CountyID != nil {
			q = q.Where("county_id = ?", *scope.CountyID)
		} else if scope.ConstituencyID != nil {
			q = q.Where("id = ?", *scope.ConstituencyID)
		}
	}

	var constituencies []domain.Constituency
	if err := q.Find(&constituencies).Error; err != nil {
		return nil, err
	}
	return constituencies, nil
}

func (r *regionRepository) UpdateConstituency(id uuid.UUID, cols map[string]any) (*domain.Constituency, error) {
	res := r.db.Model(&domain.Constituency{}).
		Where("id = ? AND deleted = ?", id, false).
		Updates(cols)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindConstituency(id)
}

// ---------- Ward ----------

func (r *regionRepository) CreateWard(w *domain.Ward) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if w.Code == 0 {
			code, err := NextCode(tx, domain.SequenceWard, r.floors)
			if err != nil {
				return err
			}
			w.Code = code
		}
		return tx.Create(w).Error
	})
}

func (r *regionRepository) FindWard(id uuid.UUID) (*domain.Ward, error) {
	var w domain.Ward
	err := r.db.Scopes(notDeleted).
		Preload("Constituency").
		Preload("Constituency.County").
		First(&w, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *regionRepository) ListWards(scope domain.Scope, constituencyID *uuid.UUID) ([]domain.Ward, error) {
	q := r.db.Scopes(notDeleted).
		Preload("Constituency").
		Preload("Constituency.County").
		Order("code ASC")
	if constituencyID != nil {
		q = q.Where("constituency_id = ?", *constituencyID)
	}
	if !scope.National {
		if sub := scopedWardIDs(r.db, scope); sub != nil {
			q = q.Where("wards.id IN (?)", sub)
		}
	}

	var wards []domain.Ward
	if err := q.Find(&wards).Error; err != nil {
		return nil, err
	}
	return wards, nil
}

func (r *regionRepository) UpdateWard(id uuid.UUID, cols map[string]any) (*domain.Ward, error) {
	res := r.db.Model(&domain.Ward{}).
		Where("id = ? AND deleted = ?", id, false).
		Updates(cols)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindWard(id)
}
