package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ehealth-ke/facility-registry/internal/domain"
)

// NameCount is one aggregation row: a display name and how many scoped
// facilities fall under it.
type NameCount struct {
	Name  string
	Count int64
}

// DashboardRepository computes the facility groupings the dashboard
// shows. Callers resolve the scope first; these queries assume it
// grants something.
type DashboardRepository interface {
	TotalFacilities(scope domain.Scope) (int64, error)
	RecentlyCreated(scope domain.Scope, cutoff time.Time) (int64, error)

	CountySummary() ([]NameCount, error)
	ConstituenciesSummary(countyID uuid.UUID, scope domain.Scope) ([]NameCount, error)
	WardsSummary(constituencyID uuid.UUID, scope domain.Scope) ([]NameCount, error)

	OwnersSummary(scope domain.Scope) ([]NameCount, error)
	OwnerTypesSummary(scope domain.Scope) ([]NameCount, error)
	TypesSummary(scope domain.Scope) ([]NameCount, error)
	StatusSummary(scope domain.Scope) ([]NameCount, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) TotalFacilities(scope domain.Scope) (int64, error) {
	q := r.db.Model(&domain.Facility{}).Where("facilities.deleted = ?", false)
	q = applyFacilityScope(q, r.db, scope)

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *dashboardRepository) RecentlyCreated(scope domain.Scope, cutoff time.Time) (int64, error) {
	q := r.db.Model(&domain.Facility{}).
		Where("facilities.deleted = ?", false).
		Where("facilities.created >= ?", cutoff)
	q = applyFacilityScope(q, r.db, scope)

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// scopedFacilityJoin builds a LEFT JOIN onto facilities carrying the
// scope restrictions in the join condition, so zero-count groups still
// appear in the output.
func (r *dashboardRepository) scopedFacilityJoin(on string, scope domain.Scope) (string, []any) {
	cond := "LEFT JOIN facilities ON " + on + " AND facilities.deleted = ?"
	args := []any{false}
	if sub := scopedWardIDs(r.db, scope); sub != nil {
		cond += " AND facilities.ward_id IN (?)"
		args = append(args, sub)
	}
	if scope.RegulatoryBodyID != nil {
		cond += " AND facilities.regulatory_body_id = ?"
		args = append(args, *scope.RegulatoryBodyID)
	}
	return cond, args
}

// CountySummary counts facilities per county across the whole country.
// Only national users see this horizon.
func (r *dashboardRepository) CountySummary() ([]NameCount, error) {
	var rows []NameCount
	err := r.db.Table("counties").
		Select("counties.name AS name, COUNT(facilities.id) AS count").
		Joins("LEFT JOIN constituencies ON constituencies.county_id = counties.id AND constituencies.deleted = ?", false).
		Joins("LEFT JOIN wards ON wards.constituency_id = constituencies.id AND wards.deleted = ?", false).
		Joins("LEFT JOIN facilities ON facilities.ward_id = wards.id AND facilities.deleted = ?", false).
		Where("counties.deleted = ?", false).
		Group("counties.name").
		Order("counties.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *dashboardRepository) ConstituenciesSummary(countyID uuid.UUID, scope domain.Scope) ([]NameCount, error) {
	join := "LEFT JOIN facilities ON facilities.ward_id = wards.id AND facilities.deleted = ?"
	args := []any{false}
	if scope.RegulatoryBodyID != nil {
		join += " AND facilities.regulatory_body_id = ?"
		args = append(args, *scope.RegulatoryBodyID)
	}

	var rows []NameCount
	err := r.db.Table("constituencies").
		Select("constituencies.name AS name, COUNT(facilities.id) AS count").
		Joins("LEFT JOIN wards ON wards.constituency_id = constituencies.id AND wards.deleted = ?", false).
		Joins(join, args...).
		Where("constituencies.deleted = ? AND constituencies.county_id = ?", false, countyID).
		Group("constituencies.name").
		Order("constituencies.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *dashboardRepository) WardsSummary(constituencyID uuid.UUID, scope domain.Scope) ([]NameCount, error) {
	join := "LEFT JOIN facilities ON facilities.ward_id = wards.id AND facilities.deleted = ?"
	args := []any{false}
	if scope.RegulatoryBodyID != nil {
		join += " AND facilities.regulatory_body_id = ?"
		args = append(args, *scope.RegulatoryBodyID)
	}

	var rows []NameCount
	err := r.db.Table("wards").
		Select("wards.name AS name, COUNT(facilities.id) AS count").
		Joins(join, args...).
		Where("wards.deleted = ? AND wards.constituency_id = ?", false, constituencyID).
		Group("wards.name").
		Order("wards.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *dashboardRepository) OwnersSummary(scope domain.Scope) ([]NameCount, error) {
	join, args := r.scopedFacilityJoin("facilities.owner_id = owners.id", scope)

	var rows []NameCount
	err := r.db.Table("owners").
		Select("owners.name AS name, COUNT(facilities.id) AS count").
		Joins(join, args...).
		Where("owners.deleted = ?", false).
		Group("owners.name").
		Order("owners.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *dashboardRepository) OwnerTypesSummary(scope domain.Scope) ([]NameCount, error) {
	join, args := r.scopedFacilityJoin("facilities.owner_id = owners.id", scope)

	var rows []NameCount
	err := r.db.Table("owner_types").
		Select("owner_types.name AS name, COUNT(facilities.id) AS count").
		Joins("LEFT JOIN owners ON owners.owner_type_id = owner_types.id AND owners.deleted = ?", false).
		Joins(join, args...).
		Where("owner_types.deleted = ?", false).
		Group("owner_types.name").
		Order("owner_types.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *dashboardRepository) TypesSummary(scope domain.Scope) ([]NameCount, error) {
	join, args := r.scopedFacilityJoin("facilities.facility_type_id = facility_types.id", scope)

	var rows []NameCount
	err := r.db.Table("facility_types").
		Select("facility_types.name AS name, COUNT(facilities.id) AS count").
		Joins(join, args...).
		Where("facility_types.deleted = ?", false).
		Group("facility_types.name").
		Order("facility_types.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *dashboardRepository) StatusSummary(scope domain.Scope) ([]NameCount, error) {
	join, args := r.scopedFacilityJoin("facilities.operation_status_id = facility_statuses.id", scope)

	var rows []NameCount
	err := r.db.Table("facility_statuses").
		Select("facility_statuses.name AS name, COUNT(facilities.id) AS count").
		Joins(join, args...).
		Where("facility_statuses.deleted = ?", false).
		Group("facility_statuses.name").
		Order("facility_statuses.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
