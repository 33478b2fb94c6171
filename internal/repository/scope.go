package repository

import (
	"gorm.io/gorm"

	"github.com/ehealth-ke/facility-registry/internal/domain"
)

// notDeleted is the default read predicate. Soft deleted rows stay in
// the table and only show up through the includeDeleted paths.
func notDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("deleted = ?", false)
}

// scopedWardIDs builds the subquery of ward ids a region-scoped user
// may see. Returns nil when the scope carries no region restriction.
func scopedWardIDs(db *gorm.DB, scope domain.Scope) *gorm.DB {
	switch {
	case scope.ConstituencyID != nil:
		return db.Session(&gorm.Session{NewDB: true}).
			Model(&domain.Ward{}).
			Select("wards.id").
			Where("wards.constituency_id = ?", *scope.ConstituencyID)
	case scope.CountyID != nil:
		return db.Session(&gorm.Session{NewDB: true}).
			Model(&domain.Ward{}).
			Select("wards.id").
			Joins("JOIN constituencies ON constituencies.id = wards.constituency_id").
			Where("constituencies.county_id = ?", *scope.CountyID)
	default:
		return nil
	}
}

// applyFacilityScope narrows a facility query to the user's horizon.
// A scope with nothing granted matches no rows at all.
func applyFacilityScope(q *gorm.DB, db *gorm.DB, scope domain.Scope) *gorm.DB {
	if scope.Empty() {
		return q.Where("1 = 0")
	}
	if sub := scopedWardIDs(db, scope); sub != nil {
		q = q.Where("facilities.ward_id IN (?)", sub)
	}
	if scope.RegulatoryBodyID != nil {
		q = q.Where("facilities.regulatory_body_id = ?", *scope.RegulatoryBodyID)
	}
	return q
}
