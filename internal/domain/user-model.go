package domain

import "github.com/google/uuid"

type User struct {
	AuditFields
	Email          string `gorm:"uniqueIndex;not null" json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	OtherNames     string `json:"other_names"`
	EmployeeNumber string `json:"employee_number"`
	PasswordHash   string `json:"-"`
	IsNational     bool   `gorm:"not null;default:false" json:"is_national"`
	IsStaff        bool   `gorm:"not null;default:false" json:"is_staff"`
}

// FullName joins the parts that are present.
func (u User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if u.OtherNames != "" {
		if name != "" {
			name += " "
		}
		name += u.OtherNames
	}
	return name
}

// UserCounty ties a user to the county whose facilities they manage.
// The partial index lets a user keep an assignment history while
// holding at most one active county.
type UserCounty struct {
	AuditFields
	UserID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uidx_user_counties_one_active,where:is_active" json:"user"`
	CountyID uuid.UUID `gorm:"type:uuid;not null;index" json:"county"`
	IsActive bool      `gorm:"not null;default:true" json:"is_active"`

	User   *User   `gorm:"foreignKey:UserID" json:"-"`
	County *County `gorm:"foreignKey:CountyID" json:"-"`
}

type UserConstituency struct {
	AuditFields
	UserID         uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uidx_user_constituencies_one_active,where:is_active" json:"user"`
	ConstituencyID uuid.UUID `gorm:"type:uuid;not null;index" json:"constituency"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`

	User         *User         `gorm:"foreignKey:UserID" json:"-"`
	Constituency *Constituency `gorm:"foreignKey:ConstituencyID" json:"-"`
}

// RegulatoryBodyUser narrows an officer's visibility to the facilities
// their body regulates.
type RegulatoryBodyUser struct {
	AuditFields
	UserID           uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uidx_regulatory_body_users_one_active,where:is_active" json:"user"`
	RegulatoryBodyID uuid.UUID `gorm:"type:uuid;not null;index" json:"regulatory_body"`
	IsActive         bool      `gorm:"not null;default:true" json:"is_active"`

	User           *User           `gorm:"foreignKey:UserID" json:"-"`
	RegulatoryBody *RegulatingBody `gorm:"foreignKey:RegulatoryBodyID" json:"-"`
}

// Scope is the resolved visibility of a user. A zero Scope (no national
// flag, no region, no body) grants nothing.
type Scope struct {
	National         bool
	CountyID         *uuid.UUID
	ConstituencyID   *uuid.UUID
	RegulatoryBodyID *uuid.UUID
}

// Empty reports whether the scope grants no visibility at all.
func (s Scope) Empty() bool {
	return !s.National && s.CountyID == nil && s.ConstituencyID == nil && s.RegulatoryBodyID == nil
}

// Allows reports whether the facility falls inside this scope. The
// facility's ward chain must be preloaded for region checks. A
// constituency assignment overrides a county one, matching the list
// queries; the regulatory body narrows on top of the region.
func (s Scope) Allows(f *Facility) bool {
	if s.National {
		return true
	}
	if s.Empty() {
		return false
	}
	switch {
	case s.ConstituencyID != nil:
		if f.Ward == nil || f.Ward.ConstituencyID != *s.ConstituencyID {
			return false
		}
	case s.CountyID != nil:
		if f.Ward == nil || f.Ward.Constituency == nil || f.Ward.Constituency.CountyID != *s.CountyID {
			return false
		}
	}
	if s.RegulatoryBodyID != nil {
		if f.RegulatoryBodyID == nil || *f.RegulatoryBodyID != *s.RegulatoryBodyID {
			return false
		}
	}
	return true
}
