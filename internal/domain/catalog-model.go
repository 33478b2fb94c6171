package domain

import "github.com/google/uuid"

// Reference data the registry classifies facilities with. All of it is
// name-unique and audit-tracked; none of it is hard-deleted.

type OwnerType struct {
	AuditFields
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description"`
}

// Owner is an entity, public or private, that runs facilities.
type Owner struct {
	AuditFields
	Name         string    `gorm:"uniqueIndex;not null" json:"name"`
	Code         int64     `gorm:"uniqueIndex;not null" json:"code"`
	Abbreviation string    `json:"abbreviation"`
	Description  string    `json:"description"`
	OwnerTypeID  uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_type"`

	OwnerType *OwnerType `gorm:"foreignKey:OwnerTypeID" json:"-"`
}

type FacilityType struct {
	AuditFields
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	SubDivision string `json:"sub_division"`
}

// FacilityStatus covers operation states such as Operational or Closed.
type FacilityStatus struct {
	AuditFields
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description"`
}

// KephLevel is the Kenya Essential Package for Health level of care.
type KephLevel struct {
	AuditFields
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description"`
}

type RegulationStatus struct {
	AuditFields
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description"`
}

// RegulatingBody licenses facilities, e.g. the Medical Practitioners
// and Dentists Board.
type RegulatingBody struct {
	AuditFields
	Name         string `gorm:"uniqueIndex;not null" json:"name"`
	Abbreviation string `json:"abbreviation"`
}

type ContactType struct {
	AuditFields
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description"`
}

type Contact struct {
	AuditFields
	Contact       string    `gorm:"not null;index" json:"contact"`
	ContactTypeID uuid.UUID `gorm:"type:uuid;not null;index" json:"contact_type"`

	ContactType *ContactType `gorm:"foreignKey:ContactTypeID" json:"-"`
}

type ServiceCategory struct {
	AuditFields
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description"`
}

type Service struct {
	AuditFields
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Code        int64     `gorm:"uniqueIndex;not null" json:"code"`
	Description string    `json:"description"`
	CategoryID  uuid.UUID `gorm:"type:uuid;not null;index" json:"category"`

	Category *ServiceCategory `gorm:"foreignKey:CategoryID" json:"-"`
}
