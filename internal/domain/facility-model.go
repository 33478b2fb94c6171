package domain

import (
	"time"

	"github.com/google/uuid"
)

// Facility is a place providing healthcare services. Its code is
// assigned from the shared sequence on first save and never changes.
//
// Approved/Rejected mirror the newest FacilityApproval and HasEdits and
// LatestUpdateID mirror the pending FacilityUpdate queue; all four are
// maintained inside the same transaction as the records they reflect.
type Facility struct {
	AuditFields
	Name                string `gorm:"uniqueIndex;not null" json:"name"`
	OfficialName        string `json:"official_name"`
	Code                int64  `gorm:"uniqueIndex;not null" json:"code"`
	Description         string `json:"description"`
	NumberOfBeds        int    `gorm:"not null;default:0" json:"number_of_beds"`
	NumberOfCots        int    `gorm:"not null;default:0" json:"number_of_cots"`
	OpenWholeDay        bool   `gorm:"not null;default:false" json:"open_whole_day"`
	OpenWholeWeek       bool   `gorm:"not null;default:false" json:"open_whole_week"`
	LocationDescription string `json:"location_description"`
	IsClassified        bool   `gorm:"not null;default:false" json:"is_classified"`
	IsPublished         bool   `gorm:"not null;default:false" json:"is_published"`

	WardID             uuid.UUID  `gorm:"type:uuid;not null;index" json:"ward"`
	OwnerID            uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner"`
	FacilityTypeID     *uuid.UUID `gorm:"type:uuid;index" json:"facility_type"`
	OperationStatusID  *uuid.UUID `gorm:"type:uuid;index" json:"operation_status"`
	KephLevelID        *uuid.UUID `gorm:"type:uuid;index" json:"keph_level"`
	RegulatoryBodyID   *uuid.UUID `gorm:"type:uuid;index" json:"regulatory_body"`
	RegulationStatusID *uuid.UUID `gorm:"type:uuid;index" json:"regulation_status"`
	PhysicalAddressID  *uuid.UUID `gorm:"type:uuid" json:"physical_address"`

	Approved       bool       `gorm:"not null;default:false" json:"is_approved"`
	Rejected       bool       `gorm:"not null;default:false" json:"rejected"`
	HasEdits       bool       `gorm:"not null;default:false" json:"has_edits"`
	LatestUpdateID *uuid.UUID `gorm:"type:uuid" json:"latest_update"`

	Ward             *Ward             `gorm:"foreignKey:WardID" json:"-"`
	Owner            *Owner            `gorm:"foreignKey:OwnerID" json:"-"`
	FacilityType     *FacilityType     `gorm:"foreignKey:FacilityTypeID" json:"-"`
	OperationStatus  *FacilityStatus   `gorm:"foreignKey:OperationStatusID" json:"-"`
	KephLevel        *KephLevel        `gorm:"foreignKey:KephLevelID" json:"-"`
	RegulatoryBody   *RegulatingBody   `gorm:"foreignKey:RegulatoryBodyID" json:"-"`
	RegulationStatus *RegulationStatus `gorm:"foreignKey:RegulationStatusID" json:"-"`
	PhysicalAddress  *PhysicalAddress  `gorm:"foreignKey:PhysicalAddressID" json:"-"`
}

// IsRegulated reports whether a regulation status has been confirmed.
func (f Facility) IsRegulated() bool {
	return f.RegulationStatusID != nil
}

type PhysicalAddress struct {
	AuditFields
	Town            string `json:"town"`
	PostalCode      string `json:"postal_code"`
	Address         string `json:"address"`
	NearestLandmark string `json:"nearest_landmark"`
	PlotNumber      string `json:"plot_number"`
}

// FacilityContact attaches a contact (phone, email, ...) to a facility.
type FacilityContact struct {
	AuditFields
	FacilityID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uidx_facility_contacts_pair" json:"facility"`
	ContactID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uidx_facility_contacts_pair" json:"contact"`

	Facility *Facility `gorm:"foreignKey:FacilityID" json:"-"`
	Contact  *Contact  `gorm:"foreignKey:ContactID" json:"-"`
}

// FacilityUnit is a department within a facility that may be regulated
// on its own, e.g. a pharmacy or lab.
type FacilityUnit struct {
	AuditFields
	FacilityID  uuid.UUID `gorm:"type:uuid;not null;index" json:"facility"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`

	Facility *Facility `gorm:"foreignKey:FacilityID" json:"-"`
}

type FacilityUnitRegulation struct {
	AuditFields
	UnitID             uuid.UUID `gorm:"type:uuid;not null;index" json:"unit"`
	RegulationStatusID uuid.UUID `gorm:"type:uuid;not null;index" json:"regulation_status"`

	Unit             *FacilityUnit     `gorm:"foreignKey:UnitID" json:"-"`
	RegulationStatus *RegulationStatus `gorm:"foreignKey:RegulationStatusID" json:"-"`
}

// FacilityService links a facility to a service it offers.
type FacilityService struct {
	AuditFields
	FacilityID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uidx_facility_services_pair" json:"facility"`
	ServiceID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uidx_facility_services_pair" json:"service"`

	Facility *Facility `gorm:"foreignKey:FacilityID" json:"-"`
	Service  *Service  `gorm:"foreignKey:ServiceID" json:"-"`
}

// FacilityApproval records a sign-off or a rejection (IsCancelled set)
// of a facility. The newest record decides the facility's standing.
type FacilityApproval struct {
	AuditFields
	FacilityID  uuid.UUID `gorm:"type:uuid;not null;index" json:"facility"`
	Comment     string    `json:"comment"`
	IsCancelled bool      `gorm:"not null;default:false" json:"is_cancelled"`

	Facility *Facility `gorm:"foreignKey:FacilityID" json:"-"`
}

// RegistryModels lists every persisted type in dependency order for
// migration.
func RegistryModels() []any {
	return []any{
		&User{},
		&County{},
		&Constituency{},
		&Ward{},
		&UserCounty{},
		&UserConstituency{},
		&OwnerType{},
		&Owner{},
		&FacilityType{},
		&FacilityStatus{},
		&KephLevel{},
		&RegulationStatus{},
		&RegulatingBody{},
		&RegulatoryBodyUser{},
		&ContactType{},
		&Contact{},
		&ServiceCategory{},
		&Service{},
		&PhysicalAddress{},
		&Facility{},
		&FacilityContact{},
		&FacilityUnit{},
		&FacilityUnitRegulation{},
		&FacilityService{},
		&FacilityApproval{},
		&FacilityUpdate{},
		&SequenceCounter{},
	}
}

// recentWindow is how far back the dashboard's recently-created count
// looks.
const recentWindow = 30 * 24 * time.Hour

// RecentCutoff returns the lower bound for recently created rows.
func RecentCutoff(now time.Time) time.Time {
	return now.Add(-recentWindow)
}
