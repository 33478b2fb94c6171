package dto

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ehealth-ke/facility-registry/internal/domain"
)

type CreateFacilityRequest struct {
	Name                string     `json:"name"`
	OfficialName        string     `json:"official_name"`
	Code                int64      `json:"code"` // assigned from the sequence when 0
	Description         string     `json:"description"`
	NumberOfBeds        int        `json:"number_of_beds"`
	NumberOfCots        int        `json:"number_of_cots"`
	OpenWholeDay        bool       `json:"open_whole_day"`
	OpenWholeWeek       bool       `json:"open_whole_week"`
	LocationDescription string     `json:"location_description"`
	IsClassified        bool       `json:"is_classified"`
	Ward                uuid.UUID  `json:"ward"`
	Owner               uuid.UUID  `json:"owner"`
	FacilityType        *uuid.UUID `json:"facility_type,omitempty"`
	OperationStatus     *uuid.UUID `json:"operation_status,omitempty"`
	KephLevel           *uuid.UUID `json:"keph_level,omitempty"`
	RegulatoryBody      *uuid.UUID `json:"regulatory_body,omitempty"`

	PhysicalAddress *PhysicalAddressInput `json:"physical_address,omitempty"`
}

type PhysicalAddressInput struct {
	Town            string `json:"town"`
	PostalCode      string `json:"postal_code"`
	Address         string `json:"address"`
	NearestLandmark string `json:"nearest_landmark"`
	PlotNumber      string `json:"plot_number"`
}

// UpdateFacilityRequest uses pointers so an absent field is left alone.
// Against an approved facility the delta is queued for review instead
// of being written.
type UpdateFacilityRequest struct {
	Name                *string    `json:"name,omitempty"`
	OfficialName        *string    `json:"official_name,omitempty"`
	Description         *string    `json:"description,omitempty"`
	NumberOfBeds        *int       `json:"number_of_beds,omitempty"`
	NumberOfCots        *int       `json:"number_of_cots,omitempty"`
	OpenWholeDay        *bool      `json:"open_whole_day,omitempty"`
	OpenWholeWeek       *bool      `json:"open_whole_week,omitempty"`
	LocationDescription *string    `json:"location_description,omitempty"`
	Ward                *uuid.UUID `json:"ward,omitempty"`
	Owner               *uuid.UUID `json:"owner,omitempty"`
	FacilityType        *uuid.UUID `json:"facility_type,omitempty"`
	OperationStatus     *uuid.UUID `json:"operation_status,omitempty"`
	KephLevel           *uuid.UUID `json:"keph_level,omitempty"`
	RegulatoryBody      *uuid.UUID `json:"regulatory_body,omitempty"`
	RegulationStatus    *uuid.UUID `json:"regulation_status,omitempty"`
}

// FieldEdit is one requested field write, rendered the way the update
// queue stores values.
type FieldEdit struct {
	Field string
	Value string
}

// Changed lists the editable fields the request sets.
func (r UpdateFacilityRequest) Changed() []FieldEdit {
	var out []FieldEdit
	add := func(field, value string) { out = append(out, FieldEdit{Field: field, Value: value}) }

	if r.Name != nil {
		add("name", *r.Name)
	}
	if r.OfficialName != nil {
		add("official_name", *r.OfficialName)
	}
	if r.Description != nil {
		add("description", *r.Description)
	}
	if r.LocationDescription != nil {
		add("location_description", *r.LocationDescription)
	}
	if r.NumberOfBeds != nil {
		add("number_of_beds", strconv.Itoa(*r.NumberOfBeds))
	}
	if r.NumberOfCots != nil {
		add("number_of_cots", strconv.Itoa(*r.NumberOfCots))
	}
	if r.OpenWholeDay != nil {
		add("open_whole_day", strconv.FormatBool(*r.OpenWholeDay))
	}
	if r.OpenWholeWeek != nil {
		add("open_whole_week", strconv.FormatBool(*r.OpenWholeWeek))
	}
	if r.Ward != nil {
		add("ward", r.Ward.String())
	}
	if r.Owner != nil {
		add("owner", r.Owner.String())
	}
	if r.FacilityType != nil {
		add("facility_type", r.FacilityType.String())
	}
	if r.OperationStatus != nil {
		add("operation_status", r.OperationStatus.String())
	}
	if r.KephLevel != nil {
		add("keph_level", r.KephLevel.String())
	}
	if r.RegulatoryBody != nil {
		add("regulatory_body", r.RegulatoryBody.String())
	}
	if r.RegulationStatus != nil {
		add("regulation_status", r.RegulationStatus.String())
	}
	return out
}

// FacilityListQuery mirrors the supported list filters.
type FacilityListQuery struct {
	OwnerType       string `query:"owner_type"`
	IsRegulated     string `query:"is_regulated"`
	IsApproved      string `query:"is_approved"`
	Rejected        string `query:"rejected"`
	HasEdits        string `query:"has_edits"`
	ServiceCategory string `query:"service_category"` // comma separated category ids
	County          string `query:"county"`
	Constituency    string `query:"constituency"`
	Ward            string `query:"ward"`
	Limit           int    `query:"limit"`
	Offset          int    `query:"offset"`
}

type FacilityResponse struct {
	ID                  uuid.UUID  `json:"id"`
	Name                string     `json:"name"`
	OfficialName        string     `json:"official_name"`
	Code                int64      `json:"code"`
	Description         string     `json:"description"`
	NumberOfBeds        int        `json:"number_of_beds"`
	NumberOfCots        int        `json:"number_of_cots"`
	OpenWholeDay        bool       `json:"open_whole_day"`
	OpenWholeWeek       bool       `json:"open_whole_week"`
	LocationDescription string     `json:"location_description"`
	IsClassified        bool       `json:"is_classified"`
	IsPublished         bool       `json:"is_published"`
	Ward                uuid.UUID  `json:"ward"`
	WardName            string     `json:"ward_name"`
	Constituency        string     `json:"constituency"`
	County              string     `json:"county"`
	Owner               uuid.UUID  `json:"owner"`
	OwnerName           string     `json:"owner_name"`
	FacilityType        *uuid.UUID `json:"facility_type"`
	FacilityTypeName    string     `json:"facility_type_name"`
	OperationStatus     *uuid.UUID `json:"operation_status"`
	OperationStatusName string     `json:"operation_status_name"`
	KephLevel           *uuid.UUID `json:"keph_level"`
	KephLevelName       string     `json:"keph_level_name"`
	RegulatoryBody      *uuid.UUID `json:"regulatory_body"`
	RegulatoryBodyName  string     `json:"regulatory_body_name"`
	RegulationStatus    *uuid.UUID `json:"regulation_status"`
	IsRegulated         bool       `json:"is_regulated"`
	IsApproved          bool       `json:"is_approved"`
	Rejected            bool       `json:"rejected"`
	HasEdits            bool       `json:"has_edits"`
	LatestUpdate        *uuid.UUID `json:"latest_update"`
	Created             time.Time  `json:"created"`
	Updated             time.Time  `json:"updated"`
	Active              bool       `json:"active"`

	PhysicalAddress *PhysicalAddressInput `json:"physical_address,omitempty"`
}

// FacilityListItem is the slimmed row the list endpoint returns.
type FacilityListItem struct {
	ID                  uuid.UUID `json:"id"`
	Code                int64     `json:"code"`
	Name                string    `json:"name"`
	Ward                uuid.UUID `json:"ward"`
	WardName            string    `json:"ward_name"`
	Constituency        string    `json:"constituency"`
	County              string    `json:"county"`
	OwnerName           string    `json:"owner_name"`
	FacilityTypeName    string    `json:"facility_type_name"`
	OperationStatusName string    `json:"operation_status_name"`
	IsApproved          bool      `json:"is_approved"`
	Rejected            bool      `json:"rejected"`
	HasEdits            bool      `json:"has_edits"`
}

type CreateFacilityContactRequest struct {
	Contact     string    `json:"contact"`
	ContactType uuid.UUID `json:"contact_type"`
}

type FacilityContactResponse struct {
	ID              uuid.UUID `json:"id"`
	Facility        uuid.UUID `json:"facility"`
	Contact         string    `json:"contact"`
	ContactType     uuid.UUID `json:"contact_type"`
	ContactTypeName string    `json:"contact_type_name"`
}

type CreateFacilityUnitRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateUnitRegulationRequest struct {
	RegulationStatus uuid.UUID `json:"regulation_status"`
}

type CreateFacilityServiceRequest struct {
	Service uuid.UUID `json:"service"`
}

type FacilityServiceResponse struct {
	ID           uuid.UUID `json:"id"`
	Facility     uuid.UUID `json:"facility"`
	Service      uuid.UUID `json:"service"`
	ServiceName  string    `json:"service_name"`
	CategoryName string    `json:"category_name"`
}

type CreateApprovalRequest struct {
	Comment     string `json:"comment"`
	IsCancelled bool   `json:"is_cancelled"` // true records a rejection
}

// ResolveUpdateRequest decides a pending facility update. Exactly one
// flag may be set.
type ResolveUpdateRequest struct {
	Approved  *bool `json:"approved,omitempty"`
	Cancelled *bool `json:"cancelled,omitempty"`
}

type FacilityUpdateResponse struct {
	ID           uuid.UUID            `json:"id"`
	Facility     uuid.UUID            `json:"facility"`
	FacilityName string               `json:"facility_name"`
	Changes      []domain.FieldChange `json:"facility_updates"`
	Approved     bool                 `json:"approved"`
	Cancelled    bool                 `json:"cancelled"`
	Created      time.Time            `json:"created"`
	CreatedBy    uuid.UUID            `json:"created_by"`
	Updated      time.Time            `json:"updated"`
}
