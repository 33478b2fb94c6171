package domain

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// FacilityUpdate holds edits to an approved facility until a reviewer
// resolves them. Approved and Cancelled are terminal and mutually
// exclusive; a pending update has neither set.
type FacilityUpdate struct {
	AuditFields
	FacilityID uuid.UUID      `gorm:"type:uuid;not null;index" json:"facility"`
	Changes    datatypes.JSON `gorm:"type:jsonb" json:"facility_updates"`
	Approved   bool           `gorm:"not null;default:false" json:"approved"`
	Cancelled  bool           `gorm:"not null;default:false" json:"cancelled"`

	Facility *Facility `gorm:"foreignKey:FacilityID" json:"-"`
}

// Pending reports whether the update still awaits a decision.
func (u FacilityUpdate) Pending() bool {
	return !u.Approved && !u.Cancelled
}

// FieldChange is one entry of an update's change list. Values are kept
// as display strings; the field kind drives parsing on approval.
type FieldChange struct {
	FieldName      string `json:"field_name"`
	HumanFieldName string `json:"human_field_name"`
	CurrentValue   string `json:"current_value"`
	ProposedValue  string `json:"proposed_value"`
}

type FieldKind int

const (
	FieldText FieldKind = iota
	FieldInt
	FieldBool
	FieldRef
)

// EditableField describes a facility attribute the update workflow may
// touch. Anything not listed here is rejected at submission.
type EditableField struct {
	Human string
	Kind  FieldKind
}

var facilityEditableFields = map[string]EditableField{
	"name":                 {Human: "Name", Kind: FieldText},
	"official_name":        {Human: "Official Name", Kind: FieldText},
	"description":          {Human: "Description", Kind: FieldText},
	"location_description": {Human: "Location Description", Kind: FieldText},
	"number_of_beds":       {Human: "Number of Beds", Kind: FieldInt},
	"number_of_cots":       {Human: "Number of Cots", Kind: FieldInt},
	"open_whole_day":       {Human: "Open Whole Day", Kind: FieldBool},
	"open_whole_week":      {Human: "Open Whole Week", Kind: FieldBool},
	"ward":                 {Human: "Ward", Kind: FieldRef},
	"owner":                {Human: "Owner", Kind: FieldRef},
	"facility_type":        {Human: "Facility Type", Kind: FieldRef},
	"operation_status":     {Human: "Operation Status", Kind: FieldRef},
	"keph_level":           {Human: "KEPH Level", Kind: FieldRef},
	"regulatory_body":      {Human: "Regulatory Body", Kind: FieldRef},
	"regulation_status":    {Human: "Regulation Status", Kind: FieldRef},
}

// EditableFacilityField looks up the change descriptor for a field.
func EditableFacilityField(name string) (EditableField, bool) {
	f, ok := facilityEditableFields[name]
	return f, ok
}

// ApplyChange writes one captured change onto the facility. The update
// transaction rolls back entirely when any change fails to apply.
func ApplyChange(f *Facility, ch FieldChange) error {
	field, ok := facilityEditableFields[ch.FieldName]
	if !ok {
		return NewValidationError(ch.FieldName, "field cannot be updated")
	}

	switch field.Kind {
	case FieldText:
		switch ch.FieldName {
		case "name":
			f.Name = ch.ProposedValue
		case "official_name":
			f.OfficialName = ch.ProposedValue
		case "description":
			f.Description = ch.ProposedValue
		case "location_description":
			f.LocationDescription = ch.ProposedValue
		}
	case FieldInt:
		n, err := strconv.Atoi(ch.ProposedValue)
		if err != nil || n < 0 {
			return NewValidationError(ch.FieldName, fmt.Sprintf("%q is not a valid count", ch.ProposedValue))
		}
		switch ch.FieldName {
		case "number_of_beds":
			f.NumberOfBeds = n
		case "number_of_cots":
			f.NumberOfCots = n
		}
	case FieldBool:
		b, err := strconv.ParseBool(ch.ProposedValue)
		if err != nil {
			return NewValidationError(ch.FieldName, fmt.Sprintf("%q is not a valid flag", ch.ProposedValue))
		}
		switch ch.FieldName {
		case "open_whole_day":
			f.OpenWholeDay = b
		case "open_whole_week":
			f.OpenWholeWeek = b
		}
	case FieldRef:
		var ref *uuid.UUID
		if ch.ProposedValue != "" {
			id, err := uuid.Parse(ch.ProposedValue)
			if err != nil {
				return NewValidationError(ch.FieldName, fmt.Sprintf("%q is not a valid reference", ch.ProposedValue))
			}
			ref = &id
		}
		switch ch.FieldName {
		case "ward":
			if ref == nil {
				return NewValidationError(ch.FieldName, "ward is required")
			}
			f.WardID = *ref
		case "owner":
			if ref == nil {
				return NewValidationError(ch.FieldName, "owner is required")
			}
			f.OwnerID = *ref
		case "facility_type":
			f.FacilityTypeID = ref
		case "operation_status":
			f.OperationStatusID = ref
		case "keph_level":
			f.KephLevelID = ref
		case "regulatory_body":
			f.RegulatoryBodyID = ref
		case "regulation_status":
			f.RegulationStatusID = ref
		}
	}
	return nil
}

// FieldValue renders the facility's current value of an editable field
// the same way proposed values are stored.
func FieldValue(f *Facility, name string) string {
	switch name {
	case "name":
		return f.Name
	case "official_name":
		return f.OfficialName
	case "description":
		return f.Description
	case "location_description":
		return f.LocationDescription
	case "number_of_beds":
		return strconv.Itoa(f.NumberOfBeds)
	case "number_of_cots":
		return strconv.Itoa(f.NumberOfCots)
	case "open_whole_day":
		return strconv.FormatBool(f.OpenWholeDay)
	case "open_whole_week":
		return strconv.FormatBool(f.OpenWholeWeek)
	case "ward":
		return f.WardID.String()
	case "owner":
		return f.OwnerID.String()
	case "facility_type":
		return refValue(f.FacilityTypeID)
	case "operation_status":
		return refValue(f.OperationStatusID)
	case "keph_level":
		return refValue(f.KephLevelID)
	case "regulatory_body":
		return refValue(f.RegulatoryBodyID)
	case "regulation_status":
		return refValue(f.RegulationStatusID)
	}
	return ""
}

func refValue(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
