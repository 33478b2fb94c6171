package domain

// SequenceCounter backs code assignment. One row per model name; the
// counter only moves forward, so an issued code is never reused even
// after the row it was assigned to is soft deleted.
type SequenceCounter struct {
	ModelName string `gorm:"primaryKey" json:"model_name"`
	LastValue int64  `gorm:"not null" json:"last_value"`
}

// Sequence model names.
const (
	SequenceCounty       = "county"
	SequenceConstituency = "constituency"
	SequenceWard         = "ward"
	SequenceOwner        = "owner"
	SequenceService      = "service"
	SequenceFacility     = "facility"
)
