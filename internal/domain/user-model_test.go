package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestScope_Empty(t *testing.T) {
	countyID := uuid.New()

	assert.True(t, Scope{}.Empty())
	assert.False(t, Scope{National: true}.Empty())
	assert.False(t, Scope{CountyID: &countyID}.Empty())
}

func TestScope_Allows(t *testing.T) {
	countyID := uuid.New()
	otherCountyID := uuid.New()
	consID := uuid.New()
	bodyID := uuid.New()

	facility := func() *Facility {
		return &Facility{
			WardID: uuid.New(),
			Ward: &Ward{
				ConstituencyID: consID,
				Constituency:   &Constituency{CountyID: countyID},
			},
			RegulatoryBodyID: &bodyID,
		}
	}

	t.Run("national sees everything", func(t *testing.T) {
		assert.True(t, Scope{National: true}.Allows(facility()))
	})

	t.Run("empty scope sees nothing", func(t *testing.T) {
		assert.False(t, Scope{}.Allows(facility()))
	})

	t.Run("county match", func(t *testing.T) {
		assert.True(t, Scope{CountyID: &countyID}.Allows(facility()))
		assert.False(t, Scope{CountyID: &otherCountyID}.Allows(facility()))
	})

	t.Run("constituency match", func(t *testing.T) {
		assert.True(t, Scope{ConstituencyID: &consID}.Allows(facility()))
		other := uuid.New()
		assert.False(t, Scope{ConstituencyID: &other}.Allows(facility()))
	})

	t.Run("constituency overrides county", func(t *testing.T) {
		s := Scope{CountyID: &otherCountyID, ConstituencyID: &consID}
		assert.True(t, s.Allows(facility()))
	})

	t.Run("regulatory body match", func(t *testing.T) {
		assert.True(t, Scope{RegulatoryBodyID: &bodyID}.Allows(facility()))
		other := uuid.New()
		assert.False(t, Scope{RegulatoryBodyID: &other}.Allows(facility()))

		unregulated := facility()
		unregulated.RegulatoryBodyID = nil
		assert.False(t, Scope{RegulatoryBodyID: &bodyID}.Allows(unregulated))
	})

	t.Run("missing ward chain fails closed", func(t *testing.T) {
		bare := &Facility{}
		assert.False(t, Scope{CountyID: &countyID}.Allows(bare))
		assert.False(t, Scope{ConstituencyID: &consID}.Allows(bare))
	})
}

func TestUser_FullName(t *testing.T) {
	assert.Equal(t, "Jane Wanjiku", User{FirstName: "Jane", LastName: "Wanjiku"}.FullName())
	assert.Equal(t, "Jane Wanjiku Njeri", User{FirstName: "Jane", LastName: "Wanjiku", OtherNames: "Njeri"}.FullName())
	assert.Equal(t, "Wanjiku", User{LastName: "Wanjiku"}.FullName())
	assert.Equal(t, "", User{}.FullName())
}

func TestWard_CountyID(t *testing.T) {
	countyID := uuid.New()

	w := Ward{Constituency: &Constituency{CountyID: countyID}}
	got := w.CountyID()
	assert.NotNil(t, got)
	assert.Equal(t, countyID, *got)

	assert.Nil(t, Ward{}.CountyID())
}
