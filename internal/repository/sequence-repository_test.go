package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ehealth-ke/facility-registry/internal/domain"
)

func nextCode(t *testing.T, db *gorm.DB, model string, floors CodeFloors) int64 {
	t.Helper()
	var code int64
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		code, err = NextCode(tx, model, floors)
		return err
	})
	require.NoError(t, err)
	return code
}

func TestNextCode_FirstIssueStartsAboveFloor(t *testing.T) {
	db := openTestDB(t)
	floors := CodeFloors{domain.SequenceFacility: 10000}

	assert.Equal(t, int64(10001), nextCode(t, db, domain.SequenceFacility, floors))
	assert.Equal(t, int64(10002), nextCode(t, db, domain.SequenceFacility, floors))
	assert.Equal(t, int64(10003), nextCode(t, db, domain.SequenceFacility, floors))
}

func TestNextCode_NoFloorStartsAtOne(t *testing.T) {
	db := openTestDB(t)

	assert.Equal(t, int64(1), nextCode(t, db, domain.SequenceCounty, nil))
	assert.Equal(t, int64(2), nextCode(t, db, domain.SequenceCounty, nil))
}

func TestNextCode_ModelsCountIndependently(t *testing.T) {
	db := openTestDB(t)
	floors := CodeFloors{domain.SequenceFacility: 10000}

	assert.Equal(t, int64(1), nextCode(t, db, domain.SequenceCounty, floors))
	assert.Equal(t, int64(10001), nextCode(t, db, domain.SequenceFacility, floors))
	assert.Equal(t, int64(1), nextCode(t, db, domain.SequenceWard, floors))
	assert.Equal(t, int64(2), nextCode(t, db, domain.SequenceCounty, floors))
}

func TestNextCode_RollbackReleasesTheNumber(t *testing.T) {
	db := openTestDB(t)

	err := db.Transaction(func(tx *gorm.DB) error {
		code, err := NextCode(tx, domain.SequenceCounty, nil)
		require.NoError(t, err)
		require.Equal(t, int64(1), code)
		return errors.New("abort the write")
	})
	require.Error(t, err)

	// the counter rolled back with the write that wanted the number
	assert.Equal(t, int64(1), nextCode(t, db, domain.SequenceCounty, nil))
}
