package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ehealth-ke/facility-registry/internal/domain"
)

func TestCatalogRepository_CreateOwner_AssignsCode(t *testing.T) {
	db := openTestDB(t)
	catalogs := NewCatalogRepository(db, nil)
	actor := uuid.New()

	ownerType := domain.OwnerType{Name: "Private Practice"}
	ownerType.Stamp(actor)
	require.NoError(t, catalogs.CreateOwnerType(&ownerType))

	first := domain.Owner{Name: "Aga Khan Health Services", OwnerTypeID: ownerType.ID}
	first.Stamp(actor)
	require.NoError(t, catalogs.CreateOwner(&first))

	second := domain.Owner{Name: "Mission for Essential Drugs", OwnerTypeID: ownerType.ID}
	second.Stamp(actor)
	require.NoError(t, catalogs.CreateOwner(&second))

	assert.Equal(t, int64(1), first.Code)
	assert.Equal(t, int64(2), second.Code)
}

func TestCatalogRepository_FindOwner_PreloadsType(t *testing.T) {
	db := openTestDB(t)
	catalogs := NewCatalogRepository(db, nil)
	seed := seedCatalog(t, db, uuid.New(), "Nairobi")

	owner, err := catalogs.FindOwner(seed.Owner.ID)
	require.NoError(t, err)
	require.NotNil(t, owner.OwnerType)
	assert.Equal(t, seed.OwnerType.Name, owner.OwnerType.Name)
}

func TestCatalogRepository_ListOwners_FilterByType(t *testing.T) {
	db := openTestDB(t)
	catalogs := NewCatalogRepository(db, nil)
	actor := uuid.New()

	public := domain.OwnerType{Name: "Public"}
	public.Stamp(actor)
	require.NoError(t, catalogs.CreateOwnerType(&public))
	private := domain.OwnerType{Name: "Private"}
	private.Stamp(actor)
	require.NoError(t, catalogs.CreateOwnerType(&private))

	moh := domain.Owner{Name: "Ministry of Health", OwnerTypeID: public.ID}
	moh.Stamp(actor)
	require.NoError(t, catalogs.CreateOwner(&moh))
	akhs := domain.Owner{Name: "Aga Khan Health Services", OwnerTypeID: private.ID}
	akhs.Stamp(actor)
	require.NoError(t, catalogs.CreateOwner(&akhs))

	owners, err := catalogs.ListOwners(&public.ID)
	require.NoError(t, err)
	require.Len(t, owners, 1)
	assert.Equal(t, moh.ID, owners[0].ID)

	all, err := catalogs.ListOwners(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCatalogRepository_UpdateOwnerType(t *testing.T) {
	db := openTestDB(t)
	catalogs := NewCatalogRepository(db, nil)
	actor := uuid.New()

	ownerType := domain.OwnerType{Name: "Faith Based"}
	ownerType.Stamp(actor)
	require.NoError(t, catalogs.CreateOwnerType(&ownerType))

	updated, err := catalogs.UpdateOwnerType(ownerType.ID, map[string]any{
		"name":          "Faith Based Organization",
		"updated_by_id": actor,
	})
	require.NoError(t, err)
	assert.Equal(t, "Faith Based Organization", updated.Name)

	_, err = catalogs.UpdateOwnerType(uuid.New(), map[string]any{"name": "Ghost"})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCatalogRepository_SoftDeletedRowsHidden(t *testing.T) {
	db := openTestDB(t)
	catalogs := NewCatalogRepository(db, nil)
	actor := uuid.New()

	level := domain.KephLevel{Name: "Level 2"}
	level.Stamp(actor)
	require.NoError(t, catalogs.CreateKephLevel(&level))

	require.NoError(t, db.Model(&domain.KephLevel{}).
		Where("id = ?", level.ID).
		Update("deleted", true).Error)

	_, err := catalogs.FindKephLevel(level.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = catalogs.UpdateKephLevel(level.ID, map[string]any{"name": "Level II"})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	levels, err := catalogs.ListKephLevels()
	require.NoError(t, err)
	assert.Empty(t, levels)

	// the row itself survives for audit
	var n int64
	require.NoError(t, db.Model(&domain.KephLevel{}).Where("id = ?", level.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestCatalogRepository_ListServices_FilterByCategory(t *testing.T) {
	db := openTestDB(t)
	catalogs := NewCatalogRepository(db, nil)
	actor := uuid.New()

	outpatient := domain.ServiceCategory{Name: "Outpatient"}
	outpatient.Stamp(actor)
	require.NoError(t, catalogs.CreateServiceCategory(&outpatient))
	maternity := domain.ServiceCategory{Name: "Maternity"}
	maternity.Stamp(actor)
	require.NoError(t, catalogs.CreateServiceCategory(&maternity))

	consult := domain.Service{Name: "General consultation", CategoryID: outpatient.ID}
	consult.Stamp(actor)
	require.NoError(t, catalogs.CreateService(&consult))
	delivery := domain.Service{Name: "Normal delivery", CategoryID: maternity.ID}
	delivery.Stamp(actor)
	require.NoError(t, catalogs.CreateService(&delivery))

	services, err := catalogs.ListServices(&maternity.ID)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, delivery.ID, services[0].ID)
	require.NotNil(t, services[0].Category)
	assert.Equal(t, "Maternity", services[0].Category.Name)

	assert.Equal(t, int64(1), consult.Code)
	assert.Equal(t, int64(2), delivery.Code)
}
