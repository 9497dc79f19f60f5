package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petfind/internal/adapters/persistence/models"
	"petfind/internal/core/domain"
)

func TestCatalogService(t *testing.T) {
	f := newFixture(t)
	admin := f.admin()
	other := f.admin()
	user := f.member()

	species, err := f.catalog.CreateSpecies(f.ctx, " Cat ", admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cat", species.Name)

	sent := f.notify.byTemplate(TemplateSpeciesCreated)
	require.Len(t, sent, 2)
	assert.ElementsMatch(t, []string{admin.Email, other.Email}, []string{sent[0].Email, sent[1].Email})
	assert.Equal(t, "Cat", sent[0].Context["speciesName"])

	t.Run("species names are unique ignoring case", func(t *testing.T) {
		_, err := f.catalog.CreateSpecies(f.ctx, "cat", admin.ID)
		assert.ErrorIs(t, err, domain.ErrSpeciesAlreadyExists)
	})

	t.Run("only admins create entries", func(t *testing.T) {
		_, err := f.catalog.CreateSpecies(f.ctx, "Parrot", user.ID)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
		_, err = f.catalog.CreateBreed(f.ctx, species.ID, "Siamese", user.ID)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("breeds belong to a species", func(t *testing.T) {
		breed, err := f.catalog.CreateBreed(f.ctx, species.ID, "Siamese", admin.ID)
		require.NoError(t, err)
		assert.Equal(t, species.ID, breed.SpeciesID)
		assert.Len(t, f.notify.byTemplate(TemplateBreedCreated), 2)

		_, err = f.catalog.CreateBreed(f.ctx, species.ID, "SIAMESE", admin.ID)
		assert.ErrorIs(t, err, domain.ErrBreedAlreadyExists)

		_, err = f.catalog.CreateBreed(f.ctx, 9999, "Tabby", admin.ID)
		assert.ErrorIs(t, err, domain.ErrSpeciesNotFound)
	})

	t.Run("lists", func(t *testing.T) {
		all, err := f.catalog.ListSpecies(f.ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)

		breeds, err := f.catalog.ListBreeds(f.ctx, species.ID)
		require.NoError(t, err)
		assert.Len(t, breeds, 1)

		_, err = f.catalog.ListBreeds(f.ctx, 9999)
		assert.ErrorIs(t, err, domain.ErrSpeciesNotFound)
	})

	t.Run("blank names", func(t *testing.T) {
		_, err := f.catalog.CreateSpecies(f.ctx, "  ", admin.ID)
		assert.ErrorIs(t, err, domain.ErrNameRequired)
	})
}

func TestCatalogEdits(t *testing.T) {
	f := newFixture(t)
	admin := f.admin()
	user := f.member()

	cat, err := f.catalog.CreateSpecies(f.ctx, "Cat", admin.ID)
	require.NoError(t, err)
	rabbit, err := f.catalog.CreateSpecies(f.ctx, "Rabbit", admin.ID)
	require.NoError(t, err)
	siamese, err := f.catalog.CreateBreed(f.ctx, cat.ID, "Siamese", admin.ID)
	require.NoError(t, err)
	_, err = f.catalog.CreateBreed(f.ctx, cat.ID, "Persian", admin.ID)
	require.NoError(t, err)

	t.Run("only admins edit entries", func(t *testing.T) {
		_, err := f.catalog.UpdateSpecies(f.ctx, cat.ID, "Kitty", user.ID)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
		assert.ErrorIs(t, f.catalog.DeleteSpecies(f.ctx, rabbit.ID, user.ID), domain.ErrPermissionDenied)
		_, err = f.catalog.UpdateBreed(f.ctx, cat.ID, siamese.ID, "Thai", user.ID)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
		assert.ErrorIs(t, f.catalog.DeleteBreed(f.ctx, cat.ID, siamese.ID, user.ID), domain.ErrPermissionDenied)
	})

	t.Run("species renames keep names unique", func(t *testing.T) {
		_, err := f.catalog.UpdateSpecies(f.ctx, rabbit.ID, "CAT", admin.ID)
		assert.ErrorIs(t, err, domain.ErrSpeciesAlreadyExists)

		renamed, err := f.catalog.UpdateSpecies(f.ctx, cat.ID, "cat", admin.ID)
		require.NoError(t, err)
		assert.Equal(t, "cat", renamed.Name)

		stored, err := f.repos.Species.GetByID(f.ctx, cat.ID)
		require.NoError(t, err)
		assert.Equal(t, "cat", stored.Name)

		_, err = f.catalog.UpdateSpecies(f.ctx, 9999, "Hamster", admin.ID)
		assert.ErrorIs(t, err, domain.ErrSpeciesNotFound)
		_, err = f.catalog.UpdateSpecies(f.ctx, cat.ID, " ", admin.ID)
		assert.ErrorIs(t, err, domain.ErrNameRequired)
	})

	t.Run("breed renames stay within their species", func(t *testing.T) {
		_, err := f.catalog.UpdateBreed(f.ctx, cat.ID, siamese.ID, "persian", admin.ID)
		assert.ErrorIs(t, err, domain.ErrBreedAlreadyExists)

		_, err = f.catalog.UpdateBreed(f.ctx, rabbit.ID, siamese.ID, "Thai", admin.ID)
		assert.ErrorIs(t, err, domain.ErrBreedNotFound)

		renamed, err := f.catalog.UpdateBreed(f.ctx, cat.ID, siamese.ID, "Thai", admin.ID)
		require.NoError(t, err)
		assert.Equal(t, "Thai", renamed.Name)
	})

	t.Run("referenced entries cannot be deleted", func(t *testing.T) {
		err := f.catalog.DeleteSpecies(f.ctx, cat.ID, admin.ID)
		assert.ErrorIs(t, err, domain.ErrSpeciesInUse)
		assert.ErrorIs(t, err, domain.ErrConflict)

		a := f.animal(f.approvedShelter(f.member()), models.AnimalStatusAvailable)
		assert.ErrorIs(t, f.catalog.DeleteBreed(f.ctx, a.SpeciesID, a.BreedID, admin.ID), domain.ErrBreedInUse)
	})

	t.Run("unreferenced entries are deleted", func(t *testing.T) {
		require.NoError(t, f.catalog.DeleteBreed(f.ctx, cat.ID, siamese.ID, admin.ID))
		breeds, err := f.catalog.ListBreeds(f.ctx, cat.ID)
		require.NoError(t, err)
		assert.Len(t, breeds, 1)

		require.NoError(t, f.catalog.DeleteSpecies(f.ctx, rabbit.ID, admin.ID))
		_, err = f.repos.Species.GetByID(f.ctx, rabbit.ID)
		assert.ErrorIs(t, err, domain.ErrSpeciesNotFound)

		assert.ErrorIs(t, f.catalog.DeleteSpecies(f.ctx, rabbit.ID, admin.ID), domain.ErrSpeciesNotFound)
		assert.ErrorIs(t, f.catalog.DeleteBreed(f.ctx, cat.ID, siamese.ID, admin.ID), domain.ErrBreedNotFound)
	})
}
