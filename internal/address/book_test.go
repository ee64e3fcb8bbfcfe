package address_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thangamari27/zenmart/internal/address"
	"github.com/thangamari27/zenmart/internal/models"
	"github.com/thangamari27/zenmart/internal/storage"
)

func testAddress(name string) models.Address {
	return models.Address{
		Name:    name,
		Street:  "12 MG Road",
		City:    "Chennai",
		State:   "TN",
		ZipCode: "600001",
		Country: "India",
	}
}

func TestSave_FirstAddressBecomesDefaultAndSelected(t *testing.T) {
	book := address.NewBook("user-1", storage.NewMemoryStore())

	first, err := book.Save(testAddress("Home"))
	assert.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.True(t, first.IsDefault)

	second, err := book.Save(testAddress("Office"))
	assert.NoError(t, err)
	assert.False(t, second.IsDefault)

	selected := book.Selected()
	assert.NotNil(t, selected)
	assert.Equal(t, first.ID, selected.ID)
	assert.Len(t, book.List(), 2)
}

func TestSave_IncompleteAddress(t *testing.T) {
	book := address.NewBook("user-1", storage.NewMemoryStore())

	addr := testAddress("Home")
	addr.City = ""
	_, err := book.Save(addr)
	assert.ErrorIs(t, err, address.ErrValidation)
	assert.Empty(t, book.List())
}

func TestSetDefault_ExactlyOneDefault(t *testing.T) {
	book := address.NewBook("user-1", storage.NewMemoryStore())

	first, err := book.Save(testAddress("Home"))
	assert.NoError(t, err)
	second, err := book.Save(testAddress("Office"))
	assert.NoError(t, err)

	assert.NoError(t, book.SetDefault(second.ID))

	defaults := 0
	for _, a := range book.List() {
		if a.IsDefault {
			defaults++
			assert.Equal(t, second.ID, a.ID)
		}
	}
	assert.Equal(t, 1, defaults)
	assert.Equal(t, second.ID, book.Selected().ID)
	_ = first

	assert.ErrorIs(t, book.SetDefault("missing"), address.ErrNotFound)
}

func TestUpdate_RefreshesSelection(t *testing.T) {
	book := address.NewBook("user-1", storage.NewMemoryStore())

	saved, err := book.Save(testAddress("Home"))
	assert.NoError(t, err)

	updated := testAddress("Home Sweet Home")
	assert.NoError(t, book.Update(saved.ID, updated))

	selected := book.Selected()
	assert.Equal(t, "Home Sweet Home", selected.Name)
	// Updating never flips the default flag.
	assert.True(t, book.List()[0].IsDefault)

	assert.ErrorIs(t, book.Update("missing", updated), address.ErrNotFound)
}

func TestDelete_ReselectsDefaultThenFirst(t *testing.T) {
	book := address.NewBook("user-1", storage.NewMemoryStore())

	first, err := book.Save(testAddress("Home"))
	assert.NoError(t, err)
	second, err := book.Save(testAddress("Office"))
	assert.NoError(t, err)
	third, err := book.Save(testAddress("Parents"))
	assert.NoError(t, err)

	// Select a non-default address, then delete it: the selection falls
	// back to the default.
	assert.NoError(t, book.Select(second.ID))
	assert.NoError(t, book.Delete(second.ID))
	assert.Equal(t, first.ID, book.Selected().ID)

	// Delete the default while it is selected: falls back to the first
	// remaining address.
	assert.NoError(t, book.Delete(first.ID))
	assert.Equal(t, third.ID, book.Selected().ID)

	// Deleting the last address clears the selection.
	assert.NoError(t, book.Delete(third.ID))
	assert.Nil(t, book.Selected())
}

func TestBook_ScopedByOwner(t *testing.T) {
	st := storage.NewMemoryStore()

	mine := address.NewBook("user-1", st)
	theirs := address.NewBook("user-2", st)

	_, err := mine.Save(testAddress("Home"))
	assert.NoError(t, err)

	assert.Empty(t, theirs.List())
	_, err = theirs.Save(testAddress("Flat"))
	assert.NoError(t, err)

	assert.Len(t, mine.List(), 1)
	assert.Len(t, theirs.List(), 1)
	assert.Equal(t, "Home", mine.List()[0].Name)
}
