package address

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/thangamari27/zenmart/internal/models"
	"github.com/thangamari27/zenmart/internal/storage"
)

var (
	// ErrNotFound is returned for lookups of a missing address identifier.
	ErrNotFound = errors.New("address not found")
	// ErrValidation is returned for an incomplete address form; no partial
	// state is committed.
	ErrValidation = errors.New("validation failed")
)

// Book manages one owner's saved shipping addresses and the currently
// selected address. Every change is written through to the persistence
// adapter. Exactly one address at a time may be the default.
type Book struct {
	ownerID  string
	storage  storage.Store
	validate *validator.Validate
}

// NewBook creates an address Book for ownerID.
func NewBook(ownerID string, st storage.Store) *Book {
	return &Book{
		ownerID:  ownerID,
		storage:  st,
		validate: validator.New(),
	}
}

func (b *Book) load() []models.Address {
	var all []models.Address
	b.storage.Get(storage.KeyAddresses, &all)
	return all
}

func (b *Book) persist(all []models.Address) {
	b.storage.Set(storage.KeyAddresses, all)
}

// List returns the owner's saved addresses.
func (b *Book) List() []models.Address {
	owned := make([]models.Address, 0)
	for _, a := range b.load() {
		if a.OwnerID == b.ownerID {
			owned = append(owned, a)
		}
	}
	return owned
}

// Selected returns the currently selected address, or nil when none.
func (b *Book) Selected() *models.Address {
	var selected models.Address
	if !b.storage.Get(storage.KeySelectedAddress, &selected) || selected.ID == "" {
		return nil
	}
	return &selected
}

// Save validates and stores a new address. The first address an owner
// saves becomes both the default and the selected address.
func (b *Book) Save(addr models.Address) (*models.Address, error) {
	if err := b.validate.Struct(addr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	addr.ID = uuid.New().String()
	addr.OwnerID = b.ownerID
	addr.IsDefault = len(b.List()) == 0

	all := append(b.load(), addr)
	b.persist(all)

	if addr.IsDefault {
		b.storage.Set(storage.KeySelectedAddress, addr)
	}
	return &addr, nil
}

// Update validates and applies changes to an existing address. The
// selected address is refreshed when it is the one updated.
func (b *Book) Update(id string, updated models.Address) error {
	if err := b.validate.Struct(updated); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	all := b.load()
	found := false
	for i, a := range all {
		if a.ID == id && a.OwnerID == b.ownerID {
			updated.ID = a.ID
			updated.OwnerID = a.OwnerID
			updated.IsDefault = a.IsDefault
			all[i] = updated
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("address with ID %s: %w", id, ErrNotFound)
	}
	b.persist(all)

	if sel := b.Selected(); sel != nil && sel.ID == id {
		b.storage.Set(storage.KeySelectedAddress, updated)
	}
	return nil
}

// Delete removes an address. When the deleted address was selected, the
// selection falls back to the default address, then to the first remaining
// one, then to none.
func (b *Book) Delete(id string) error {
	all := b.load()
	next := make([]models.Address, 0, len(all))
	found := false
	for _, a := range all {
		if a.ID == id && a.OwnerID == b.ownerID {
			found = true
			continue
		}
		next = append(next, a)
	}
	if !found {
		return fmt.Errorf("address with ID %s: %w", id, ErrNotFound)
	}
	b.persist(next)

	if sel := b.Selected(); sel != nil && sel.ID == id {
		owned := b.List()
		var replacement *models.Address
		for i := range owned {
			if owned[i].IsDefault {
				replacement = &owned[i]
				break
			}
		}
		if replacement == nil && len(owned) > 0 {
			replacement = &owned[0]
		}
		if replacement != nil {
			b.storage.Set(storage.KeySelectedAddress, *replacement)
		} else {
			b.storage.Remove(storage.KeySelectedAddress)
		}
	}
	return nil
}

// SetDefault marks the address as the owner's single default and selects
// it. Every other address of the owner loses the default flag.
func (b *Book) SetDefault(id string) error {
	all := b.load()
	var newDefault *models.Address
	for i := range all {
		if all[i].OwnerID != b.ownerID {
			continue
		}
		all[i].IsDefault = all[i].ID == id
		if all[i].IsDefault {
			newDefault = &all[i]
		}
	}
	if newDefault == nil {
		return fmt.Errorf("address with ID %s: %w", id, ErrNotFound)
	}
	b.persist(all)
	b.storage.Set(storage.KeySelectedAddress, *newDefault)
	return nil
}

// Select marks an existing address as the one used at checkout, without
// changing the default.
func (b *Book) Select(id string) error {
	for _, a := range b.List() {
		if a.ID == id {
			b.storage.Set(storage.KeySelectedAddress, a)
			return nil
		}
	}
	return fmt.Errorf("address with ID %s: %w", id, ErrNotFound)
}
