package app

import (
	"context"
	"errors"

	"github.com/DokPlay/ShareIt/internal/booking"
	"github.com/DokPlay/ShareIt/internal/item"
	"github.com/DokPlay/ShareIt/internal/user"
)

// itemCatalog adapts the item repository to the booking engine's view of
// items, translating not-found into the engine's own sentinel.
type itemCatalog struct {
	items item.Repository
}

func (a *itemCatalog) Get(ctx context.Context, id string) (*booking.ItemInfo, error) {
	it, err := a.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			return nil, booking.ErrItemNotFound
		}
		return nil, err
	}
	return &booking.ItemInfo{
		ID:        it.ID,
		OwnerID:   it.OwnerID,
		Available: it.Available,
	}, nil
}

// userDirectory adapts the user repository to the booking engine.
type userDirectory struct {
	users user.Repository
}

func (a *userDirectory) Exists(ctx context.Context, id string) (bool, error) {
	return a.users.ExistsByID(ctx, id)
}
