package item

import (
	"net/http"
	"time"

	"github.com/DokPlay/ShareIt/internal/booking"
	"github.com/DokPlay/ShareIt/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "item not found")
	ErrNameRequired        = apperror.New(http.StatusBadRequest, "item name must not be blank")
	ErrDescriptionRequired = apperror.New(http.StatusBadRequest, "item description must not be blank")
	ErrCommentTextRequired = apperror.New(http.StatusBadRequest, "comment text must not be blank")
	ErrNoCompletedBooking  = apperror.New(http.StatusBadRequest, "commenting requires a completed booking of the item")
)

// Item is a thing its owner offers for loan.
type Item struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	Available   bool
	RequestID   *string // item request this listing answers, if any
	CreatedAt   time.Time
}

// Comment is feedback left by a booker after a completed loan.
type Comment struct {
	ID         string
	ItemID     string
	AuthorID   string
	AuthorName string
	Text       string
	Created    time.Time
}

// Details is an item with its read-side annotations. Last and next
// bookings are filled only when the reader owns the item.
type Details struct {
	Item
	Comments    []*Comment
	LastBooking *booking.Booking
	NextBooking *booking.Booking
}
