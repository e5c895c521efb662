package booking

import (
	"net/http"
	"time"

	"github.com/DokPlay/ShareIt/internal/pkg/apperror"
)

// Not-found is deliberately used where a forbidden would leak existence:
// non-owners approving, third parties reading, owners booking their own item.
var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrUserNotFound     = apperror.New(http.StatusNotFound, "user not found")
	ErrItemNotFound     = apperror.New(http.StatusNotFound, "item not found")
	ErrOwnItem          = apperror.New(http.StatusNotFound, "owner cannot book their own item")
	ErrItemUnavailable  = apperror.New(http.StatusBadRequest, "item is not available for booking")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "end date must be after start date")
	ErrStartTimePast    = apperror.New(http.StatusBadRequest, "start date must not be in the past")
	ErrAlreadyDecided   = apperror.New(http.StatusBadRequest, "booking status is already set")
	ErrTimeConflict     = apperror.New(http.StatusConflict, "booking dates overlap an existing booking")
	ErrUnknownState     = apperror.New(http.StatusBadRequest, "unknown booking state")
)

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	// StatusCanceled is part of the status domain but no operation of this
	// engine produces it.
	StatusCanceled Status = "CANCELED"
)

// State classifies bookings for list queries, either by temporal relation
// to now or by status.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT" // start <= now < end
	StatePast     State = "PAST"    // end < now
	StateFuture   State = "FUTURE"  // start > now
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// Booking represents a reservation of an item for a half-open [start, end)
// interval. Item and booker names are projections resolved on read.
type Booking struct {
	ID          string
	ItemID      string
	ItemName    string
	ItemOwnerID string
	BookerID    string
	BookerName  string
	Start       time.Time
	End         time.Time
	Status      Status
	CreatedAt   time.Time
}

// Filter scopes a list query. Exactly one of BookerID / OwnerID is set.
type Filter struct {
	BookerID string
	OwnerID  string
	State    State
	Now      time.Time // instant the temporal states are evaluated against
	From     int       // zero-based row offset
	Size     int
}
