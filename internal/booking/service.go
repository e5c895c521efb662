package booking

import (
	"context"
	"time"

	"github.com/DokPlay/ShareIt/internal/pkg/clock"
)

// ItemInfo is the projection of an item the engine needs to validate a
// booking request.
type ItemInfo struct {
	ID        string
	OwnerID   string
	Available bool
}

// ItemCatalog resolves items. Implementations return ErrItemNotFound for
// unknown ids.
type ItemCatalog interface {
	Get(ctx context.Context, id string) (*ItemInfo, error)
}

// UserDirectory resolves user existence.
type UserDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type CreateRequest struct {
	BookerID string
	ItemID   string
	Start    time.Time
	End      time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	Approve(ctx context.Context, ownerID, bookingID string, approved bool) (*Booking, error)
	GetByID(ctx context.Context, requesterID, bookingID string) (*Booking, error)
	ListByBooker(ctx context.Context, requesterID string, state State, from, size int) ([]*Booking, error)
	ListByOwner(ctx context.Context, requesterID string, state State, from, size int) ([]*Booking, error)
}

type service struct {
	repo  Repository
	items ItemCatalog
	users UserDirectory
	clock clock.Clock
}

func NewService(repo Repository, items ItemCatalog, users UserDirectory, clk clock.Clock) Service {
	return &service{
		repo:  repo,
		items: items,
		users: users,
		clock: clk,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	now := s.clock.Now()

	// 1. Validate time range. Start may equal now; start == end is rejected.
	if req.Start.Before(now) {
		return nil, ErrStartTimePast
	}
	if !req.End.After(req.Start) {
		return nil, ErrInvalidTimeRange
	}

	// 2. Booker must exist.
	exists, err := s.users.Exists(ctx, req.BookerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	// 3. Item must exist and be available.
	info, err := s.items.Get(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !info.Available {
		return nil, ErrItemUnavailable
	}

	// 4. Booking one's own item is reported as not-found, so the booking
	// flow never confirms the item belongs to the caller.
	if info.OwnerID == req.BookerID {
		return nil, ErrOwnItem
	}

	// 5. Reject overlapping intervals outright; approval re-checks, and
	// the storage constraint backstops concurrent creates.
	overlap, err := s.repo.HasOverlap(ctx, req.ItemID, req.Start, req.End)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, ErrTimeConflict
	}

	b := &Booking{
		ItemID:   req.ItemID,
		BookerID: req.BookerID,
		Start:    req.Start,
		End:      req.End,
		Status:   StatusWaiting,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	// Re-read for the item and booker projections.
	return s.repo.GetByID(ctx, b.ID)
}

func (s *service) Approve(ctx context.Context, ownerID, bookingID string, approved bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.ItemOwnerID != ownerID {
		// Not forbidden: non-owners must not learn the booking exists.
		return nil, ErrNotFound
	}

	newStatus, err := Decide(b.Status, approved)
	if err != nil {
		return nil, err
	}

	if newStatus == StatusApproved {
		// Approval is the final exclusivity gate for waiting bookings that
		// were created before a competitor was approved.
		overlap, err := s.repo.HasApprovedOverlap(ctx, b.ItemID, b.Start, b.End, b.ID)
		if err != nil {
			return nil, err
		}
		if overlap {
			return nil, ErrTimeConflict
		}
	}

	updated, err := s.repo.UpdateStatus(ctx, b.ID, StatusWaiting, newStatus)
	if err != nil {
		return nil, err
	}
	if !updated {
		// Lost a concurrent decision race: the row left WAITING between
		// our read and the compare-and-swap.
		if _, err := s.repo.GetByID(ctx, b.ID); err != nil {
			return nil, err
		}
		return nil, ErrAlreadyDecided
	}

	return s.repo.GetByID(ctx, b.ID)
}

func (s *service) GetByID(ctx context.Context, requesterID, bookingID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if requesterID != b.BookerID && requesterID != b.ItemOwnerID {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *service) ListByBooker(ctx context.Context, requesterID string, state State, from, size int) ([]*Booking, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, Filter{
		BookerID: requesterID,
		State:    state,
		Now:      s.clock.Now(),
		From:     from,
		Size:     size,
	})
}

func (s *service) ListByOwner(ctx context.Context, requesterID string, state State, from, size int) ([]*Booking, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, Filter{
		OwnerID: requesterID,
		State:   state,
		Now:     s.clock.Now(),
		From:    from,
		Size:    size,
	})
}

func (s *service) requireUser(ctx context.Context, id string) error {
	exists, err := s.users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}
	return nil
}
