package item

import (
	"context"
	"strings"
	"time"

	"github.com/DokPlay/ShareIt/internal/booking"
	"github.com/DokPlay/ShareIt/internal/pkg/clock"
	"github.com/DokPlay/ShareIt/internal/user"
)

type CreateRequest struct {
	Name        string
	Description string
	Available   bool
	RequestID   *string
}

type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

type Service interface {
	Create(ctx context.Context, ownerID string, req CreateRequest) (*Item, error)
	Update(ctx context.Context, ownerID, itemID string, req UpdateRequest) (*Item, error)
	GetByID(ctx context.Context, requesterID, itemID string) (*Details, error)
	ListByOwner(ctx context.Context, ownerID string, from, size int) ([]*Details, error)
	Search(ctx context.Context, requesterID, text string, from, size int) ([]*Item, error)
	AddComment(ctx context.Context, authorID, itemID, text string) (*Comment, error)
}

type service struct {
	repo     Repository
	users    user.Repository
	bookings booking.Repository
	clock    clock.Clock
}

func NewService(repo Repository, users user.Repository, bookings booking.Repository, clk clock.Clock) Service {
	return &service{
		repo:     repo,
		users:    users,
		bookings: bookings,
		clock:    clk,
	}
}

func (s *service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Item, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrDescriptionRequired
	}
	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}

	it := &Item{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		RequestID:   req.RequestID,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Update(ctx context.Context, ownerID, itemID string, req UpdateRequest) (*Item, error) {
	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}

	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	// Non-owners get not-found, not forbidden.
	if it.OwnerID != ownerID {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		it.Name = *req.Name
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, ErrDescriptionRequired
		}
		it.Description = *req.Description
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) GetByID(ctx context.Context, requesterID, itemID string) (*Details, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}

	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.ListCommentsByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	details := &Details{Item: *it, Comments: comments}

	// Booking info is visible to the owner only.
	if it.OwnerID == requesterID {
		now := s.clock.Now()
		if details.LastBooking, err = s.bookings.LastForItem(ctx, itemID, now); err != nil {
			return nil, err
		}
		if details.NextBooking, err = s.bookings.NextForItem(ctx, itemID, now); err != nil {
			return nil, err
		}
	}

	return details, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID string, from, size int) ([]*Details, error) {
	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListByOwner(ctx, ownerID, from, size)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	itemIDs := make([]string, len(items))
	for i, it := range items {
		itemIDs[i] = it.ID
	}

	comments, err := s.repo.ListCommentsByItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	commentsByItem := make(map[string][]*Comment)
	for _, cm := range comments {
		commentsByItem[cm.ItemID] = append(commentsByItem[cm.ItemID], cm)
	}

	approved, err := s.bookings.ListApprovedForItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	bookingsByItem := make(map[string][]*booking.Booking)
	for _, b := range approved {
		bookingsByItem[b.ItemID] = append(bookingsByItem[b.ItemID], b)
	}

	now := s.clock.Now()
	details := make([]*Details, len(items))
	for i, it := range items {
		d := &Details{Item: *it, Comments: commentsByItem[it.ID]}
		d.LastBooking, d.NextBooking = lastAndNext(bookingsByItem[it.ID], now)
		details[i] = d
	}
	return details, nil
}

// lastAndNext picks the latest-ending booking already started and the
// soonest booking still ahead from one item's approved bookings.
func lastAndNext(bookings []*booking.Booking, now time.Time) (last, next *booking.Booking) {
	for _, b := range bookings {
		switch {
		case b.Start.Before(now):
			if last == nil || b.End.After(last.End) {
				last = b
			}
		case b.Start.After(now):
			if next == nil || b.Start.Before(next.Start) {
				next = b
			}
		}
	}
	return last, next
}

func (s *service) Search(ctx context.Context, requesterID, text string, from, size int) ([]*Item, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}
	// Blank text is an empty result, not an error.
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return s.repo.SearchAvailable(ctx, text, from, size)
}

func (s *service) AddComment(ctx context.Context, authorID, itemID, text string) (*Comment, error) {
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrCommentTextRequired
	}

	completed, err := s.bookings.ExistsCompleted(ctx, itemID, authorID, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if !completed {
		return nil, ErrNoCompletedBooking
	}

	cm := &Comment{
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		Text:       text,
	}
	if err := s.repo.CreateComment(ctx, cm); err != nil {
		return nil, err
	}
	return cm, nil
}

func (s *service) requireUser(ctx context.Context, id string) error {
	exists, err := s.users.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return user.ErrNotFound
	}
	return nil
}
