package http

import (
	"time"

	"github.com/DokPlay/ShareIt/internal/booking"
	"github.com/DokPlay/ShareIt/internal/item"
)

// ItemTag is the minimal item projection embedded in other responses.
type ItemTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ItemResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	RequestID   *string   `json:"requestId,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewItemResponse(it *item.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		OwnerID:     it.OwnerID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		RequestID:   it.RequestID,
		CreatedAt:   it.CreatedAt,
	}
}

// BookingShort is the owner-facing last/next booking annotation.
type BookingShort struct {
	ID       string    `json:"id"`
	BookerID string    `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

func newBookingShort(b *booking.Booking) *BookingShort {
	if b == nil {
		return nil
	}
	return &BookingShort{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    b.Start,
		End:      b.End,
	}
}

type CommentResponse struct {
	ID         string    `json:"id"`
	AuthorName string    `json:"authorName"`
	Text       string    `json:"text"`
	Created    time.Time `json:"created"`
}

func NewCommentResponse(cm *item.Comment) CommentResponse {
	return CommentResponse{
		ID:         cm.ID,
		AuthorName: cm.AuthorName,
		Text:       cm.Text,
		Created:    cm.Created,
	}
}

type ItemDetailsResponse struct {
	ItemResponse
	Comments    []CommentResponse `json:"comments"`
	LastBooking *BookingShort     `json:"lastBooking,omitempty"`
	NextBooking *BookingShort     `json:"nextBooking,omitempty"`
}

func NewItemDetailsResponse(d *item.Details) ItemDetailsResponse {
	comments := make([]CommentResponse, len(d.Comments))
	for i, cm := range d.Comments {
		comments[i] = NewCommentResponse(cm)
	}
	return ItemDetailsResponse{
		ItemResponse: NewItemResponse(&d.Item),
		Comments:     comments,
		LastBooking:  newBookingShort(d.LastBooking),
		NextBooking:  newBookingShort(d.NextBooking),
	}
}

type CreateItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Available   *bool   `json:"available" binding:"required"`
	RequestID   *string `json:"requestId" binding:"omitempty,uuid"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}
