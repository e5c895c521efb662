package http

import (
	"time"

	"github.com/DokPlay/ShareIt/internal/booking"
	itemHttp "github.com/DokPlay/ShareIt/internal/item/http"
	"github.com/DokPlay/ShareIt/internal/pkg/request"
	userHttp "github.com/DokPlay/ShareIt/internal/user/http"
)

type CreateBookingRequest struct {
	ItemID string    `json:"itemId" binding:"required,uuid"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// ListBookingsRequest defines query parameters for the list endpoints.
// The state string is validated separately against the closed enum.
type ListBookingsRequest struct {
	request.ListParams
	State string `form:"state,default=ALL"`
}

type BookingResponse struct {
	ID     string           `json:"id"`
	Start  time.Time        `json:"start"`
	End    time.Time        `json:"end"`
	Status string           `json:"status"`
	Item   itemHttp.ItemTag `json:"item"`
	Booker userHttp.UserTag `json:"booker"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: string(b.Status),
		Item:   itemHttp.ItemTag{ID: b.ItemID, Name: b.ItemName},
		Booker: userHttp.UserTag{ID: b.BookerID, Name: b.BookerName},
	}
}
