package http

import (
	"time"

	"github.com/DokPlay/ShareIt/internal/itemrequest"
)

type CreateItemRequestBody struct {
	Description string `json:"description" binding:"required"`
}

type ReplyResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	OwnerID string `json:"ownerId"`
}

type ItemRequestResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Created     time.Time       `json:"created"`
	Items       []ReplyResponse `json:"items"`
}

func NewItemRequestResponse(d *itemrequest.Details) ItemRequestResponse {
	items := make([]ReplyResponse, len(d.Items))
	for i, rep := range d.Items {
		items[i] = ReplyResponse{ID: rep.ID, Name: rep.Name, OwnerID: rep.OwnerID}
	}
	return ItemRequestResponse{
		ID:          d.ID,
		Description: d.Description,
		Created:     d.Created,
		Items:       items,
	}
}

// NewCreatedResponse shapes a freshly created request, which has no
// replies yet.
func NewCreatedResponse(req *itemrequest.ItemRequest) ItemRequestResponse {
	return ItemRequestResponse{
		ID:          req.ID,
		Description: req.Description,
		Created:     req.Created,
		Items:       []ReplyResponse{},
	}
}
