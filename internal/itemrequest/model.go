package itemrequest

import (
	"net/http"
	"time"

	"github.com/DokPlay/ShareIt/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "item request not found")
	ErrDescriptionRequired = apperror.New(http.StatusBadRequest, "request description must not be blank")
)

// ItemRequest captures a user's wish for an item that may be listed later.
type ItemRequest struct {
	ID          string
	RequestorID string
	Description string
	Created     time.Time
}

// Reply is an item listed in answer to a request.
type Reply struct {
	ID        string
	RequestID string
	Name      string
	OwnerID   string
}

// Details is a request together with the items answering it.
type Details struct {
	ItemRequest
	Items []*Reply
}
