package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DokPlay/ShareIt/internal/identity"
	"github.com/DokPlay/ShareIt/internal/itemrequest"
	"github.com/DokPlay/ShareIt/internal/pkg/request"
	"github.com/DokPlay/ShareIt/internal/pkg/response"
)

type Handler struct {
	service itemrequest.Service
}

func NewHandler(service itemrequest.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateItemRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req, err := h.service.Create(c.Request.Context(), identity.SharerID(c), body.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewCreatedResponse(req))
}

// ListOwn lists the acting user's requests together with the items
// answering them.
func (h *Handler) ListOwn(c *gin.Context) {
	details, err := h.service.ListOwn(c.Request.Context(), identity.SharerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponses(details))
}

func (h *Handler) ListOthers(c *gin.Context) {
	var params request.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}
	params = params.Normalized()

	details, err := h.service.ListOthers(c.Request.Context(), identity.SharerID(c), params.From, params.Size)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponses(details))
}

func (h *Handler) Get(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), identity.SharerID(c), params.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemRequestResponse(d))
}

func toResponses(details []*itemrequest.Details) []ItemRequestResponse {
	out := make([]ItemRequestResponse, len(details))
	for i, d := range details {
		out[i] = NewItemRequestResponse(d)
	}
	return out
}
