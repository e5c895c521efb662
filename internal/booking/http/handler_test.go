package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DokPlay/ShareIt/internal/booking"
	"github.com/DokPlay/ShareIt/internal/identity"
)

const (
	sharerID = "7b7a4a77-0a7e-4a6e-8f3b-111111111111"
	itemID   = "7b7a4a77-0a7e-4a6e-8f3b-222222222222"
)

// stubService lets each test fix the service outcome without a database.
type stubService struct {
	createFn  func(ctx context.Context, req booking.CreateRequest) (*booking.Booking, error)
	approveFn func(ctx context.Context, ownerID, bookingID string, approved bool) (*booking.Booking, error)
	getFn     func(ctx context.Context, requesterID, bookingID string) (*booking.Booking, error)
	listFn    func(ctx context.Context, requesterID string, state booking.State, from, size int) ([]*booking.Booking, error)
}

func (s *stubService) Create(ctx context.Context, req booking.CreateRequest) (*booking.Booking, error) {
	return s.createFn(ctx, req)
}

func (s *stubService) Approve(ctx context.Context, ownerID, bookingID string, approved bool) (*booking.Booking, error) {
	return s.approveFn(ctx, ownerID, bookingID, approved)
}

func (s *stubService) GetByID(ctx context.Context, requesterID, bookingID string) (*booking.Booking, error) {
	return s.getFn(ctx, requesterID, bookingID)
}

func (s *stubService) ListByBooker(ctx context.Context, requesterID string, state booking.State, from, size int) ([]*booking.Booking, error) {
	return s.listFn(ctx, requesterID, state, from, size)
}

func (s *stubService) ListByOwner(ctx context.Context, requesterID string, state booking.State, from, size int) ([]*booking.Booking, error) {
	return s.listFn(ctx, requesterID, state, from, size)
}

func newTestRouter(svc booking.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group(""), NewHandler(svc), identity.Required())
	return r
}

func executeRequest(r *gin.Engine, method, target, sharer string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if sharer != "" {
		req.Header.Set(identity.Header, sharer)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleBooking() *booking.Booking {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	return &booking.Booking{
		ID:          "booking-1",
		ItemID:      itemID,
		ItemName:    "cordless drill",
		ItemOwnerID: "owner-1",
		BookerID:    sharerID,
		BookerName:  "Alice",
		Start:       start,
		End:         start.Add(2 * time.Hour),
		Status:      booking.StatusWaiting,
	}
}

func TestCreateBooking(t *testing.T) {
	payload := gin.H{
		"itemId": itemID,
		"start":  "2026-03-02T10:00:00Z",
		"end":    "2026-03-02T12:00:00Z",
	}

	t.Run("Created", func(t *testing.T) {
		var gotReq booking.CreateRequest
		svc := &stubService{
			createFn: func(_ context.Context, req booking.CreateRequest) (*booking.Booking, error) {
				gotReq = req
				return sampleBooking(), nil
			},
		}
		r := newTestRouter(svc)

		w := executeRequest(r, "POST", "/bookings", sharerID, payload)
		require.Equal(t, http.StatusCreated, w.Code)

		assert.Equal(t, sharerID, gotReq.BookerID, "booker id should come from the header")
		assert.Equal(t, itemID, gotReq.ItemID)

		var resp BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "booking-1", resp.ID)
		assert.Equal(t, "WAITING", resp.Status)
		assert.Equal(t, "cordless drill", resp.Item.Name)
	})

	t.Run("Missing Sharer Header", func(t *testing.T) {
		r := newTestRouter(&stubService{})

		w := executeRequest(r, "POST", "/bookings", "", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Malformed Sharer Header", func(t *testing.T) {
		r := newTestRouter(&stubService{})

		w := executeRequest(r, "POST", "/bookings", "not-a-uuid", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Invalid Item Id", func(t *testing.T) {
		r := newTestRouter(&stubService{})

		w := executeRequest(r, "POST", "/bookings", sharerID, gin.H{
			"itemId": "42",
			"start":  "2026-03-02T10:00:00Z",
			"end":    "2026-03-02T12:00:00Z",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Time Conflict Maps To 409", func(t *testing.T) {
		svc := &stubService{
			createFn: func(_ context.Context, _ booking.CreateRequest) (*booking.Booking, error) {
				return nil, booking.ErrTimeConflict
			},
		}
		r := newTestRouter(svc)

		w := executeRequest(r, "POST", "/bookings", sharerID, payload)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Own Item Maps To 404", func(t *testing.T) {
		svc := &stubService{
			createFn: func(_ context.Context, _ booking.CreateRequest) (*booking.Booking, error) {
				return nil, booking.ErrOwnItem
			},
		}
		r := newTestRouter(svc)

		w := executeRequest(r, "POST", "/bookings", sharerID, payload)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestApproveBooking(t *testing.T) {
	bookingID := "7b7a4a77-0a7e-4a6e-8f3b-333333333333"

	t.Run("Approved", func(t *testing.T) {
		var gotApproved bool
		svc := &stubService{
			approveFn: func(_ context.Context, ownerID, id string, approved bool) (*booking.Booking, error) {
				gotApproved = approved
				b := sampleBooking()
				b.Status = booking.StatusApproved
				return b, nil
			},
		}
		r := newTestRouter(svc)

		w := executeRequest(r, "PATCH", "/bookings/"+bookingID+"?approved=true", sharerID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, gotApproved)

		var resp BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "APPROVED", resp.Status)
	})

	t.Run("Missing Approved Parameter", func(t *testing.T) {
		r := newTestRouter(&stubService{})

		w := executeRequest(r, "PATCH", "/bookings/"+bookingID, sharerID, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Already Decided Maps To 400", func(t *testing.T) {
		svc := &stubService{
			approveFn: func(_ context.Context, _, _ string, _ bool) (*booking.Booking, error) {
				return nil, booking.ErrAlreadyDecided
			},
		}
		r := newTestRouter(svc)

		w := executeRequest(r, "PATCH", "/bookings/"+bookingID+"?approved=false", sharerID, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetBooking(t *testing.T) {
	bookingID := "7b7a4a77-0a7e-4a6e-8f3b-333333333333"

	t.Run("Found", func(t *testing.T) {
		svc := &stubService{
			getFn: func(_ context.Context, requesterID, id string) (*booking.Booking, error) {
				assert.Equal(t, sharerID, requesterID)
				return sampleBooking(), nil
			},
		}
		r := newTestRouter(svc)

		w := executeRequest(r, "GET", "/bookings/"+bookingID, sharerID, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		svc := &stubService{
			getFn: func(_ context.Context, _, _ string) (*booking.Booking, error) {
				return nil, booking.ErrNotFound
			},
		}
		r := newTestRouter(svc)

		w := executeRequest(r, "GET", "/bookings/"+bookingID, sharerID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListBookings(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		svc := &stubService{
			listFn: func(_ context.Context, requesterID string, state booking.State, from, size int) ([]*booking.Booking, error) {
				assert.Equal(t, booking.StateAll, state)
				assert.Equal(t, 0, from)
				assert.Equal(t, 10, size)
				return []*booking.Booking{sampleBooking()}, nil
			},
		}
		r := newTestRouter(svc)

		w := executeRequest(r, "GET", "/bookings", sharerID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp []BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp, 1)
	})

	t.Run("Explicit State And Paging", func(t *testing.T) {
		svc := &stubService{
			listFn: func(_ context.Context, _ string, state booking.State, from, size int) ([]*booking.Booking, error) {
				assert.Equal(t, booking.StateFuture, state)
				assert.Equal(t, 2, from)
				assert.Equal(t, 5, size)
				return nil, nil
			},
		}
		r := newTestRouter(svc)

		w := executeRequest(r, "GET", "/bookings/owner?state=FUTURE&from=2&size=5", sharerID, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Unknown State", func(t *testing.T) {
		r := newTestRouter(&stubService{})

		w := executeRequest(r, "GET", "/bookings?state=SOMETIMES", sharerID, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Empty List Serializes As Array", func(t *testing.T) {
		svc := &stubService{
			listFn: func(_ context.Context, _ string, _ booking.State, _, _ int) ([]*booking.Booking, error) {
				return nil, nil
			},
		}
		r := newTestRouter(svc)

		w := executeRequest(r, "GET", "/bookings", sharerID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})
}
