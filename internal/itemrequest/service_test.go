package itemrequest

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DokPlay/ShareIt/internal/user"
)

type fakeRepo struct {
	requests []*ItemRequest
	replies  []*Reply
	nextID   int
}

func (r *fakeRepo) Create(_ context.Context, req *ItemRequest) error {
	r.nextID++
	req.ID = fmt.Sprintf("request-%d", r.nextID)
	req.Created = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(r.nextID) * time.Minute)
	stored := *req
	r.requests = append(r.requests, &stored)
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*ItemRequest, error) {
	for _, req := range r.requests {
		if req.ID == id {
			copied := *req
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) ListByRequestor(_ context.Context, requestorID string) ([]*ItemRequest, error) {
	return r.list(func(req *ItemRequest) bool { return req.RequestorID == requestorID }, 0, 0), nil
}

func (r *fakeRepo) ListOthers(_ context.Context, requestorID string, from, size int) ([]*ItemRequest, error) {
	return r.list(func(req *ItemRequest) bool { return req.RequestorID != requestorID }, from, size), nil
}

func (r *fakeRepo) list(match func(*ItemRequest) bool, from, size int) []*ItemRequest {
	var out []*ItemRequest
	for _, req := range r.requests {
		if match(req) {
			copied := *req
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Created.After(out[j].Created) })

	if size > 0 {
		if from >= len(out) {
			return nil
		}
		if from+size > len(out) {
			size = len(out) - from
		}
		out = out[from : from+size]
	}
	return out
}

func (r *fakeRepo) ListReplies(_ context.Context, requestIDs []string) ([]*Reply, error) {
	ids := make(map[string]bool, len(requestIDs))
	for _, id := range requestIDs {
		ids[id] = true
	}
	var out []*Reply
	for _, rep := range r.replies {
		if ids[rep.RequestID] {
			out = append(out, rep)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]bool
}

func (r *fakeUserRepo) Create(_ context.Context, _ *user.User) error { return nil }

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	if !r.users[id] {
		return nil, user.ErrNotFound
	}
	return &user.User{ID: id}, nil
}

func (r *fakeUserRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*user.User, error) { return nil, nil }
func (r *fakeUserRepo) Update(_ context.Context, _ *user.User) error { return nil }
func (r *fakeUserRepo) Delete(_ context.Context, _ string) error     { return nil }

func newTestService() (Service, *fakeRepo) {
	repo := &fakeRepo{}
	users := &fakeUserRepo{users: map[string]bool{"user-1": true, "user-2": true}}
	return NewService(repo, users), repo
}

func TestService_Create(t *testing.T) {
	t.Run("Creates Request", func(t *testing.T) {
		svc, _ := newTestService()

		req, err := svc.Create(context.Background(), "user-1", "need a drill")
		require.NoError(t, err)
		assert.NotEmpty(t, req.ID)
		assert.Equal(t, "user-1", req.RequestorID)
		assert.False(t, req.Created.IsZero())
	})

	t.Run("Blank Description", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Create(context.Background(), "user-1", "   ")
		assert.ErrorIs(t, err, ErrDescriptionRequired)
	})

	t.Run("Unknown Requestor", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Create(context.Background(), "ghost", "need a drill")
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestService_ListOwn(t *testing.T) {
	t.Run("Own Requests With Replies Newest First", func(t *testing.T) {
		svc, repo := newTestService()

		first, err := svc.Create(context.Background(), "user-1", "need a drill")
		require.NoError(t, err)
		second, err := svc.Create(context.Background(), "user-1", "need a ladder")
		require.NoError(t, err)
		_, err = svc.Create(context.Background(), "user-2", "need a tent")
		require.NoError(t, err)

		repo.replies = append(repo.replies, &Reply{
			ID: "item-1", RequestID: first.ID, Name: "drill", OwnerID: "user-2",
		})

		details, err := svc.ListOwn(context.Background(), "user-1")
		require.NoError(t, err)
		require.Len(t, details, 2)

		assert.Equal(t, second.ID, details[0].ID)
		assert.Empty(t, details[0].Items)
		assert.Equal(t, first.ID, details[1].ID)
		require.Len(t, details[1].Items, 1)
		assert.Equal(t, "drill", details[1].Items[0].Name)
	})

	t.Run("No Requests", func(t *testing.T) {
		svc, _ := newTestService()

		details, err := svc.ListOwn(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Empty(t, details)
	})

	t.Run("Unknown User", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.ListOwn(context.Background(), "ghost")
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestService_ListOthers(t *testing.T) {
	t.Run("Excludes Own Requests", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Create(context.Background(), "user-1", "need a drill")
		require.NoError(t, err)
		other, err := svc.Create(context.Background(), "user-2", "need a tent")
		require.NoError(t, err)

		details, err := svc.ListOthers(context.Background(), "user-1", 0, 10)
		require.NoError(t, err)
		require.Len(t, details, 1)
		assert.Equal(t, other.ID, details[0].ID)
	})

	t.Run("Pagination", func(t *testing.T) {
		svc, _ := newTestService()

		for i := 0; i < 5; i++ {
			_, err := svc.Create(context.Background(), "user-2", fmt.Sprintf("request %d", i))
			require.NoError(t, err)
		}

		details, err := svc.ListOthers(context.Background(), "user-1", 1, 2)
		require.NoError(t, err)
		assert.Len(t, details, 2)
	})
}

func TestService_GetByID(t *testing.T) {
	t.Run("Any Known User Can Read", func(t *testing.T) {
		svc, repo := newTestService()

		req, err := svc.Create(context.Background(), "user-1", "need a drill")
		require.NoError(t, err)
		repo.replies = append(repo.replies, &Reply{
			ID: "item-1", RequestID: req.ID, Name: "drill", OwnerID: "user-2",
		})

		d, err := svc.GetByID(context.Background(), "user-2", req.ID)
		require.NoError(t, err)
		assert.Equal(t, req.ID, d.ID)
		require.Len(t, d.Items, 1)
	})

	t.Run("Unknown Request", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.GetByID(context.Background(), "user-1", "no-such-request")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Unknown Requester", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.GetByID(context.Background(), "ghost", "request-1")
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}
