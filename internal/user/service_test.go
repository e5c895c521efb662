package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo stores users in memory and enforces the unique email the way
// the SQL repository surfaces the constraint violation.
type fakeRepo struct {
	users  map[string]*User
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[string]*User{}}
}

func (r *fakeRepo) Create(_ context.Context, u *User) error {
	for _, other := range r.users {
		if other.Email == u.Email {
			return ErrEmailAlreadyUsed
		}
	}
	r.nextID++
	u.ID = fmt.Sprintf("user-%d", r.nextID)
	u.CreatedAt = time.Now()
	stored := *u
	r.users[u.ID] = &stored
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

func (r *fakeRepo) List(_ context.Context) ([]*User, error) {
	out := make([]*User, 0, len(r.users))
	for _, u := range r.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, u *User) error {
	if _, ok := r.users[u.ID]; !ok {
		return ErrNotFound
	}
	for id, other := range r.users {
		if id != u.ID && other.Email == u.Email {
			return ErrEmailAlreadyUsed
		}
	}
	stored := *u
	r.users[u.ID] = &stored
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func TestService_Create(t *testing.T) {
	t.Run("Creates User", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		u, err := svc.Create(context.Background(), CreateRequest{Name: "Alice", Email: "alice@example.com"})
		require.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "Alice", u.Name)
	})

	t.Run("Trims Name And Email", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		u, err := svc.Create(context.Background(), CreateRequest{Name: "  Alice  ", Email: " alice@example.com "})
		require.NoError(t, err)
		assert.Equal(t, "Alice", u.Name)
		assert.Equal(t, "alice@example.com", u.Email)
	})

	t.Run("Blank Name", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		_, err := svc.Create(context.Background(), CreateRequest{Name: "   ", Email: "alice@example.com"})
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("Missing Email", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		_, err := svc.Create(context.Background(), CreateRequest{Name: "Alice"})
		assert.ErrorIs(t, err, ErrEmailRequired)
	})

	t.Run("Malformed Email", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		for _, email := range []string{"alice", "@example.com", "alice@"} {
			_, err := svc.Create(context.Background(), CreateRequest{Name: "Alice", Email: email})
			assert.ErrorIs(t, err, ErrEmailInvalid, "email %q should be rejected", email)
		}
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		_, err := svc.Create(context.Background(), CreateRequest{Name: "Alice", Email: "alice@example.com"})
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), CreateRequest{Name: "Alicia", Email: "alice@example.com"})
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})
}

func TestService_Update(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	setup := func(t *testing.T) (Service, *User) {
		svc := NewService(newFakeRepo())
		u, err := svc.Create(context.Background(), CreateRequest{Name: "Alice", Email: "alice@example.com"})
		require.NoError(t, err)
		return svc, u
	}

	t.Run("Partial Update Keeps Other Fields", func(t *testing.T) {
		svc, u := setup(t)

		updated, err := svc.Update(context.Background(), u.ID, UpdateRequest{Name: strPtr("Alicia")})
		require.NoError(t, err)
		assert.Equal(t, "Alicia", updated.Name)
		assert.Equal(t, "alice@example.com", updated.Email)
	})

	t.Run("Update Email", func(t *testing.T) {
		svc, u := setup(t)

		updated, err := svc.Update(context.Background(), u.ID, UpdateRequest{Email: strPtr("new@example.com")})
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", updated.Email)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		svc, u := setup(t)
		_, err := svc.Create(context.Background(), CreateRequest{Name: "Bob", Email: "bob@example.com"})
		require.NoError(t, err)

		_, err = svc.Update(context.Background(), u.ID, UpdateRequest{Email: strPtr("bob@example.com")})
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("Unknown User", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.Update(context.Background(), "no-such-user", UpdateRequest{Name: strPtr("X")})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("Deletes Existing User", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		u, err := svc.Create(context.Background(), CreateRequest{Name: "Alice", Email: "alice@example.com"})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(context.Background(), u.ID))

		_, err = svc.GetByID(context.Background(), u.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Unknown User", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		err := svc.Delete(context.Background(), "no-such-user")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
