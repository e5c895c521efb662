package user

import (
	"net/http"
	"time"

	"github.com/DokPlay/ShareIt/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed = apperror.New(http.StatusConflict, "email already used")
	ErrNameRequired     = apperror.New(http.StatusBadRequest, "user name must not be blank")
	ErrEmailRequired    = apperror.New(http.StatusBadRequest, "user email must not be blank")
	ErrEmailInvalid     = apperror.New(http.StatusBadRequest, "user email is malformed")
)

// User represents a registered member who can own items and book them.
type User struct {
	ID        string // UUID
	Name      string
	Email     string
	CreatedAt time.Time
}
