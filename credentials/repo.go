package credentials

import (
	"errors"

	"github.com/skillsmatch/go-skillsmatch/users"
)

// ErrNotFound is returned when no credential or cached user is persisted.
var ErrNotFound = errors.New("not found")

// Repo persists the token pair and the last-known user profile across
// process restarts. Implementations must be safe for concurrent use; the
// session manager serialises credential replacement around refresh, but
// reads may come from any goroutine.
type Repo interface {
	Get() (*Credential, error)
	Put(*Credential) error
	Delete() error

	GetUser() (*users.User, error)
	PutUser(*users.User) error
	DeleteUser() error
}
