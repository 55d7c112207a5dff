package session

import "github.com/skillsmatch/go-skillsmatch/users"

// State is the session surface exposed to a UI layer. Authenticated is
// true if and only if a credential is held that the backend has not yet
// rejected; Loading covers the transient authenticating/refreshing
// phases of Bootstrap and Login.
type State struct {
	Authenticated bool
	Loading       bool
	User          *users.User
}
