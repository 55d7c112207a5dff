package fakecredentialrepo

import (
	"sync"

	"github.com/skillsmatch/go-skillsmatch/credentials"
	"github.com/skillsmatch/go-skillsmatch/users"
)

var _ credentials.Repo = (*FakeCredentialRepo)(nil)

// FakeCredentialRepo is an in-memory credentials.Repo for tests.
type FakeCredentialRepo struct {
	lock       sync.RWMutex
	credential *credentials.Credential
	user       *users.User
}

func NewFakeCredentialRepo() *FakeCredentialRepo {
	return &FakeCredentialRepo{}
}

func (r *FakeCredentialRepo) Get() (*credentials.Credential, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if r.credential == nil {
		return nil, credentials.ErrNotFound
	}
	cred := *r.credential
	return &cred, nil
}

func (r *FakeCredentialRepo) Put(cred *credentials.Credential) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	copied := *cred
	r.credential = &copied
	return nil
}

func (r *FakeCredentialRepo) Delete() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.credential = nil
	return nil
}

func (r *FakeCredentialRepo) GetUser() (*users.User, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if r.user == nil {
		return nil, credentials.ErrNotFound
	}
	user := *r.user
	return &user, nil
}

func (r *FakeCredentialRepo) PutUser(user *users.User) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	copied := *user
	r.user = &copied
	return nil
}

func (r *FakeCredentialRepo) DeleteUser() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.user = nil
	return nil
}
