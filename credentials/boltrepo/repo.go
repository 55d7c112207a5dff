// Package boltrepo provides a BoltDB-backed credentials.Repo, giving the
// token pair and cached profile a home across process restarts.
package boltrepo

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/skillsmatch/go-skillsmatch/credentials"
	"github.com/skillsmatch/go-skillsmatch/users"
	"go.etcd.io/bbolt"
)

const sessionBucket = "session"

var (
	credentialKey = []byte("credential")
	userKey       = []byte("user")
)

var _ credentials.Repo = (*Repo)(nil)

// Repo stores the credential and cached user profile in a single BoltDB
// bucket under fixed keys.
type Repo struct {
	db *bbolt.DB
}

// Open opens (creating if necessary) the store at the provided path.
func Open(path string) (*Repo, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("[boltrepo.Open] storage path is required")
	}

	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "[boltrepo.Open] open storage db")
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(sessionBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "[boltrepo.Open] create session bucket")
	}

	return &Repo{db: db}, nil
}

// Close closes the underlying database.
func (r *Repo) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repo) Get() (*credentials.Credential, error) {
	var cred credentials.Credential
	if err := r.get(credentialKey, &cred); err != nil {
		return nil, err
	}
	return &cred, nil
}

func (r *Repo) Put(cred *credentials.Credential) error {
	return r.put(credentialKey, cred)
}

func (r *Repo) Delete() error {
	return r.delete(credentialKey)
}

func (r *Repo) GetUser() (*users.User, error) {
	var user users.User
	if err := r.get(userKey, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repo) PutUser(user *users.User) error {
	return r.put(userKey, user)
}

func (r *Repo) DeleteUser() error {
	return r.delete(userKey)
}

func (r *Repo) get(key []byte, out any) error {
	return r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return errors.New("session bucket is missing")
		}
		payload := bucket.Get(key)
		if payload == nil {
			return credentials.ErrNotFound
		}
		return json.Unmarshal(payload, out)
	})
}

func (r *Repo) put(key []byte, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "[boltrepo.put] marshal")
	}
	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return errors.New("session bucket is missing")
		}
		return bucket.Put(key, payload)
	})
}

func (r *Repo) delete(key []byte) error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return errors.New("session bucket is missing")
		}
		return bucket.Delete(key)
	})
}
