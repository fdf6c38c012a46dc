// Package storage is the JSON key/value adapter every persisted piece of
// client state goes through: the user directory, the generation history and
// the session flag.
//
// All operations are total. Failures of the underlying repository (disk
// full, database closed, corrupt JSON) are logged and reported as a false
// result; they never reach the caller as errors, so a broken store degrades
// to "nothing saved" rather than a crash.
//
// There is no atomicity across keys or across a read-modify-write cycle.
// The last writer wins.
package storage

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/imagenstudio/internal/client/repositories/kv"
	"github.com/dmitrijs2005/imagenstudio/internal/logging"
)

// Wiper removes every application key in one step.
type Wiper interface {
	Wipe(ctx context.Context) error
}

type Store struct {
	repo  kv.Repository
	wiper Wiper
	log   logging.Logger
}

// New returns a Store over repo. wiper may be nil, in which case Wipe falls
// back to clearing the repository.
func New(repo kv.Repository, wiper Wiper, log logging.Logger) *Store {
	return &Store{repo: repo, wiper: wiper, log: log.With("component", "storage")}
}

// Read decodes the JSON value under key into dst. It reports false when the
// key is absent or unreadable. A value that no longer decodes is removed so
// the next read starts from the default.
func (s *Store) Read(ctx context.Context, key string, dst any) bool {
	raw, err := s.repo.Get(ctx, key)
	if err != nil {
		s.log.Error(ctx, "failed to read key", "key", key, "error", err)
		return false
	}
	if raw == nil {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.log.Error(ctx, "failed to parse stored value, dropping it", "key", key, "error", err)
		if err := s.repo.Delete(ctx, key); err != nil {
			s.log.Error(ctx, "failed to drop corrupt key", "key", key, "error", err)
		}
		return false
	}
	return true
}

func (s *Store) Write(ctx context.Context, key string, v any) bool {
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Error(ctx, "failed to encode value", "key", key, "error", err)
		return false
	}
	if err := s.repo.Set(ctx, key, raw); err != nil {
		s.log.Error(ctx, "failed to write key", "key", key, "error", err)
		return false
	}
	return true
}

func (s *Store) Remove(ctx context.Context, key string) bool {
	if err := s.repo.Delete(ctx, key); err != nil {
		s.log.Error(ctx, "failed to remove key", "key", key, "error", err)
		return false
	}
	return true
}

// Wipe clears all stored state: users, history and session.
func (s *Store) Wipe(ctx context.Context) bool {
	var err error
	if s.wiper != nil {
		err = s.wiper.Wipe(ctx)
	} else {
		err = s.repo.Clear(ctx)
	}
	if err != nil {
		s.log.Error(ctx, "failed to wipe storage", "error", err)
		return false
	}
	s.log.Info(ctx, "storage wiped")
	return true
}

// KeyValue is the view of Store the repositories depend on.
type KeyValue interface {
	Read(ctx context.Context, key string, dst any) bool
	Write(ctx context.Context, key string, v any) bool
	Remove(ctx context.Context, key string) bool
}

var _ KeyValue = (*Store)(nil)
