// Package varz keeps the runtime-state snapshot that lifecycle commands are
// verified against. The snapshot is filled from component status broadcasts
// and is eventually consistent with the control plane.
package varz

import (
	"context"
	"sync"
	"time"

	"github.com/fivetwenty-io/capi-admin/pkg/capi"
)

// AppStatus is the last observed runtime state of an application.
type AppStatus struct {
	State     string    `json:"state"      yaml:"state"`
	Instances int       `json:"instances"  yaml:"instances"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Store is a concurrency-safe snapshot keyed by application name. It
// implements capi.StatusSource.
type Store struct {
	mu   sync.RWMutex
	apps map[capi.AppKey]AppStatus
	now  func() time.Time
}

// NewStore creates an empty snapshot.
func NewStore() *Store {
	return &Store{
		apps: make(map[capi.AppKey]AppStatus),
		now:  time.Now,
	}
}

// Update records the observed state of an application.
func (s *Store) Update(key capi.AppKey, state string, instances int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.apps[key] = AppStatus{
		State:     state,
		Instances: instances,
		UpdatedAt: s.now(),
	}
}

// Remove forgets an application.
func (s *Store) Remove(key capi.AppKey) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.apps, key)
}

// Get returns the last observed status of an application.
func (s *Store) Get(key capi.AppKey) (AppStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status, ok := s.apps[key]

	return status, ok
}

// Snapshot returns a copy of every observed status.
func (s *Store) Snapshot() map[capi.AppKey]AppStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[capi.AppKey]AppStatus, len(s.apps))
	for key, status := range s.apps {
		out[key] = status
	}

	return out
}

// ApplicationState implements capi.StatusSource.
func (s *Store) ApplicationState(ctx context.Context, key capi.AppKey) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	status, ok := s.Get(key)

	return status.State, ok, nil
}
