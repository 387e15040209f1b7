package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/yashsharma-007/Financeautomation/model"
)

// CurrentUser returns the active session's profile snapshot, or nil when
// nobody is logged in. A corrupted snapshot reads as no session.
func (r *Registry) CurrentUser(ctx context.Context) *model.UserProfile {
	r.sessionMu.Lock()
	defer r.sessionMu.Unlock()
	return r.readSession(ctx)
}

// SetCurrentUser persists the active session snapshot.
func (r *Registry) SetCurrentUser(ctx context.Context, user model.UserProfile) error {
	r.sessionMu.Lock()
	defer r.sessionMu.Unlock()
	return r.writeSession(ctx, user)
}

// ClearCurrentUser removes the active session.
func (r *Registry) ClearCurrentUser(ctx context.Context) error {
	r.sessionMu.Lock()
	defer r.sessionMu.Unlock()
	return r.backend.Delete(ctx, KeyCurrentUser)
}

// UpdateProfile mutates a profile in the user collection and, when the
// updated profile is the active session, rewrites the session snapshot in
// the same call. Profile updates must go through here; updating the user
// store directly lets the snapshot drift from the collection.
func (r *Registry) UpdateProfile(ctx context.Context, id string, apply func(*model.UserProfile)) (bool, error) {
	found, err := r.Users.Update(ctx, id, apply)
	if err != nil || !found {
		return found, err
	}

	r.sessionMu.Lock()
	defer r.sessionMu.Unlock()

	current := r.readSession(ctx)
	if current == nil || current.ID != id {
		return true, nil
	}
	updated := *current
	apply(&updated)
	if err := r.writeSession(ctx, updated); err != nil {
		return true, fmt.Errorf("profile updated but session snapshot stale: %w", err)
	}
	return true, nil
}

func (r *Registry) readSession(ctx context.Context) *model.UserProfile {
	blob, err := r.backend.Get(ctx, KeyCurrentUser)
	if err != nil {
		slog.Warn("failed to read session snapshot", "error", err)
		return nil
	}
	if len(blob) == 0 {
		return nil
	}

	var user model.UserProfile
	if err := json.Unmarshal(blob, &user); err != nil {
		slog.Warn("corrupted session snapshot, treating as logged out", "error", err)
		return nil
	}
	return &user
}

func (r *Registry) writeSession(ctx context.Context, user model.UserProfile) error {
	blob, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session snapshot: %w", err)
	}
	if err := r.backend.Put(ctx, KeyCurrentUser, blob); err != nil {
		return fmt.Errorf("failed to persist session snapshot: %w", err)
	}
	return nil
}
