package engine

import "fmt"

// The engine reports every failure as one of four recoverable error kinds.
// None of them is fatal to the process; callers surface the message and the
// app stays interactive.

// AuthError is a rejected login or registration. The user can retry.
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string {
	return "authentication failed: " + e.Detail
}

// SyncLoadError is a failed collection reload on an identity transition.
// The engine recovers by presenting an empty collection.
type SyncLoadError struct {
	Err error
}

func (e *SyncLoadError) Error() string {
	return fmt.Sprintf("failed to load recipe collection: %v", e.Err)
}

func (e *SyncLoadError) Unwrap() error { return e.Err }

// UploadError is a rejected image transfer. It aborts the enclosing add;
// no partial recipe or image survives.
type UploadError struct {
	StatusCode int
	Detail     string
}

func (e *UploadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("image upload failed (status %d): %s", e.StatusCode, e.Detail)
	}
	return "image upload failed: " + e.Detail
}

// PersistError is a rejected remote add/delete or a failed local storage
// write. On a remote rejection the in-memory collection is untouched; on a
// local write failure the in-memory change stands and the error is reported
// without rollback.
type PersistError struct {
	Detail string
	Err    error
}

func (e *PersistError) Error() string {
	if e.Detail != "" {
		return "failed to persist recipes: " + e.Detail
	}
	return fmt.Sprintf("failed to persist recipes: %v", e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
