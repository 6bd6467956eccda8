// Package session persists small client-side values in a local key/value
// table, the terminal equivalent of a browser's local storage. The only
// populated slot today is the serialized current-user blob.
package session

import "context"

// KeyCurrentUser is the slot holding the password-stripped session user.
const KeyCurrentUser = "currentUser"

// Repository is a string-keyed blob store.
type Repository interface {
	// Get returns the value stored under key, or (nil, nil) when the slot
	// is empty.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the slot. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
