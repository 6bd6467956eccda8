// Package models defines the client-side data model: users, trips and the
// patch types used for partial updates. The wire representation is plain
// JSON as stored by the generic resource server, so every field keeps its
// original JSON name.
package models

import (
	"strconv"
	"time"
)

// now is a test seam for time-derived identifiers and timestamps.
var now = time.Now

// NewID generates an opaque string identifier derived from the current time
// in milliseconds. Not globally unique: two records created in the same
// millisecond collide. That is the contract the rest of the system was built
// against, so it stays.
func NewID() string {
	return strconv.FormatInt(now().UnixMilli(), 10)
}

// Timestamp returns the current time in the wire format used for createdAt.
func Timestamp() string {
	return now().UTC().Format(time.RFC3339)
}

// User is a registered account as stored on the resource server.
// The password travels and is stored in plaintext; nothing in this client
// hashes it. Session copies must have the field cleared (see Stripped).
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	FullName  string `json:"fullName"`
	Avatar    string `json:"avatar,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// Stripped returns a copy of the user with the password removed. This is the
// only form that may be kept as the current session or persisted locally.
func (u User) Stripped() User {
	u.Password = ""
	return u
}

// ProfileUpdate is a partial update of the current user's profile. Nil fields
// are left untouched by Apply.
type ProfileUpdate struct {
	Username *string
	Email    *string
	Password *string
	FullName *string
	Avatar   *string
}

// Apply merges the update over u and returns the result.
func (p ProfileUpdate) Apply(u User) User {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	return u
}
