package api

import "clouddrive/internal/domain"

// Envelope carries the success flag and human-readable message every
// backend response starts with. Response types embed it and expose it
// through the unexported result interface.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (e *Envelope) envelope() *Envelope { return e }

// AuthResult is returned by login, register, activate and the password
// reset endpoints. Token and User are only populated on login.
type AuthResult struct {
	Envelope
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// ProfileResult is returned by the profile endpoint.
type ProfileResult struct {
	Envelope
	User *domain.User `json:"user,omitempty"`
}

// ListResult is one folder listing: the entries plus the ordered
// ancestor chain from root down to the listed folder.
type ListResult struct {
	Envelope
	Entries []domain.Entry       `json:"files"`
	Path    []domain.PathSegment `json:"path"`
}

// EntryResult wraps endpoints that return a single created or updated
// entry.
type EntryResult struct {
	Envelope
	Entry *domain.Entry `json:"data,omitempty"`
}

// UploadResult is returned by the multipart upload endpoint.
type UploadResult struct {
	Envelope
	Entry *domain.Entry `json:"file,omitempty"`
}

// LinkResult carries a transient signed download URL.
type LinkResult struct {
	Envelope
	URL string `json:"url,omitempty"`
}
