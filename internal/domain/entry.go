package domain

import "time"

type EntryKind string

const (
	KindFile   EntryKind = "file"
	KindFolder EntryKind = "folder"
)

// Entry is a single file or folder record as the backend returns it.
// Size, MimeType and the storage fields are only ever set on files; a
// ParentID of "" means the entry sits in the root folder.
type Entry struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	Kind       EntryKind `json:"type"`
	Size       int64     `json:"size,omitempty"`
	MimeType   string    `json:"mimeType,omitempty"`
	StorageKey string    `json:"s3Key,omitempty"`
	StorageURL string    `json:"s3Url,omitempty"`
	ParentID   string    `json:"parentId,omitempty"`
	OwnerID    string    `json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (e Entry) IsFolder() bool {
	return e.Kind == KindFolder
}

// PathSegment is one ancestor folder on the path from root to the
// current folder. The backend returns the full ordered chain with every
// listing.
type PathSegment struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// User is the authenticated account profile.
type User struct {
	ID          string    `json:"_id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	IsActivated bool      `json:"isActivated"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (u User) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return u.Email
	case u.LastName == "":
		return u.FirstName
	case u.FirstName == "":
		return u.LastName
	}
	return u.FirstName + " " + u.LastName
}
