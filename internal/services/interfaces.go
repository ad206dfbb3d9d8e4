package services

import (
	"context"

	"clouddrive/internal/api"
)

// Lister, Mutator and Uploader are the slices of the api client the
// dashboard consumes. *api.Client satisfies all three.

type Lister interface {
	List(ctx context.Context, folderID string) (*api.ListResult, error)
}

type Mutator interface {
	CreateFolder(ctx context.Context, name, parentID string) (*api.EntryResult, error)
	Rename(ctx context.Context, entryID, name string) (*api.EntryResult, error)
	Delete(ctx context.Context, entryID string) (*api.EntryResult, error)
	DownloadLink(ctx context.Context, fileID string) (*api.LinkResult, error)
}

type Uploader interface {
	Upload(ctx context.Context, localPath, parentID string) (*api.UploadResult, error)
}

// Gateway is the full client surface. *api.Client satisfies it; the
// mock in this package stands in for tests.
type Gateway interface {
	Lister
	Mutator
	Uploader
	Accounts
}

// Accounts is the auth surface used by the login/register screens and
// the non-interactive subcommands.
type Accounts interface {
	Login(ctx context.Context, email, password string) (*api.AuthResult, error)
	Register(ctx context.Context, data api.RegisterData) (*api.AuthResult, error)
	Activate(ctx context.Context, token string) (*api.AuthResult, error)
	ForgotPassword(ctx context.Context, email string) (*api.AuthResult, error)
	ResetPassword(ctx context.Context, token, password string) (*api.AuthResult, error)
	Profile(ctx context.Context) (*api.ProfileResult, error)
}
