package services

import (
	"context"

	"clouddrive/internal/api"
)

// MockGateway implements Lister, Mutator, Uploader and Accounts through
// overridable function fields, recording the calls it receives. A nil
// field answers with a bare success envelope.
type MockGateway struct {
	ListFunc     func(ctx context.Context, folderID string) (*api.ListResult, error)
	UploadFunc   func(ctx context.Context, localPath, parentID string) (*api.UploadResult, error)
	LoginFunc    func(ctx context.Context, email, password string) (*api.AuthResult, error)
	RegisterFunc func(ctx context.Context, data api.RegisterData) (*api.AuthResult, error)

	ListCalls    []string
	UploadCalls  []string
	CreateCalls  []string
	RenameCalls  []string
	DeleteCalls  []string
	LinkCalls    []string
	ProfileCalls int
}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (m *MockGateway) List(ctx context.Context, folderID string) (*api.ListResult, error) {
	m.ListCalls = append(m.ListCalls, folderID)
	if m.ListFunc != nil {
		return m.ListFunc(ctx, folderID)
	}
	return &api.ListResult{Envelope: api.Envelope{Success: true}}, nil
}

func (m *MockGateway) CreateFolder(ctx context.Context, name, parentID string) (*api.EntryResult, error) {
	m.CreateCalls = append(m.CreateCalls, name)
	return &api.EntryResult{Envelope: api.Envelope{Success: true}}, nil
}

func (m *MockGateway) Rename(ctx context.Context, entryID, name string) (*api.EntryResult, error) {
	m.RenameCalls = append(m.RenameCalls, entryID+":"+name)
	return &api.EntryResult{Envelope: api.Envelope{Success: true}}, nil
}

func (m *MockGateway) Delete(ctx context.Context, entryID string) (*api.EntryResult, error) {
	m.DeleteCalls = append(m.DeleteCalls, entryID)
	return &api.EntryResult{Envelope: api.Envelope{Success: true}}, nil
}

func (m *MockGateway) DownloadLink(ctx context.Context, fileID string) (*api.LinkResult, error) {
	m.LinkCalls = append(m.LinkCalls, fileID)
	return &api.LinkResult{Envelope: api.Envelope{Success: true}, URL: "https://example.com/" + fileID}, nil
}

func (m *MockGateway) Upload(ctx context.Context, localPath, parentID string) (*api.UploadResult, error) {
	m.UploadCalls = append(m.UploadCalls, localPath)
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, localPath, parentID)
	}
	return &api.UploadResult{Envelope: api.Envelope{Success: true}}, nil
}

func (m *MockGateway) Login(ctx context.Context, email, password string) (*api.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return &api.AuthResult{Envelope: api.Envelope{Success: true}}, nil
}

func (m *MockGateway) Register(ctx context.Context, data api.RegisterData) (*api.AuthResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, data)
	}
	return &api.AuthResult{Envelope: api.Envelope{Success: true}}, nil
}

func (m *MockGateway) Activate(ctx context.Context, token string) (*api.AuthResult, error) {
	return &api.AuthResult{Envelope: api.Envelope{Success: true}}, nil
}

func (m *MockGateway) ForgotPassword(ctx context.Context, email string) (*api.AuthResult, error) {
	return &api.AuthResult{Envelope: api.Envelope{Success: true}}, nil
}

func (m *MockGateway) ResetPassword(ctx context.Context, token, password string) (*api.AuthResult, error) {
	return &api.AuthResult{Envelope: api.Envelope{Success: true}}, nil
}

func (m *MockGateway) Profile(ctx context.Context) (*api.ProfileResult, error) {
	m.ProfileCalls++
	return &api.ProfileResult{Envelope: api.Envelope{Success: true}}, nil
}
