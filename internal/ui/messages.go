package ui

import (
	"clouddrive/internal/api"
	"clouddrive/internal/services"
)

type listResultMsg struct {
	seq      uint64
	folderID string
	result   *api.ListResult
	err      error
}

type loginResultMsg struct {
	result *api.AuthResult
	err    error
}

type registerResultMsg struct {
	result *api.AuthResult
	err    error
}

type forgotResultMsg struct {
	result *api.AuthResult
	err    error
}

type createFolderResultMsg struct {
	result *api.EntryResult
	err    error
}

type renameResultMsg struct {
	result *api.EntryResult
	err    error
}

type deleteResultMsg struct {
	name   string
	result *api.EntryResult
	err    error
}

type downloadLinkMsg struct {
	name   string
	result *api.LinkResult
	err    error
}

type uploadBatchMsg struct {
	result services.BatchResult
}
