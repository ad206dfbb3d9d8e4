package state

import (
	"sort"
	"strings"

	"clouddrive/internal/config"
	"clouddrive/internal/domain"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

type Preferences struct {
	ViewMode domain.ViewMode
	Theme    string
}

// Dashboard tracks one folder view. FolderID "" is the root. Fetches
// are guarded by a monotonic sequence so only the most recently issued
// request may mutate Entries and Path.
type Dashboard struct {
	FolderID string
	Status   Status
	ErrorMsg string

	Entries []domain.Entry
	Path    []domain.PathSegment

	Cursor      int
	SearchQuery string
	Prefs       Preferences

	seq      uint64
	fetching uint64
}

func NewDashboard(cfg config.Config) *Dashboard {
	return &Dashboard{
		FolderID: cfg.LastFolderID,
		Status:   StatusIdle,
		Prefs: Preferences{
			ViewMode: cfg.ViewMode,
			Theme:    cfg.Theme,
		},
	}
}

// BeginFetch marks a fetch for folderID as in flight and returns its
// sequence number. Issuing a new fetch invalidates every earlier one.
func (dashboard *Dashboard) BeginFetch(folderID string) uint64 {
	dashboard.seq++
	dashboard.fetching = dashboard.seq
	dashboard.FolderID = folderID
	dashboard.Status = StatusLoading
	dashboard.ErrorMsg = ""
	return dashboard.seq
}

// ApplyListing installs a fetch result. Stale sequences are dropped and
// leave the dashboard untouched. Entries and Path always change
// together.
func (dashboard *Dashboard) ApplyListing(seq uint64, folderID string, entries []domain.Entry, path []domain.PathSegment) bool {
	if seq != dashboard.fetching {
		return false
	}
	dashboard.FolderID = folderID
	dashboard.Entries = entries
	dashboard.Path = path
	dashboard.Status = StatusLoaded
	dashboard.ErrorMsg = ""
	if dashboard.Cursor >= len(dashboard.Visible()) {
		dashboard.Cursor = 0
	}
	return true
}

func (dashboard *Dashboard) ApplyError(seq uint64, msg string) bool {
	if seq != dashboard.fetching {
		return false
	}
	dashboard.Status = StatusFailed
	dashboard.ErrorMsg = msg
	return true
}

func (dashboard *Dashboard) Loading() bool {
	return dashboard.Status == StatusLoading
}

// ParentFolderID resolves one level up from the current folder using
// the breadcrumb path. From the root it returns "", root.
func (dashboard *Dashboard) ParentFolderID() (string, bool) {
	if dashboard.FolderID == "" {
		return "", false
	}
	if len(dashboard.Path) < 2 {
		return "", true
	}
	return dashboard.Path[len(dashboard.Path)-2].ID, true
}

// Visible filters the fetched entries by the search query, folders
// first, both groups in name order. Search never refetches.
func (dashboard *Dashboard) Visible() []domain.Entry {
	query := strings.ToLower(strings.TrimSpace(dashboard.SearchQuery))
	visible := make([]domain.Entry, 0, len(dashboard.Entries))
	for _, entry := range dashboard.Entries {
		if query != "" && !strings.Contains(strings.ToLower(entry.Name), query) {
			continue
		}
		visible = append(visible, entry)
	}
	sort.SliceStable(visible, func(i, j int) bool {
		if visible[i].IsFolder() != visible[j].IsFolder() {
			return visible[i].IsFolder()
		}
		return strings.ToLower(visible[i].Name) < strings.ToLower(visible[j].Name)
	})
	return visible
}

func (dashboard *Dashboard) CurrentEntry() *domain.Entry {
	visible := dashboard.Visible()
	if len(visible) == 0 || dashboard.Cursor < 0 || dashboard.Cursor >= len(visible) {
		return nil
	}
	entry := visible[dashboard.Cursor]
	return &entry
}

func (dashboard *Dashboard) MoveCursor(delta int) {
	count := len(dashboard.Visible())
	if count == 0 {
		dashboard.Cursor = 0
		return
	}
	dashboard.Cursor += delta
	if dashboard.Cursor < 0 {
		dashboard.Cursor = 0
	}
	if dashboard.Cursor >= count {
		dashboard.Cursor = count - 1
	}
}

func (dashboard *Dashboard) SetSearch(query string) {
	dashboard.SearchQuery = query
	dashboard.Cursor = 0
}

func (dashboard *Dashboard) ClearSearch() {
	dashboard.SearchQuery = ""
	dashboard.Cursor = 0
}

func (dashboard *Dashboard) ToggleViewMode() domain.ViewMode {
	if dashboard.Prefs.ViewMode == domain.ViewGrid {
		dashboard.Prefs.ViewMode = domain.ViewList
	} else {
		dashboard.Prefs.ViewMode = domain.ViewGrid
	}
	return dashboard.Prefs.ViewMode
}

func (dashboard *Dashboard) FolderName() string {
	if len(dashboard.Path) == 0 {
		return "My Drive"
	}
	return dashboard.Path[len(dashboard.Path)-1].Name
}
