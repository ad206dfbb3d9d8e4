package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clouddrive/internal/config"
	"clouddrive/internal/domain"
)

func newDashboard() *Dashboard {
	return NewDashboard(config.DefaultConfig())
}

func folder(id, name string) domain.Entry {
	return domain.Entry{ID: id, Name: name, Kind: domain.KindFolder}
}

func file(id, name string) domain.Entry {
	return domain.Entry{ID: id, Name: name, Kind: domain.KindFile}
}

func TestApplyListingInstallsEntriesAndPath(t *testing.T) {
	dashboard := newDashboard()
	seq := dashboard.BeginFetch("f1")
	assert.Equal(t, StatusLoading, dashboard.Status)

	path := []domain.PathSegment{{ID: "f1", Name: "Docs"}}
	ok := dashboard.ApplyListing(seq, "f1", []domain.Entry{file("a", "a.txt")}, path)

	require.True(t, ok)
	assert.Equal(t, StatusLoaded, dashboard.Status)
	assert.Equal(t, "f1", dashboard.FolderID)
	assert.Equal(t, path, dashboard.Path)
	assert.Equal(t, "f1", dashboard.Path[len(dashboard.Path)-1].ID)
}

func TestStaleListingIsDropped(t *testing.T) {
	dashboard := newDashboard()
	first := dashboard.BeginFetch("slow")
	second := dashboard.BeginFetch("fast")

	ok := dashboard.ApplyListing(second, "fast", []domain.Entry{file("x", "x.txt")},
		[]domain.PathSegment{{ID: "fast", Name: "Fast"}})
	require.True(t, ok)

	ok = dashboard.ApplyListing(first, "slow", []domain.Entry{file("y", "y.txt")},
		[]domain.PathSegment{{ID: "slow", Name: "Slow"}})
	assert.False(t, ok, "a response for a superseded fetch must not land")

	assert.Equal(t, "fast", dashboard.FolderID)
	require.Len(t, dashboard.Entries, 1)
	assert.Equal(t, "x", dashboard.Entries[0].ID)
	assert.Equal(t, "fast", dashboard.Path[0].ID)
}

func TestStaleErrorIsDropped(t *testing.T) {
	dashboard := newDashboard()
	first := dashboard.BeginFetch("a")
	second := dashboard.BeginFetch("b")

	assert.False(t, dashboard.ApplyError(first, "timeout"))
	assert.Equal(t, StatusLoading, dashboard.Status)

	assert.True(t, dashboard.ApplyError(second, "not found"))
	assert.Equal(t, StatusFailed, dashboard.Status)
	assert.Equal(t, "not found", dashboard.ErrorMsg)
}

func TestRootHasEmptyPath(t *testing.T) {
	dashboard := newDashboard()
	seq := dashboard.BeginFetch("")
	require.True(t, dashboard.ApplyListing(seq, "", nil, nil))
	assert.Empty(t, dashboard.Path)

	_, ok := dashboard.ParentFolderID()
	assert.False(t, ok, "root has no parent")
}

func TestParentFolderID(t *testing.T) {
	dashboard := newDashboard()
	seq := dashboard.BeginFetch("sub")
	require.True(t, dashboard.ApplyListing(seq, "sub", nil, []domain.PathSegment{
		{ID: "top", Name: "Top"},
		{ID: "sub", Name: "Sub"},
	}))

	parent, ok := dashboard.ParentFolderID()
	require.True(t, ok)
	assert.Equal(t, "top", parent)

	seq = dashboard.BeginFetch("top")
	require.True(t, dashboard.ApplyListing(seq, "top", nil, []domain.PathSegment{{ID: "top", Name: "Top"}}))
	parent, ok = dashboard.ParentFolderID()
	require.True(t, ok)
	assert.Equal(t, "", parent, "one level deep goes back to root")
}

func TestVisibleFoldersFirstAndFiltered(t *testing.T) {
	dashboard := newDashboard()
	seq := dashboard.BeginFetch("")
	require.True(t, dashboard.ApplyListing(seq, "", []domain.Entry{
		file("1", "zebra.txt"),
		folder("2", "archive"),
		file("3", "Alpha.txt"),
		folder("4", "Backups"),
	}, nil))

	visible := dashboard.Visible()
	require.Len(t, visible, 4)
	assert.Equal(t, "archive", visible[0].Name)
	assert.Equal(t, "Backups", visible[1].Name)
	assert.Equal(t, "Alpha.txt", visible[2].Name)
	assert.Equal(t, "zebra.txt", visible[3].Name)

	dashboard.SetSearch("AL")
	visible = dashboard.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "Alpha.txt", visible[0].Name)

	dashboard.ClearSearch()
	assert.Len(t, dashboard.Visible(), 4)
}

func TestMoveCursorClamps(t *testing.T) {
	dashboard := newDashboard()
	seq := dashboard.BeginFetch("")
	require.True(t, dashboard.ApplyListing(seq, "", []domain.Entry{
		file("1", "a"), file("2", "b"),
	}, nil))

	dashboard.MoveCursor(-5)
	assert.Equal(t, 0, dashboard.Cursor)
	dashboard.MoveCursor(10)
	assert.Equal(t, 1, dashboard.Cursor)
}

func TestToggleViewMode(t *testing.T) {
	dashboard := newDashboard()
	require.Equal(t, domain.ViewGrid, dashboard.Prefs.ViewMode)
	assert.Equal(t, domain.ViewList, dashboard.ToggleViewMode())
	assert.Equal(t, domain.ViewGrid, dashboard.ToggleViewMode())
}

func TestCurrentEntryFollowsFilter(t *testing.T) {
	dashboard := newDashboard()
	seq := dashboard.BeginFetch("")
	require.True(t, dashboard.ApplyListing(seq, "", []domain.Entry{
		folder("d", "docs"), file("n", "notes.txt"),
	}, nil))

	dashboard.SetSearch("notes")
	entry := dashboard.CurrentEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "n", entry.ID)

	dashboard.SetSearch("no match at all")
	assert.Nil(t, dashboard.CurrentEntry())
}
