package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := New(Config{BaseURL: server.URL})
	return client, server
}

func TestBearerAndRequestIDHeaders(t *testing.T) {
	var gotAuth, gotRequestID string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	})
	defer server.Close()

	client.SetToken("secret-token")
	_, err := client.List(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	})
	defer server.Close()

	_, err := client.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestListRootOmitsParentID(t *testing.T) {
	var gotQuery string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/api/files", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"files":   []map[string]any{{"_id": "a", "name": "a.txt", "type": "file"}},
			"path":    []map[string]any{},
		})
	})
	defer server.Close()

	result, err := client.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, gotQuery, "root listing must not carry a parentId parameter")
	require.True(t, result.Success)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "a", result.Entries[0].ID)
}

func TestListFolderSendsParentID(t *testing.T) {
	var gotParent string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotParent = r.URL.Query().Get("parentId")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"files":   []map[string]any{},
			"path":    []map[string]any{{"_id": "f9", "name": "Docs"}},
		})
	})
	defer server.Close()

	result, err := client.List(context.Background(), "f9")
	require.NoError(t, err)
	assert.Equal(t, "f9", gotParent)
	require.Len(t, result.Path, 1)
	assert.Equal(t, "Docs", result.Path[0].Name)
}

func TestCreateFolderBody(t *testing.T) {
	var body map[string]any
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/files/folder", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	})
	defer server.Close()

	_, err := client.CreateFolder(context.Background(), "Photos", "")
	require.NoError(t, err)
	assert.Equal(t, "Photos", body["name"])
	value, present := body["parentId"]
	assert.True(t, present, "root create must still send parentId")
	assert.Nil(t, value)

	_, err = client.CreateFolder(context.Background(), "Photos", "f2")
	require.NoError(t, err)
	assert.Equal(t, "f2", body["parentId"])
}

func TestDeleteAndRename(t *testing.T) {
	var gotMethod, gotPath string
	var body map[string]string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&body)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	})
	defer server.Close()

	_, err := client.Delete(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/files/abc123", gotPath)

	_, err = client.Rename(context.Background(), "abc123", "renamed.txt")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/api/files/abc123", gotPath)
	assert.Equal(t, "renamed.txt", body["name"])
}

func TestDownloadLink(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/files/download/f1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "url": "https://signed.example/f1"})
	})
	defer server.Close()

	result, err := client.DownloadLink(context.Background(), "f1")
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/f1", result.URL)
}

func TestUploadMultipart(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(local, []byte("hello upload"), 0o600))

	var gotFileName, gotContent, gotParent string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/files/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotFileName = header.Filename
		content := make([]byte, header.Size)
		_, _ = file.Read(content)
		gotContent = string(content)
		gotParent = r.FormValue("parentId")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "file": map[string]any{"_id": "new"}})
	})
	defer server.Close()

	result, err := client.Upload(context.Background(), local, "folder7")
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "new", result.Entry.ID)
	assert.Equal(t, "note.txt", gotFileName)
	assert.Equal(t, "hello upload", gotContent)
	assert.Equal(t, "folder7", gotParent)
}

func TestUploadMissingFile(t *testing.T) {
	client := New(Config{BaseURL: "http://unused.invalid"})
	_, err := client.Upload(context.Background(), filepath.Join(t.TempDir(), "missing.bin"), "")
	assert.Error(t, err)
}

func TestNon2xxWithEnvelopeIsBusinessFailure(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "invalid credentials"})
	})
	defer server.Close()

	result, err := client.Login(context.Background(), "a@b.co", "nope")
	require.NoError(t, err, "a decodable rejection is a value, not an error")
	assert.False(t, result.Success)
	assert.Equal(t, "invalid credentials", result.Message)
}

func TestNon2xxWithoutMessageGetsStatusText(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("{}"))
	})
	defer server.Close()

	result, err := client.List(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "502")
}

func TestMalformedBodyIsError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>gateway error</html>"))
	})
	defer server.Close()

	_, err := client.List(context.Background(), "")
	assert.Error(t, err)
}

func TestTransportFailureIsError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := client.List(context.Background(), "")
	assert.Error(t, err)
}

func TestActivateEscapesToken(t *testing.T) {
	var gotPath string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "activated"})
	})
	defer server.Close()

	result, err := client.Activate(context.Background(), "tok/with weird")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "/api/auth/activate/tok%2Fwith%20weird", gotPath)
}
