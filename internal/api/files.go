package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
)

// List fetches one folder's contents. An empty folderID lists the root;
// the parentId query parameter is omitted entirely in that case.
func (c *Client) List(ctx context.Context, folderID string) (*ListResult, error) {
	path := "/api/files"
	if folderID != "" {
		path += "?parentId=" + url.QueryEscape(folderID)
	}
	var out ListResult
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateFolder creates a folder under parentID. The backend expects an
// explicit null parentId for the root, so the field is always present.
func (c *Client) CreateFolder(ctx context.Context, name, parentID string) (*EntryResult, error) {
	body := map[string]any{"name": name, "parentId": nil}
	if parentID != "" {
		body["parentId"] = parentID
	}
	var out EntryResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/files/folder", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a file, or a folder together with everything it
// contains. The backend owns the recursion.
func (c *Client) Delete(ctx context.Context, entryID string) (*EntryResult, error) {
	var out EntryResult
	path := "/api/files/" + url.PathEscape(entryID)
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Rename(ctx context.Context, entryID, name string) (*EntryResult, error) {
	body := map[string]string{"name": name}
	var out EntryResult
	path := "/api/files/" + url.PathEscape(entryID)
	if err := c.doJSON(ctx, http.MethodPatch, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DownloadLink asks the backend for a transient signed URL for a file.
func (c *Client) DownloadLink(ctx context.Context, fileID string) (*LinkResult, error) {
	var out LinkResult
	path := "/api/files/download/" + url.PathEscape(fileID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Upload sends one local file as multipart form data. The whole body is
// buffered before the request goes out so the Content-Length is exact;
// uploads are sequential so at most one buffer is alive at a time.
func (c *Client) Upload(ctx context.Context, localPath, parentID string) (*UploadResult, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", localPath, err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(localPath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("read %s: %w", localPath, err)
	}
	if parentID != "" {
		if err := writer.WriteField("parentId", parentID); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/files/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var out UploadResult
	if err := c.send(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
