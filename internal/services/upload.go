package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"clouddrive/internal/logging"
)

// BatchResult summarizes one upload batch. Errors holds one line per
// failed file.
type BatchResult struct {
	Attempted int
	Succeeded int
	Failed    int
	Errors    []string
}

func (r BatchResult) Summary() string {
	if r.Failed == 0 {
		return fmt.Sprintf("uploaded %d file(s)", r.Succeeded)
	}
	if r.Succeeded == 0 {
		return fmt.Sprintf("all %d upload(s) failed", r.Failed)
	}
	return fmt.Sprintf("uploaded %d file(s), %d failed", r.Succeeded, r.Failed)
}

// UploadBatch sends the files one at a time into parentID. Every file
// is attempted regardless of earlier failures; the caller re-fetches
// the listing once afterwards iff Succeeded > 0.
func UploadBatch(ctx context.Context, uploader Uploader, paths []string, parentID string) BatchResult {
	result := BatchResult{Attempted: len(paths)}
	for _, path := range paths {
		res, err := uploader.Upload(ctx, path, parentID)
		switch {
		case err != nil:
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", path, err))
			logging.L().Warn("upload failed", zap.String("path", path), zap.Error(err))
		case !res.Success:
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", path, res.Message))
			logging.L().Warn("upload rejected", zap.String("path", path), zap.String("message", res.Message))
		default:
			result.Succeeded++
		}
	}
	return result
}
