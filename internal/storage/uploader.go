// Package storage is a thin client for the hosted object-storage
// service. Objects are written under an entity-specific prefix with a
// random key; the parent entity payload carries the returned public URL,
// so an upload must complete before the entity is persisted.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terravista/estates/internal/config"
	"github.com/terravista/estates/internal/types"
	"github.com/terravista/estates/internal/utils"
)

// Object key prefixes per entity type.
const (
	PropertyImagePrefix = "property-images"
	BlogImagePrefix     = "blog-images"
)

// Uploader uploads objects to the storage service's REST API.
type Uploader struct {
	BaseURL string
	Bucket  string
	APIKey  string
	Client  *http.Client
}

// New builds an uploader from the service configuration.
func New(cfg *config.Config) *Uploader {
	return &Uploader{
		BaseURL: strings.TrimSuffix(cfg.StorageURL, "/"),
		Bucket:  cfg.StorageBucket,
		APIKey:  cfg.StorageAPIKey,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload writes the object under {prefix}/{uuid}{ext} and returns its
// public URL. The original filename contributes only its extension; the
// random key avoids the collisions a timestamp key would allow.
func (u *Uploader) Upload(ctx context.Context, prefix, fileName string, body io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	key := prefix + "/" + uuid.NewString() + ext

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u.objectURL(key), body)
	if err != nil {
		return "", types.NewUploadError(fmt.Sprintf("failed to build upload request: %v", err))
	}
	req.Header.Set("Authorization", "Bearer "+u.APIKey)

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := u.Client.Do(req)
	if err != nil {
		return "", types.NewUploadError(fmt.Sprintf("upload failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", types.NewUploadError(fmt.Sprintf("upload rejected with status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(msg))))
	}

	return u.PublicURL(key), nil
}

// PublicURL derives the publicly resolvable URL for an object key.
func (u *Uploader) PublicURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", u.BaseURL, u.Bucket, key)
}

// Ping checks that the storage service is reachable.
func (u *Uploader) Ping() error {
	return utils.PingStorage(u.BaseURL)
}

func (u *Uploader) objectURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/%s/%s", u.BaseURL, u.Bucket, key)
}
