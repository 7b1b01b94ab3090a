package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/terravista/estates/internal/config"
	"github.com/terravista/estates/internal/types"
)

func testUploader(serverURL string) *Uploader {
	return New(&config.Config{
		StorageURL:    serverURL,
		StorageBucket: "media",
		StorageAPIKey: "test-key",
	})
}

func TestUploadBuildsKeyAndURL(t *testing.T) {
	var gotPath, gotAuth, gotContentType, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	u := testUploader(server.URL)
	url, err := u.Upload(context.Background(), PropertyImagePrefix, "Front View.JPG", strings.NewReader("image-bytes"))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if !strings.HasPrefix(gotPath, "/storage/v1/object/media/property-images/") {
		t.Errorf("Unexpected upload path: %s", gotPath)
	}
	if !strings.HasSuffix(gotPath, ".jpg") {
		t.Errorf("Expected lowercased extension from the original filename, got %s", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Expected bearer auth, got %q", gotAuth)
	}
	if gotContentType != "image/jpeg" {
		t.Errorf("Expected image/jpeg content type, got %q", gotContentType)
	}
	if gotBody != "image-bytes" {
		t.Errorf("Body not streamed through, got %q", gotBody)
	}

	key := strings.TrimPrefix(gotPath, "/storage/v1/object/media/")
	want := server.URL + "/storage/v1/object/public/media/" + key
	if url != want {
		t.Errorf("PublicURL = %q, want %q", url, want)
	}
}

func TestUploadRandomKeysDiffer(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	u := testUploader(server.URL)
	for i := 0; i < 2; i++ {
		if _, err := u.Upload(context.Background(), BlogImagePrefix, "same-name.png", strings.NewReader("x")); err != nil {
			t.Fatalf("Upload failed: %v", err)
		}
	}

	if len(paths) != 2 || paths[0] == paths[1] {
		t.Errorf("Two uploads of the same filename must get distinct keys: %v", paths)
	}
}

func TestUploadRejectionIsUploadError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("bucket quota exceeded"))
	}))
	defer server.Close()

	u := testUploader(server.URL)
	_, err := u.Upload(context.Background(), PropertyImagePrefix, "a.jpg", strings.NewReader("x"))

	ce, ok := err.(*types.CustomError)
	if !ok || ce.Kind != types.KindUpload {
		t.Fatalf("Expected upload error kind, got %v", err)
	}
	if ce.Code != 502 {
		t.Errorf("Expected 502 code, got %d", ce.Code)
	}
	if !strings.Contains(ce.Message, "bucket quota exceeded") {
		t.Errorf("Expected response excerpt in message, got %q", ce.Message)
	}
}

func TestUploadUnreachableServer(t *testing.T) {
	u := testUploader("http://127.0.0.1:1")
	_, err := u.Upload(context.Background(), PropertyImagePrefix, "a.jpg", strings.NewReader("x"))
	ce, ok := err.(*types.CustomError)
	if !ok || ce.Kind != types.KindUpload {
		t.Fatalf("Expected upload error for unreachable storage, got %v", err)
	}
}
