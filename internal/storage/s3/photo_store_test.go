package s3_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitediary/internal/config"
	"sitediary/internal/port"
	"sitediary/internal/storage/s3"
)

type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func (b *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch r.Method {
	case http.MethodPut:
		data, _ := io.ReadAll(r.Body)
		b.objects[r.URL.Path] = data
		w.Header().Set("ETag", `"abc123"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		b.deleted = append(b.deleted, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newStore(t *testing.T) (port.ObjectStorage, *fakeBucket) {
	t.Helper()
	bucket := &fakeBucket{objects: map[string][]byte{}}
	srv := httptest.NewServer(bucket)
	t.Cleanup(srv.Close)

	store, err := s3.NewPhotoStore(context.Background(), &config.S3Config{
		Region:    "eu-central-1",
		Endpoint:  srv.URL,
		AccessKey: "test",
		SecretKey: "test",
	})
	require.NoError(t, err)
	return store, bucket
}

func TestPhotoStore_Upload(t *testing.T) {
	store, bucket := newStore(t)

	out, err := store.Upload(context.Background(), port.UploadInput{
		Bucket:      "diary-photos",
		Key:         "d1/1700000000000-site.jpg",
		Body:        bytes.NewReader([]byte("jpeg-bytes")),
		ContentType: "image/jpeg",
		Size:        10,
	})
	require.NoError(t, err)

	assert.Equal(t, `"abc123"`, out.ETag)
	assert.Contains(t, string(bucket.objects["/diary-photos/d1/1700000000000-site.jpg"]), "jpeg-bytes")
}

func TestPhotoStore_Delete(t *testing.T) {
	store, bucket := newStore(t)

	require.NoError(t, store.Delete(context.Background(), "diary-photos", "d1/a.jpg"))
	assert.Equal(t, []string{"/diary-photos/d1/a.jpg"}, bucket.deleted)
}

func TestPhotoStore_PresignedURL(t *testing.T) {
	store, _ := newStore(t)

	url, err := store.GetPresignedURL(context.Background(), "diary-photos", "d1/a.jpg", 600)
	require.NoError(t, err)

	assert.True(t, strings.Contains(url, "/diary-photos/d1/a.jpg"), url)
	assert.Contains(t, url, "X-Amz-Expires=600")
	assert.Contains(t, url, "X-Amz-Signature=")
}
