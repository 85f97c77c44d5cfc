package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	now := time.UnixMilli(1718000000123)
	assert.Equal(t, "universities/1718000000123.jpg", Key("universities", "Campus.JPG", now))
	assert.Equal(t, "profile/1718000000123", Key("/profile/", "noext", now))
}

func TestLocalSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir, "uploads")
	require.NoError(t, err)

	ctx := context.Background()
	url, err := store.Save(ctx, "universities/1.png", "image/png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/universities/1.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "universities", "1.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))

	require.NoError(t, store.Delete(ctx, url))
	_, err = os.Stat(filepath.Join(dir, "universities", "1.png"))
	assert.True(t, os.IsNotExist(err))

	// already gone
	assert.NoError(t, store.Delete(ctx, url))
}

func TestLocalSaveNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir, "uploads")
	require.NoError(t, err)
	ctx := context.Background()

	first, err := store.Save(ctx, "universities/1718000000123.png", "image/png", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := store.Save(ctx, "universities/1718000000123.png", "image/png", strings.NewReader("b"))
	require.NoError(t, err)
	third, err := store.Save(ctx, "universities/1718000000123.png", "image/png", strings.NewReader("c"))
	require.NoError(t, err)

	assert.Equal(t, "/uploads/universities/1718000000123.png", first)
	assert.Equal(t, "/uploads/universities/1718000000123-1.png", second)
	assert.Equal(t, "/uploads/universities/1718000000123-2.png", third)

	data, err := os.ReadFile(filepath.Join(dir, "universities", "1718000000123.png"))
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))

	// deleting the replaced file leaves the newer one intact
	require.NoError(t, store.Delete(ctx, first))
	data, err = os.ReadFile(filepath.Join(dir, "universities", "1718000000123-1.png"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(data))
}

func TestLocalRejectsForeignAndEscapingURLs(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir, "/uploads")
	require.NoError(t, err)

	assert.ErrorIs(t, store.Delete(context.Background(), "https://cdn.example.com/x.png"), ErrForeignURL)

	url, err := store.Save(context.Background(), "../../etc/x.txt", "text/plain", strings.NewReader("x"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "etc", "x.txt"))
	assert.NoError(t, err)
	assert.Equal(t, "/uploads/etc/x.txt", url)
}

func TestS3BaseURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com", s3BaseURL(S3Config{Bucket: "b", PublicURL: "https://cdn.example.com/"}))
	assert.Equal(t, "https://b.fra1.digitaloceanspaces.com", s3BaseURL(S3Config{Bucket: "b", Endpoint: "https://fra1.digitaloceanspaces.com"}))
	assert.Equal(t, "https://b.s3.eu-west-1.amazonaws.com", s3BaseURL(S3Config{Bucket: "b", Region: "eu-west-1"}))
}
