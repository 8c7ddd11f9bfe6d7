package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewS3StoreRequiresCredentials(t *testing.T) {
	_, err := NewS3Store(context.Background(), S3Config{Endpoint: "http://localhost:9000"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestPublicURL(t *testing.T) {
	store, err := NewS3Store(context.Background(), S3Config{
		Endpoint:  "http://localhost:9000/",
		AccessKey: "key",
		SecretKey: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/gallery-photos/u1/gallery-1.jpg", store.PublicURL("gallery-photos", "u1/gallery-1.jpg"))

	store, err = NewS3Store(context.Background(), S3Config{
		Endpoint:  "http://localhost:9000",
		AccessKey: "key",
		SecretKey: "secret",
		PublicURL: "https://cdn.undangan.link",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.undangan.link/couple-photos/a.png", store.PublicURL("couple-photos", "a.png"))
}
