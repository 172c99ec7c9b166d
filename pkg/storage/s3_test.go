package storage_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pizzeria/pkg/storage"
	"github.com/shashiranjanraj/pizzeria/pkg/testkit"
)

const noSuchKey = `<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`

func newS3Disk(t *testing.T, mt *testkit.MockTransport) *storage.S3Disk {
	t.Helper()
	t.Setenv("AWS_CONFIG_FILE", "/dev/null")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/dev/null")

	d, err := storage.NewS3Disk(context.Background(), storage.S3Config{
		Bucket:     "menu",
		Region:     "sa-east-1",
		Key:        "key",
		Secret:     "secret",
		HTTPClient: mt.Client(),
	})
	require.NoError(t, err)
	return d
}

func TestS3DiskRoundTrip(t *testing.T) {
	ctx := context.Background()
	mt := testkit.NewMockTransport(
		testkit.MockStep{Method: http.MethodPut, Match: "abc-pizza.png"},
		testkit.MockStep{Method: http.MethodGet, Match: "abc-pizza.png", Body: "png-bytes"},
		testkit.MockStep{Method: http.MethodHead, Match: "abc-pizza.png"},
		testkit.MockStep{Method: http.MethodDelete, Match: "abc-pizza.png", Status: http.StatusNoContent},
	)
	d := newS3Disk(t, mt)

	require.NoError(t, d.Put(ctx, "abc-pizza.png", strings.NewReader("png-bytes")))

	rc, err := d.Get(ctx, "abc-pizza.png")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "png-bytes", string(data))

	ok, err := d.Exists(ctx, "abc-pizza.png")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, d.Delete(ctx, "abc-pizza.png"))
	mt.AssertAllCalled(t)

	assert.Equal(t, "https://menu.s3.sa-east-1.amazonaws.com/abc-pizza.png", d.URL("abc-pizza.png"))
}

func TestS3DiskMissingObject(t *testing.T) {
	ctx := context.Background()
	mt := testkit.NewMockTransport(
		testkit.MockStep{
			Method: http.MethodGet,
			Match:  "missing.png",
			Status: http.StatusNotFound,
			Body:   noSuchKey,
			Header: map[string]string{"Content-Type": "application/xml"},
		},
		testkit.MockStep{Method: http.MethodHead, Match: "missing.png", Status: http.StatusNotFound},
	)
	d := newS3Disk(t, mt)

	_, err := d.Get(ctx, "missing.png")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	ok, err := d.Exists(ctx, "missing.png")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestS3DiskRequiresBucket(t *testing.T) {
	_, err := storage.NewS3Disk(context.Background(), storage.S3Config{})
	assert.Error(t, err)
}
