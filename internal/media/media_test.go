package media

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/property-backoffice/internal/config"
)

func TestNewWithoutCredentialsIsDisabled(t *testing.T) {
	u, err := New(config.CloudinaryConfig{Folder: "properties"})
	require.NoError(t, err)
	_, ok := u.(Disabled)
	assert.True(t, ok)

	_, err = u.Upload(context.Background(), "a.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUpload)
}

func TestNewWithCredentials(t *testing.T) {
	u, err := New(config.CloudinaryConfig{CloudName: "demo", APIKey: "k", APISecret: "s", Folder: "properties"})
	require.NoError(t, err)
	c, ok := u.(*Cloudinary)
	require.True(t, ok)
	assert.Equal(t, "properties", c.folder)
	assert.Equal(t, "demo", c.cld.Config.Cloud.CloudName)
}

func TestUploadFunc(t *testing.T) {
	var u Uploader = UploadFunc(func(_ context.Context, name string, _ io.Reader) (string, error) {
		return "https://img.example/" + name, nil
	})
	url, err := u.Upload(context.Background(), "a.png", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/a.png", url)
}
