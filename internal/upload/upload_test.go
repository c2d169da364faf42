package upload

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "profile_pics", r.FormValue("folder"))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "avatar.png", header.Filename)
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)
		w.Write([]byte(`{"secure_url":"https://img.example/profile_pics/abc.png"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "profile_pics")
	url, err := c.Upload(context.Background(), "avatar.png", []byte{0x89, 'P', 'N', 'G'})
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/profile_pics/abc.png", url)
}

func TestUploadHostFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "profile_pics")
	_, err := c.Upload(context.Background(), "avatar.png", []byte("x"))
	assert.Error(t, err)
}
