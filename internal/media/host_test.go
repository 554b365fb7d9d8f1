package media_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trivora/trivora/internal/media"
)

func TestHostUploader_Upload(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotKey = r.FormValue("key")

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "photo.png", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"url":"http://cdn.test/photo.png","secure_url":"https://cdn.test/photo.png"}`))
	}))
	defer srv.Close()

	u := media.NewHostUploader(srv.URL, "api-key", 5*time.Second)
	url, err := u.Upload(context.Background(), "photo.png", strings.NewReader("fake image bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/photo.png", url)
	assert.Equal(t, "api-key", gotKey)
}

func TestHostUploader_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	u := media.NewHostUploader(srv.URL, "", 5*time.Second)
	_, err := u.Upload(context.Background(), "photo.png", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestHostUploader_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	u := media.NewHostUploader(srv.URL, "", 50*time.Millisecond)
	_, err := u.Upload(context.Background(), "photo.png", strings.NewReader("x"))
	assert.Error(t, err)
}
