package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-feeds/pkg/simplefeeds"
	"github.com/tendant/simple-feeds/pkg/simplefeeds/api"
	repomemory "github.com/tendant/simple-feeds/pkg/simplefeeds/repo/memory"
	memorystorage "github.com/tendant/simple-feeds/pkg/simplefeeds/storage/memory"
)

func newTestRouter(t *testing.T) (chi.Router, simplefeeds.Service) {
	t.Helper()
	svc, err := simplefeeds.New(
		simplefeeds.WithRepository(repomemory.New()),
		simplefeeds.WithBlobStore(memorystorage.New()),
	)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Mount("/api/feeds", api.NewFeedsHandler(svc).Routes())
	r.Mount("/api/users", api.NewUsersHandler(svc).Routes())
	return r, svc
}

func multipartUpload(t *testing.T, fields map[string]string, fileName, fileBody string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := w.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = io.Copy(fw, strings.NewReader(fileBody))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func uploadFeed(t *testing.T, router chi.Router, userID, fileName, body string) simplefeeds.Feed {
	t.Helper()
	buf, contentType := multipartUpload(t, map[string]string{"userId": userID}, fileName, body)

	req := httptest.NewRequest(http.MethodPost, "/api/feeds/", buf)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var feed simplefeeds.Feed
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))
	return feed
}

func TestUploadFeed(t *testing.T) {
	t.Run("successful upload", func(t *testing.T) {
		router, _ := newTestRouter(t)
		buf, contentType := multipartUpload(t,
			map[string]string{"userId": "user-1", "description": "weekly show"},
			"episode.mp3", "audio bytes")

		req := httptest.NewRequest(http.MethodPost, "/api/feeds/", buf)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var feed simplefeeds.Feed
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))
		assert.NotEqual(t, uuid.Nil, feed.ID)
		assert.Equal(t, "user-1", feed.UserID)
		assert.Equal(t, "episode.mp3", feed.FileName)
		assert.Equal(t, "weekly show", feed.Description)
		assert.NotEmpty(t, feed.FeedURL)
		assert.False(t, feed.UploadDate.IsZero())
	})

	t.Run("missing file field", func(t *testing.T) {
		router, _ := newTestRouter(t)
		buf, contentType := multipartUpload(t, map[string]string{"userId": "user-1"}, "", "")

		req := httptest.NewRequest(http.MethodPost, "/api/feeds/", buf)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing user id", func(t *testing.T) {
		router, _ := newTestRouter(t)
		buf, contentType := multipartUpload(t, nil, "episode.mp3", "data")

		req := httptest.NewRequest(http.MethodPost, "/api/feeds/", buf)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty file is rejected", func(t *testing.T) {
		router, _ := newTestRouter(t)
		buf, contentType := multipartUpload(t, map[string]string{"userId": "user-1"}, "empty.mp3", "")

		req := httptest.NewRequest(http.MethodPost, "/api/feeds/", buf)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-multipart body", func(t *testing.T) {
		router, _ := newTestRouter(t)
		req := httptest.NewRequest(http.MethodPost, "/api/feeds/", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListFeeds(t *testing.T) {
	t.Run("returns only the owner's feeds", func(t *testing.T) {
		router, _ := newTestRouter(t)
		for i := 0; i < 3; i++ {
			uploadFeed(t, router, "owner", fmt.Sprintf("f%d.mp3", i), "data")
		}
		uploadFeed(t, router, "someone-else", "other.mp3", "data")

		req := httptest.NewRequest(http.MethodGet, "/api/feeds/?userId=owner", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var feeds []simplefeeds.Feed
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feeds))
		require.Len(t, feeds, 3)
		for _, f := range feeds {
			assert.Equal(t, "owner", f.UserID)
		}
	})

	t.Run("pagination parameters", func(t *testing.T) {
		router, _ := newTestRouter(t)
		for i := 0; i < 5; i++ {
			uploadFeed(t, router, "owner", fmt.Sprintf("f%d.mp3", i), "data")
		}

		req := httptest.NewRequest(http.MethodGet, "/api/feeds/?userId=owner&page=2&pageSize=2", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var feeds []simplefeeds.Feed
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feeds))
		assert.Len(t, feeds, 2)
		assert.Equal(t, "5", rec.Header().Get("X-Total-Count"))
	})

	t.Run("empty page is a json array", func(t *testing.T) {
		router, _ := newTestRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/api/feeds/?userId=nobody", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
	})

	t.Run("missing user id", func(t *testing.T) {
		router, _ := newTestRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/api/feeds/", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-numeric page", func(t *testing.T) {
		router, _ := newTestRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/api/feeds/?userId=owner&page=abc", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetFeedEndpoint(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		router, _ := newTestRouter(t)
		created := uploadFeed(t, router, "owner", "episode.mp3", "data")

		req := httptest.NewRequest(http.MethodGet, "/api/feeds/"+created.ID.String(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var feed simplefeeds.Feed
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))
		assert.Equal(t, created.ID, feed.ID)
	})

	t.Run("not found", func(t *testing.T) {
		router, _ := newTestRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/api/feeds/"+uuid.NewString(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		router, _ := newTestRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/api/feeds/not-a-uuid", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDownloadFeedEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	created := uploadFeed(t, router, "owner", "episode.mp3", "audio bytes")

	req := httptest.NewRequest(http.MethodGet, "/api/feeds/"+created.ID.String()+"/download", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio bytes", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "episode.mp3")
}

func TestUsersEndpoints(t *testing.T) {
	t.Run("create then get", func(t *testing.T) {
		router, _ := newTestRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/api/users/", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)

		var user simplefeeds.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Contains(t, user.Username, "_")

		req = httptest.NewRequest(http.MethodGet, "/api/users/"+user.ID.String(), nil)
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var got simplefeeds.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, user.Username, got.Username)
	})

	t.Run("unknown user", func(t *testing.T) {
		router, _ := newTestRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/api/users/"+uuid.NewString(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
