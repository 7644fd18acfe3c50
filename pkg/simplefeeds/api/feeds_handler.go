// Package api provides chi HTTP handlers for the simple-feeds service.
package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/tendant/simple-feeds/pkg/simplefeeds"
)

// FeedsHandler handles feed upload and retrieval API endpoints
type FeedsHandler struct {
	service simplefeeds.Service
}

func NewFeedsHandler(service simplefeeds.Service) *FeedsHandler {
	return &FeedsHandler{service: service}
}

// Routes returns the router for feeds endpoints
func (h *FeedsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.UploadFeed)
	r.Get("/", h.ListFeeds)
	r.Get("/{feed_id}", h.GetFeed)
	r.Get("/{feed_id}/download", h.DownloadFeed)
	return r
}

// UploadFeed accepts a multipart upload and ingests it as a new feed.
// Form fields: "file" (required), "userId" (required), "description".
func (h *FeedsHandler) UploadFeed(w http.ResponseWriter, r *http.Request) {
	// 32 MB in-memory cap; larger parts spill to temp files
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		slog.Error("Missing file in upload", "error", err)
		http.Error(w, "Missing required 'file' field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	userID := r.FormValue("userId")
	if userID == "" {
		http.Error(w, "Missing required 'userId' field", http.StatusBadRequest)
		return
	}

	feed, err := h.service.IngestFeed(r.Context(), simplefeeds.IngestFeedRequest{
		UserID:      userID,
		FileName:    header.Filename,
		Description: r.FormValue("description"),
		ContentType: header.Header.Get("Content-Type"),
		FileSize:    header.Size,
		Payload:     file,
	})
	if err != nil {
		writeServiceError(w, "ingest feed", err)
		return
	}

	slog.Info("Feed uploaded", "feed_id", feed.ID.String(), "user_id", feed.UserID)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, feed)
}

// ListFeeds returns a page of the owner's feeds, most recent first.
// Query parameters: userId (required), page, pageSize.
func (h *FeedsHandler) ListFeeds(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "Missing required 'userId' parameter", http.StatusBadRequest)
		return
	}

	page, err := parseIntParam(r, "page", 1)
	if err != nil {
		http.Error(w, "Invalid 'page' parameter", http.StatusBadRequest)
		return
	}
	pageSize, err := parseIntParam(r, "pageSize", simplefeeds.DefaultPageSize)
	if err != nil {
		http.Error(w, "Invalid 'pageSize' parameter", http.StatusBadRequest)
		return
	}

	feeds, err := h.service.ListFeedsByOwner(r.Context(), simplefeeds.ListFeedsRequest{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		writeServiceError(w, "list feeds", err)
		return
	}

	total, err := h.service.CountFeedsByOwner(r.Context(), userID)
	if err != nil {
		writeServiceError(w, "count feeds", err)
		return
	}

	if feeds == nil {
		feeds = []*simplefeeds.Feed{}
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	render.JSON(w, r, feeds)
}

// GetFeed returns the metadata record for a single feed
func (h *FeedsHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	feedIDStr := chi.URLParam(r, "feed_id")
	feedID, err := uuid.Parse(feedIDStr)
	if err != nil {
		slog.Error("Invalid feed ID", "feed_id", feedIDStr, "error", err)
		http.Error(w, "Invalid feed ID", http.StatusBadRequest)
		return
	}

	feed, err := h.service.GetFeed(r.Context(), feedID)
	if err != nil {
		writeServiceError(w, "get feed", err)
		return
	}

	render.JSON(w, r, feed)
}

// DownloadFeed streams the stored feed binary back to the caller
func (h *FeedsHandler) DownloadFeed(w http.ResponseWriter, r *http.Request) {
	feedIDStr := chi.URLParam(r, "feed_id")
	feedID, err := uuid.Parse(feedIDStr)
	if err != nil {
		slog.Error("Invalid feed ID", "feed_id", feedIDStr, "error", err)
		http.Error(w, "Invalid feed ID", http.StatusBadRequest)
		return
	}

	feed, err := h.service.GetFeed(r.Context(), feedID)
	if err != nil {
		writeServiceError(w, "get feed", err)
		return
	}

	body, err := h.service.DownloadFeed(r.Context(), feedID)
	if err != nil {
		writeServiceError(w, "download feed", err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", feed.ContentType)
	if feed.FileName != "" {
		w.Header().Set("Content-Disposition", "attachment; filename=\""+feed.FileName+"\"")
	}
	if _, err := io.Copy(w, body); err != nil {
		slog.Error("Failed to stream feed", "feed_id", feedID.String(), "error", err)
	}
}

func parseIntParam(r *http.Request, name string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(raw)
}

// writeServiceError maps service errors onto HTTP status codes. Storage and
// metadata failures both surface as 500 but with distinct messages so callers
// can tell which stage failed.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	var storageErr *simplefeeds.StorageError
	var metadataErr *simplefeeds.MetadataError

	switch {
	case errors.Is(err, simplefeeds.ErrInvalidInput):
		slog.Error("Invalid request", "op", op, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, simplefeeds.ErrFeedNotFound):
		http.Error(w, "Feed not found", http.StatusNotFound)
	case errors.Is(err, simplefeeds.ErrUserNotFound):
		http.Error(w, "User not found", http.StatusNotFound)
	case errors.As(err, &storageErr):
		slog.Error("Storage failure", "op", op, "key", storageErr.Key, "error", err)
		http.Error(w, "Feed storage failed", http.StatusInternalServerError)
	case errors.As(err, &metadataErr):
		slog.Error("Metadata failure", "op", op, "feed_id", metadataErr.FeedID.String(), "error", err)
		http.Error(w, "Feed record could not be saved", http.StatusInternalServerError)
	default:
		slog.Error("Request failed", "op", op, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
