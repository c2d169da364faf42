package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"atlash/internal/models"
)

const enrichmentTimeout = 5 * time.Second

type createPostRequest struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Location    string   `json:"location"`
	LocationURL string   `json:"locationUrl"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

type updatePostRequest struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	Location    *string `json:"location"`
	LocationURL *string `json:"locationUrl"`
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := models.ListPosts(s.DB)
	if err != nil {
		serverError(w, "list posts", err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request, userID string) {
	var req createPostRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Title == "" || req.Content == "" {
		writeError(w, http.StatusBadRequest, "title and content are required")
		return
	}
	author, err := models.GetUserByID(s.DB, userID)
	if err != nil {
		serverError(w, "resolve author", err)
		return
	}
	post := &models.Post{
		Author:      author.AuthorRef(),
		Title:       req.Title,
		Content:     req.Content,
		Location:    req.Location,
		LocationURL: req.LocationURL,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Likes:       []string{},
		Comments:    []models.Comment{},
	}
	if req.Latitude != nil && req.Longitude != nil && s.Weather != nil {
		ctx, cancel := context.WithTimeout(r.Context(), enrichmentTimeout)
		snapshot, err := s.Weather.Current(ctx, *req.Latitude, *req.Longitude)
		cancel()
		if err != nil {
			// Enrichment is best-effort; the post still gets created.
			log.Printf("weather enrichment: %v", err)
		} else {
			post.Weather = snapshot
		}
	}
	if err := models.CreatePost(s.DB, post); err != nil {
		serverError(w, "create post", err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	post, err := models.GetPost(s.DB, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		serverError(w, "get post", err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// fetchOwnedPost loads a post and enforces the ownership rule shared by
// update and delete. All checks complete before any mutation happens.
func (s *Server) fetchOwnedPost(w http.ResponseWriter, id, userID string) *models.Post {
	post, err := models.GetPost(s.DB, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post not found")
			return nil
		}
		serverError(w, "fetch post", err)
		return nil
	}
	if post.Author.ID != userID {
		writeError(w, http.StatusForbidden, "not the post owner")
		return nil
	}
	return post
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request, userID string) {
	var req updatePostRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if s.fetchOwnedPost(w, r.PathValue("id"), userID) == nil {
		return
	}
	post, err := models.UpdatePost(s.DB, r.PathValue("id"), models.PostUpdate{
		Title:       req.Title,
		Content:     req.Content,
		Location:    req.Location,
		LocationURL: req.LocationURL,
	})
	if err != nil {
		serverError(w, "update post", err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request, userID string) {
	if s.fetchOwnedPost(w, r.PathValue("id"), userID) == nil {
		return
	}
	if err := models.DeletePost(s.DB, r.PathValue("id")); err != nil {
		serverError(w, "delete post", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "post deleted successfully"})
}

func (s *Server) handleLikePost(w http.ResponseWriter, r *http.Request, userID string) {
	post, err := models.ToggleLike(s.DB, r.PathValue("id"), userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		serverError(w, "toggle like", err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}
