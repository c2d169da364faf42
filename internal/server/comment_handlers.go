package server

import (
	"errors"
	"net/http"

	"atlash/internal/models"
)

type createCommentRequest struct {
	PostID string `json:"postId"`
	Text   string `json:"text"`
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request, userID string) {
	var req createCommentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.PostID == "" || req.Text == "" {
		writeError(w, http.StatusBadRequest, "postId and text are required")
		return
	}
	author, err := models.GetUserByID(s.DB, userID)
	if err != nil {
		serverError(w, "resolve author", err)
		return
	}
	comment := &models.Comment{
		PostID: req.PostID,
		Author: author.AuthorRef(),
		Text:   req.Text,
	}
	if err := models.CreateComment(s.DB, comment); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		serverError(w, "create comment", err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := models.ListComments(s.DB, r.PathValue("postId"))
	if err != nil {
		serverError(w, "list comments", err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request, userID string) {
	comment, err := models.GetComment(s.DB, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeError(w, http.StatusNotFound, "comment not found")
			return
		}
		serverError(w, "fetch comment", err)
		return
	}
	if comment.Author.ID != userID {
		writeError(w, http.StatusForbidden, "not the comment author")
		return
	}
	if err := models.DeleteComment(s.DB, comment.ID); err != nil {
		serverError(w, "delete comment", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "comment deleted successfully"})
}
