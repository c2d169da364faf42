package server

import (
	"io"
	"net/http"

	"atlash/internal/models"
)

const maxUploadBytes = 10 << 20

func (s *Server) handleUploadProfilePicture(w http.ResponseWriter, r *http.Request, userID string) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil || len(data) == 0 {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}

	url, err := s.Uploads.Upload(r.Context(), header.Filename, data)
	if err != nil {
		serverError(w, "upload profile picture", err)
		return
	}
	// The user row is touched only after the host accepted the image; a
	// failed upload never half-updates the profile.
	user, err := models.SetProfilePic(s.DB, userID, url)
	if err != nil {
		serverError(w, "store profile picture", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"profilePic": url,
		"user":       user.Profile(),
	})
}
