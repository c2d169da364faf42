package server

import (
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"atlash/internal/models"
)

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string         `json:"token"`
	User  models.Profile `json:"user"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username, email and password are required")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		serverError(w, "hash password", err)
		return
	}
	if _, err := models.CreateUser(s.DB, req.Email, req.Username, string(hash)); err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			writeError(w, http.StatusBadRequest, "user already exists")
			return
		}
		serverError(w, "create user", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "user created successfully"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user, err := models.GetUserByEmail(s.DB, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			// Same response as a bad password; the caller learns nothing
			// about which half failed.
			writeError(w, http.StatusBadRequest, "invalid credentials")
			return
		}
		serverError(w, "login lookup", err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusBadRequest, "invalid credentials")
		return
	}
	tok, err := s.Tokens.Issue(user.ID)
	if err != nil {
		serverError(w, "issue token", err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: tok, User: user.Profile()})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request, userID string) {
	user, err := models.GetUserByID(s.DB, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		serverError(w, "get self", err)
		return
	}
	writeJSON(w, http.StatusOK, user.Profile())
}

type updateProfileRequest struct {
	Username       *string `json:"username"`
	Email          *string `json:"email"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profilePicture"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request, userID string) {
	var req updateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user, err := models.UpdateUser(s.DB, userID, models.UserUpdate{
		Username:   req.Username,
		Email:      req.Email,
		Bio:        req.Bio,
		ProfilePic: req.ProfilePicture,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		case errors.Is(err, models.ErrDuplicateEmail):
			writeError(w, http.StatusConflict, "email already registered")
		default:
			serverError(w, "update profile", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "profile updated successfully",
		"user":    user.Profile(),
	})
}
