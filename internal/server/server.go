package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"atlash/internal/models"
	"atlash/internal/token"
)

// WeatherService is the enrichment collaborator. A nil result never reaches
// handlers; failures degrade to an absent snapshot.
type WeatherService interface {
	Current(ctx context.Context, lat, lon float64) (*models.Weather, error)
}

// Uploader is the image-host collaborator.
type Uploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

type Server struct {
	DB      *sql.DB
	Tokens  *token.Service
	Weather WeatherService
	Uploads Uploader
}

func New(db *sql.DB, tokens *token.Service, weather WeatherService, uploads Uploader) *Server {
	return &Server{DB: db, Tokens: tokens, Weather: weather, Uploads: uploads}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)

	mux.HandleFunc("POST /api/auth/signup", s.handleSignup)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/auth/me", s.requireAuth(s.handleMe))
	mux.HandleFunc("PUT /api/auth/update-profile", s.requireAuth(s.handleUpdateProfile))

	mux.HandleFunc("GET /api/posts", s.handleListPosts)
	mux.HandleFunc("POST /api/posts", s.requireAuth(s.handleCreatePost))
	mux.HandleFunc("GET /api/posts/{id}", s.handleGetPost)
	mux.HandleFunc("PUT /api/posts/{id}", s.requireAuth(s.handleUpdatePost))
	mux.HandleFunc("DELETE /api/posts/{id}", s.requireAuth(s.handleDeletePost))
	mux.HandleFunc("POST /api/posts/{id}/like", s.requireAuth(s.handleLikePost))

	mux.HandleFunc("POST /api/comments", s.requireAuth(s.handleCreateComment))
	mux.HandleFunc("GET /api/comments/{postId}", s.handleListComments)
	mux.HandleFunc("DELETE /api/comments/{id}", s.requireAuth(s.handleDeleteComment))

	mux.HandleFunc("POST /api/profile/upload", s.requireAuth(s.handleUploadProfilePicture))

	return cors(mux)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.routes().ServeHTTP(w, r)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Atlash backend is live!"))
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAuth is the single enforcement point for "is this caller logged in".
// It reads the bearer credential, verifies it, and hands the identity to the
// wrapped handler. Ownership checks stay with the individual handlers.
func (s *Server) requireAuth(next func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "missing or malformed token")
			return
		}
		userID, err := s.Tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next(w, r, userID)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// serverError logs the real failure and answers with a generic 500; internal
// detail stays out of response bodies.
func serverError(w http.ResponseWriter, op string, err error) {
	log.Printf("%s: %v", op, err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
