package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/DivyanshSaharan/ContestTrack/internal/api/auth"
	"github.com/DivyanshSaharan/ContestTrack/internal/api/middleware"
	"github.com/DivyanshSaharan/ContestTrack/internal/models"
	"github.com/DivyanshSaharan/ContestTrack/internal/repository"
)

type AuthHandler struct {
	userRepo   repository.UserRepository
	jwtManager *auth.JWTManager
}

func NewAuthHandler(userRepo repository.UserRepository, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Username == "" || req.Email == "" || len(req.Password) < 8 {
		respondError(w, http.StatusBadRequest, "Username, email and a password of at least 8 characters are required")
		return
	}

	if existing, err := h.userRepo.GetByEmail(req.Email); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to check existing users")
		return
	} else if existing != nil {
		respondError(w, http.StatusConflict, "Email already registered")
		return
	}

	if existing, err := h.userRepo.GetByUsername(req.Username); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to check existing users")
		return
	} else if existing != nil {
		respondError(w, http.StatusConflict, "Username already taken")
		return
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		IsActive: true,
	}

	if err := user.SetPassword(req.Password); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	if err := h.userRepo.Create(user); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := h.jwtManager.GenerateToken(user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to look up user")
		return
	}

	if user == nil || !user.CheckPassword(req.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if !user.IsActive {
		respondError(w, http.StatusForbidden, "Account is disabled")
		return
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := h.userRepo.Update(user); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}

	token, err := h.jwtManager.GenerateToken(user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		respondError(w, http.StatusBadRequest, "Token is required")
		return
	}

	token, err := h.jwtManager.RefreshToken(req.Token)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.userRepo.GetByID(claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to look up user")
		return
	}

	if user == nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, user)
}
