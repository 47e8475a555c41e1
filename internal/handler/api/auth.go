package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Observer7203/Online-Store-Test/internal/domain"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	users  domain.UserService
	logger *slog.Logger
}

func NewAuthHandler(users domain.UserService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{users: users, logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := bindJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	user, token, err := h.users.Register(r.Context(), domain.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondData(w, http.StatusCreated, map[string]any{
		"user":  userView(user),
		"token": token,
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := bindJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	user, token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondData(w, http.StatusOK, map[string]any{
		"user":  userView(user),
		"token": token,
	})
}

// Logout handles POST /api/auth/logout. Requires authentication; revokes the
// presented token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		respondMessage(w, http.StatusUnauthorized, "Unauthenticated.")
		return
	}

	if err := h.users.Logout(r.Context(), token); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondMessage(w, http.StatusOK, "Logged out")
}
