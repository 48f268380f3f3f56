package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"farm-management-system/api/internal/models"
	"farm-management-system/shared/authx"
	"farm-management-system/shared/httpx"
)

type userResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type AuthHandler struct {
	Users  UserStore
	Issuer *authx.TokenIssuer
}

type UserStore interface {
	CreateUser(ctx context.Context, name string, email string, passwordHash string, role string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	TouchLastLogin(ctx context.Context, userID uuid.UUID) error
}

func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/auth/register", h.register)
	mux.HandleFunc("POST /api/v1/auth/login", h.login)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, r, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid json body", nil)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	missing := []string{}
	if req.Name == "" {
		missing = append(missing, "name")
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		missing = append(missing, "email")
	}
	if len(req.Password) < 8 {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		httpx.WriteError(w, r, http.StatusBadRequest, "INVALID_ARGUMENT", "missing or invalid required fields",
			map[string]any{"missing": missing})
		return
	}

	if _, err := h.Users.GetUserByEmail(r.Context(), req.Email); err == nil {
		httpx.WriteError(w, r, http.StatusBadRequest, "INVALID_ARGUMENT", "email already exists", nil)
		return
	} else if !errors.Is(err, pgx.ErrNoRows) {
		httpx.WriteError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}

	hash, err := authx.HashPassword(req.Password)
	if err != nil {
		httpx.WriteError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to hash password", nil)
		return
	}

	user, err := h.Users.CreateUser(r.Context(), req.Name, req.Email, hash, "farmer")
	if err != nil {
		httpx.WriteError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "User registered",
		"user":    userResponse{ID: user.UserID, Name: user.Name, Email: user.Email},
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, r, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid json body", nil)
		return
	}

	user, err := h.Users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			httpx.WriteError(w, r, http.StatusUnauthorized, "UNAUTHENTICATED", "invalid email or password", nil)
			return
		}
		httpx.WriteError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
		return
	}
	if !authx.CheckPassword(user.PasswordHash, req.Password) {
		httpx.WriteError(w, r, http.StatusUnauthorized, "UNAUTHENTICATED", "invalid email or password", nil)
		return
	}

	token, err := h.Issuer.Issue(user.UserID, user.Email, user.Name, user.Role)
	if err != nil {
		httpx.WriteError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to issue token", nil)
		return
	}

	// Best-effort stamp; login already succeeded.
	_ = h.Users.TouchLastLogin(r.Context(), user.UserID)

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  userResponse{ID: user.UserID, Name: user.Name, Email: user.Email},
	})
}
