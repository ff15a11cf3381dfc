package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/CartagenesDev/cartagenes-finacias/internal/auth"
	"github.com/CartagenesDev/cartagenes-finacias/internal/contracts"
	"github.com/CartagenesDev/cartagenes-finacias/internal/view"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/logger"
)

// AuthHandler exposes registration, login and the session
// ⭐ SSOT: auth endpoints live here
type AuthHandler struct {
	store  *auth.Store
	logger *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(store *auth.Store, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		store:  store,
		logger: log,
	}
}

// RegisterRequest is the registration form
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// CredentialsRequest is the login form
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EmailRequest carries a single email
type EmailRequest struct {
	Email string `json:"email"`
}

// AuthResponse is returned by every successful auth call
type AuthResponse struct {
	Message  string          `json:"message,omitempty"`
	User     *contracts.User `json:"user"`
	NextView view.View       `json:"next_view,omitempty"`
}

// Register creates an unverified account
// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := auth.ValidatePasswords(req.Password, req.ConfirmPassword); err != nil {
		h.respondAuthError(w, err)
		return
	}

	user, err := h.store.Register(r.Context(), req.Name, req.Email, req.Phone, req.Address, req.Password)
	if err != nil {
		h.respondAuthError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, AuthResponse{
		Message:  auth.MsgRegistered,
		User:     &user,
		NextView: view.Apply(view.Register, view.EventRegisterSucceeded, "", nil).To,
	})
}

// VerifyEmail simulates following the link sent by email
// POST /api/auth/verify-email
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req EmailRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.store.VerifyEmail(r.Context(), req.Email); err != nil {
		h.respondAuthError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		Message:  auth.MsgVerified,
		NextView: view.Login,
	})
}

// Login opens a session for matching credentials
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.store.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondAuthError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		Message:  auth.MsgLoggedIn,
		User:     &user,
		NextView: view.Apply(view.Login, view.EventLoginSucceeded, "", &user).To,
	})
}

// LoginGoogle runs the simulated external provider login
// POST /api/auth/login/google
func (h *AuthHandler) LoginGoogle(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.LoginWithExternalProvider(r.Context())
	if err != nil {
		h.logger.WithError(err).Warn("External login aborted")
		respondError(w, http.StatusInternalServerError, "Erro ao conectar com Google")
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		Message:  auth.MsgLoggedIn,
		User:     &user,
		NextView: view.Apply(view.Login, view.EventLoginSucceeded, "", &user).To,
	})
}

// Logout clears the session
// POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Logout(r.Context()); err != nil {
		h.respondAuthError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		NextView: view.Apply(view.Home, view.EventLoggedOut, "", nil).To,
	})
}

// ResetPassword reports whether a recovery link could be sent
// POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req EmailRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	msg, err := h.store.ResetPassword(r.Context(), req.Email)
	if err != nil {
		h.respondAuthError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{Message: msg})
}

// Me returns the session user, or null
// GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.CurrentUser(r.Context())
	if err != nil {
		h.respondAuthError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{User: user})
}

// RequireVerified lets a request through only for a logged-in, verified user
func (h *AuthHandler) RequireVerified(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := h.store.CurrentUser(r.Context())
		if err != nil {
			h.respondAuthError(w, err)
			return
		}

		t := view.Navigate(view.Home, view.Calculator, user)
		if t.Blocked {
			status := http.StatusForbidden
			code := "not_verified"
			if user == nil {
				status = http.StatusUnauthorized
				code = "login_required"
			}
			respondUserError(w, status, code, t.Message)
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

// respondAuthError maps store errors: validation 400, authentication 401, anything else 500
func (h *AuthHandler) respondAuthError(w http.ResponseWriter, err error) {
	switch {
	case auth.IsValidation(err):
		respondUserError(w, http.StatusBadRequest, errorCode(err), auth.Message(err))
	case auth.IsAuthentication(err):
		respondUserError(w, http.StatusUnauthorized, errorCode(err), auth.Message(err))
	default:
		h.logger.WithError(err).Error("Session store failure")
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

var errorCodes = []struct {
	err  error
	code string
}{
	{auth.ErrDuplicateEmail, "duplicate_email"},
	{auth.ErrPasswordTooShort, "password_too_short"},
	{auth.ErrPasswordMismatch, "password_mismatch"},
	{auth.ErrMissingField, "missing_field"},
	{auth.ErrEmailRequired, "email_required"},
	{auth.ErrInvalidCredentials, "invalid_credentials"},
	{auth.ErrEmailNotFound, "email_not_found"},
}

func errorCode(err error) string {
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "error"
}

type userKey struct{}

func withUser(ctx context.Context, user *contracts.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFrom returns the user attached by RequireVerified
func UserFrom(ctx context.Context) *contracts.User {
	user, _ := ctx.Value(userKey{}).(*contracts.User)
	return user
}
