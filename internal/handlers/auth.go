package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/crucial707/expense-tracker/internal/captcha"
	"github.com/crucial707/expense-tracker/internal/metrics"
	"github.com/crucial707/expense-tracker/internal/repo"
	"github.com/crucial707/expense-tracker/internal/token"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor for password hashing.
const bcryptCost = 10

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	UserRepo *repo.UserRepo
	Captcha  *captcha.Verifier
	Tokens   *token.Issuer
}

// ==========================
// Register (no captcha; password stored as bcrypt hash)
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if input.Username == "" || input.Email == "" || input.Password == "" {
		JSONError(w, "All fields are required", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		slog.Error("register: hash password", "err", err)
		JSONError(w, "Registration failed", http.StatusInternalServerError)
		return
	}

	user, err := h.UserRepo.Create(r.Context(), input.Username, input.Email, string(hash))
	if err != nil {
		if e, ok := err.(*pq.Error); ok && e.Code == "23505" {
			JSONError(w, "Email already in use", http.StatusBadRequest)
			return
		}
		slog.Error("register: create user", "err", err)
		JSONError(w, "Registration failed", http.StatusInternalServerError)
		return
	}

	metrics.RecordRegistration()
	slog.Info("user registered", "user_id", user.ID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"message": "User registered successfully"})
}

// ==========================
// Login (captcha gated; failure wording never reveals whether the email exists)
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Captcha  string `json:"captcha"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if input.Email == "" || input.Password == "" {
		JSONError(w, "All fields are required", http.StatusBadRequest)
		return
	}
	if input.Captcha == "" {
		JSONError(w, "Captcha is required", http.StatusBadRequest)
		return
	}

	if err := h.Captcha.Verify(r.Context(), input.Captcha); err != nil {
		// Fail closed: an unreachable verification service rejects the login.
		slog.Warn("login: captcha rejected", "err", err)
		metrics.RecordLogin("captcha_failed")
		JSONError(w, "Captcha verification failed", http.StatusBadRequest)
		return
	}

	user, err := h.UserRepo.GetByEmail(r.Context(), input.Email)
	if err != nil {
		// Only a confirmed miss is a credentials failure; a store outage is not.
		if errors.Is(err, sql.ErrNoRows) {
			slog.Info("login failed: user not found", "email", input.Email)
			metrics.RecordLogin("bad_credentials")
			JSONError(w, "Invalid credentials", http.StatusBadRequest)
			return
		}
		slog.Error("login: get user by email", "err", err)
		metrics.RecordLogin("error")
		JSONError(w, "Login failed", http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			slog.Error("login: compare hash", "err", err)
		} else {
			slog.Info("login failed: wrong password", "user_id", user.ID)
		}
		metrics.RecordLogin("bad_credentials")
		JSONError(w, "Invalid credentials", http.StatusBadRequest)
		return
	}

	signed, err := h.Tokens.Issue(user.ID)
	if err != nil {
		slog.Error("login: sign token", "err", err)
		metrics.RecordLogin("error")
		JSONError(w, "Login failed", http.StatusInternalServerError)
		return
	}

	metrics.RecordLogin("success")
	slog.Info("login successful", "user_id", user.ID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token": signed,
		"user":  user,
	})
}
