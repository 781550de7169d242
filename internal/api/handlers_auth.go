// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/cinevault/internal/auth"
	"github.com/tomtom215/cinevault/internal/database"
	"github.com/tomtom215/cinevault/internal/logging"
	"github.com/tomtom215/cinevault/internal/metrics"
	"github.com/tomtom215/cinevault/internal/models"
	"github.com/tomtom215/cinevault/internal/validation"
)

// Signup creates a user with role "user". It does not log the user in.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondDecodeError(w, r, err)
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if verr := validation.ValidateStruct(&req); verr != nil {
		metrics.RecordAuthAttempt("signup", false)
		respondValidationError(w, verr)
		return
	}
	if err := auth.CheckPasswordPolicy(req.Password); err != nil {
		metrics.RecordAuthAttempt("signup", false)
		respondFieldError(w, "password", err.Error())
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "Failed to create account", err)
		return
	}

	user, err := h.db.CreateUser(r.Context(), &models.User{
		Username:     req.Username,
		Email:        req.Email,
		Role:         models.RoleUser,
		PasswordHash: hash,
	})
	if err != nil {
		metrics.RecordAuthAttempt("signup", false)
		if errors.Is(err, database.ErrDuplicate) {
			respondError(w, r, http.StatusConflict, CodeConflict, "Username or email already in use", nil)
			return
		}
		respondStoreError(w, r, err, "User")
		return
	}

	metrics.RecordAuthAttempt("signup", true)
	logging.Ctx(r.Context()).Info().Str("user_id", user.ID).Str("username", user.Username).Msg("User signed up")

	respondJSON(w, http.StatusCreated, "Account created successfully! Please login with your credentials.",
		map[string]interface{}{"user": user})
}

// Login verifies credentials and returns a JWT. The token is also set as an
// HttpOnly cookie for browser clients.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondDecodeError(w, r, err)
		return
	}
	req.EmailOrUsername = strings.TrimSpace(req.EmailOrUsername)

	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, verr)
		return
	}

	user, err := h.db.GetUserByLogin(r.Context(), req.EmailOrUsername)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		respondStoreError(w, r, err, "User")
		return
	}
	if user == nil || h.hasher.Verify(user.PasswordHash, req.Password) != nil {
		metrics.RecordAuthAttempt("login", false)
		logging.Ctx(r.Context()).Warn().
			Str("login", sanitizeLogValue(req.EmailOrUsername)).
			Msg("Login failed")
		respondError(w, r, http.StatusUnauthorized, CodeUnauthorized, "Invalid credentials", nil)
		return
	}

	token, err := h.jwtManager.GenerateToken(user)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "Failed to issue token", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.jwtManager.Timeout().Seconds()),
		HttpOnly: true,
		Secure:   h.config.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})

	metrics.RecordAuthAttempt("login", true)
	logging.Ctx(r.Context()).Info().Str("user_id", user.ID).Msg("User logged in")

	respondJSON(w, http.StatusOK, "Login successful", map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Me returns the authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, CodeUnauthorized, "Authentication required", nil)
		return
	}

	user, err := h.db.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		respondStoreError(w, r, err, "User")
		return
	}
	respondJSON(w, http.StatusOK, "", map[string]interface{}{"user": user})
}

// respondFieldError sends a VALIDATION_ERROR naming a single field.
func respondFieldError(w http.ResponseWriter, field, message string) {
	writeJSON(w, http.StatusBadRequest, &models.APIResponse{
		Status:  models.StatusError,
		Message: message,
		Error: &models.APIError{
			Code:    CodeValidation,
			Message: message,
			Details: map[string]interface{}{"field": field},
		},
	})
}
