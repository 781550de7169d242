// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/cinevault/internal/config"
	"github.com/tomtom215/cinevault/internal/models"
)

const testSecret = "this_is_a_very_long_secret_key_with_32_plus_characters"

func newTestJWTManager(t *testing.T) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(&config.SecurityConfig{JWTSecret: testSecret, SessionTimeout: time.Hour})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	return m
}

var testUser = &models.User{ID: "u-1", Username: "alice", Role: models.RoleAdmin}

func TestNewJWTManager(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *config.SecurityConfig
		wantTimeout time.Duration
	}{
		{"configured secret", &config.SecurityConfig{JWTSecret: testSecret, SessionTimeout: 2 * time.Hour}, 2 * time.Hour},
		{"ephemeral secret", &config.SecurityConfig{}, 7 * 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewJWTManager(tt.cfg)
			if err != nil {
				t.Fatalf("NewJWTManager() error = %v", err)
			}
			if len(m.secret) < 32 {
				t.Errorf("secret length = %d, want >= 32", len(m.secret))
			}
			if m.Timeout() != tt.wantTimeout {
				t.Errorf("Timeout() = %v, want %v", m.Timeout(), tt.wantTimeout)
			}
		})
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := newTestJWTManager(t)

	token, err := m.GenerateToken(testUser)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != "u-1" || claims.Username != "alice" || !claims.IsAdmin() {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Subject != "u-1" || claims.Issuer != issuer {
		t.Errorf("registered claims = %+v", claims.RegisteredClaims)
	}
}

func TestValidateToken_Rejects(t *testing.T) {
	m := newTestJWTManager(t)
	good, err := m.GenerateToken(testUser)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	other, _ := NewJWTManager(&config.SecurityConfig{JWTSecret: strings.Repeat("x", 40)})
	foreign, _ := other.GenerateToken(testUser)

	expired := newTestJWTManager(t)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, _ := expired.GenerateToken(testUser)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "u-1", RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer}})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	noUser := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Username: "x", RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer}})
	anonymous, _ := noUser.SignedString([]byte(testSecret))

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"tampered", good[:len(good)-2] + "xx"},
		{"wrong secret", foreign},
		{"expired", stale},
		{"alg none", unsigned},
		{"missing user id", anonymous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.ValidateToken(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}
