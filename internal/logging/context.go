// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	correlationIDKey
	userIDKey
)

// ctxFields lists the context values copied onto every Ctx logger, in
// output order.
var ctxFields = []struct {
	key  ctxKey
	name string
}{
	{requestIDKey, "request_id"},
	{correlationIDKey, "correlation_id"},
	{userIDKey, "user_id"},
}

// GenerateRequestID returns a full UUID.
func GenerateRequestID() string {
	return uuid.NewString()
}

// GenerateCorrelationID returns a short ID for grepping related lines.
func GenerateCorrelationID() string {
	return uuid.NewString()[:8]
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// ContextWithUserID tags ctx with the authenticated user. The auth
// middleware sets it once the token is verified.
func ContextWithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string { return stringValue(ctx, requestIDKey) }
func CorrelationIDFromContext(ctx context.Context) string { return stringValue(ctx, correlationIDKey) }
func UserIDFromContext(ctx context.Context) string { return stringValue(ctx, userIDKey) }

func stringValue(ctx context.Context, key ctxKey) string {
	s, _ := ctx.Value(key).(string)
	return s
}

// Ctx returns the global logger with request_id, correlation_id and user_id
// attached when ctx carries them.
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("Upsert failed")
func Ctx(ctx context.Context) *zerolog.Logger {
	l := CtxWith(ctx).Logger()
	return &l
}

// CtxWith is Ctx for callers that add more fields before building.
func CtxWith(ctx context.Context) zerolog.Context {
	c := With()
	for _, f := range ctxFields {
		if v := stringValue(ctx, f.key); v != "" {
			c = c.Str(f.name, v)
		}
	}
	return c
}

// WithComponent returns a child logger tagged with component.
func WithComponent(component string) zerolog.Logger {
	return With().Str("component", component).Logger()
}
