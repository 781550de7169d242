// CineVault - Movie Catalog and Bulk Ingestion API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinevault

package services

import (
	"context"
	"time"

	"github.com/tomtom215/cinevault/internal/logging"
)

// ExpiringCache is satisfied by *cache.LRU.
type ExpiringCache interface {
	CleanupExpired() int
}

// CacheJanitorService periodically drops expired cache entries so memory
// held by entries that are never read again is released.
type CacheJanitorService struct {
	cache    ExpiringCache
	interval time.Duration
}

// NewCacheJanitorService sweeps c every interval. A non-positive interval
// means one minute.
func NewCacheJanitorService(c ExpiringCache, interval time.Duration) *CacheJanitorService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheJanitorService{cache: c, interval: interval}
}

// Serve implements suture.Service.
func (s *CacheJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if removed := s.cache.CleanupExpired(); removed > 0 {
				logging.Debug().Int("removed", removed).Msg("Expired cache entries dropped")
			}
		}
	}
}

func (s *CacheJanitorService) String() string {
	return "cache-janitor"
}
