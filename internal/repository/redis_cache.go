package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/crewdesk/crewdesk/internal/domain"
)

const dashboardSummaryKey = "dashboard:summary"

// RedisCacheRepository implements domain.CacheRepository using Redis
type RedisCacheRepository struct {
	client *redis.Client
}

// NewRedisCacheRepository creates a new Redis cache repository
func NewRedisCacheRepository(client *redis.Client) *RedisCacheRepository {
	return &RedisCacheRepository{
		client: client,
	}
}

// GetDashboardSummary returns the cached summary, or nil on a cache miss.
func (r *RedisCacheRepository) GetDashboardSummary(ctx context.Context) (*domain.DashboardSummary, error) {
	data, err := r.client.Get(ctx, dashboardSummaryKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get cached dashboard summary: %w", err)
	}

	var summary domain.DashboardSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached summary: %w", err)
	}
	return &summary, nil
}

// SetDashboardSummary caches the summary with a TTL.
func (r *RedisCacheRepository) SetDashboardSummary(ctx context.Context, summary *domain.DashboardSummary, ttl time.Duration) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	if err := r.client.Set(ctx, dashboardSummaryKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache dashboard summary: %w", err)
	}
	return nil
}

// InvalidateDashboard drops the cached summary so the next read recomputes.
func (r *RedisCacheRepository) InvalidateDashboard(ctx context.Context) error {
	if err := r.client.Del(ctx, dashboardSummaryKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate dashboard cache: %w", err)
	}
	return nil
}
