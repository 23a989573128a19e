// Package cache holds the Redis-backed read models for the booking
// page: the active availability slots and lesson types. Lists are
// always replaced wholesale, never merged, so readers see either the
// previous snapshot or the new one.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/harmonylane/lessonbook/internal/domain"
)

const (
	slotsKey       = "schedule:slots"
	lessonTypesKey = "schedule:lesson_types"
)

type ScheduleCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewScheduleCache(client *redis.Client, ttl time.Duration) *ScheduleCache {
	return &ScheduleCache{client: client, ttl: ttl}
}

// GetSlots returns the cached slot snapshot, or (nil, false) on a miss.
func (c *ScheduleCache) GetSlots(ctx context.Context) ([]domain.SlotWithInstructor, bool, error) {
	raw, err := c.client.Get(ctx, slotsKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached slots: %w", err)
	}

	var slots []domain.SlotWithInstructor
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false, fmt.Errorf("decode cached slots: %w", err)
	}
	return slots, true, nil
}

// ReplaceSlots overwrites the whole slot snapshot.
func (c *ScheduleCache) ReplaceSlots(ctx context.Context, slots []domain.SlotWithInstructor) error {
	raw, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("encode slots: %w", err)
	}
	if err := c.client.Set(ctx, slotsKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache slots: %w", err)
	}
	return nil
}

func (c *ScheduleCache) GetLessonTypes(ctx context.Context) ([]domain.LessonType, bool, error) {
	raw, err := c.client.Get(ctx, lessonTypesKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached lesson types: %w", err)
	}

	var types []domain.LessonType
	if err := json.Unmarshal(raw, &types); err != nil {
		return nil, false, fmt.Errorf("decode cached lesson types: %w", err)
	}
	return types, true, nil
}

func (c *ScheduleCache) ReplaceLessonTypes(ctx context.Context, types []domain.LessonType) error {
	raw, err := json.Marshal(types)
	if err != nil {
		return fmt.Errorf("encode lesson types: %w", err)
	}
	if err := c.client.Set(ctx, lessonTypesKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache lesson types: %w", err)
	}
	return nil
}

// InvalidateSlots drops the slot snapshot; the next read reloads from
// the database. Called after an instructor adds or removes a window.
func (c *ScheduleCache) InvalidateSlots(ctx context.Context) error {
	return c.client.Del(ctx, slotsKey).Err()
}
