package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/family_locator/internal/models"
	"github.com/shenikar/family_locator/internal/realtime"
)

const locationCacheTTL = 5 * time.Minute

type LocationRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	hub         *realtime.Hub
}

func NewLocationRepository(db *pgxpool.Pool, redisClient *redis.Client, hub *realtime.Hub) *LocationRepository {
	return &LocationRepository{
		db:          db,
		redisClient: redisClient,
		hub:         hub,
	}
}

// SaveLocation записывает последнюю позицию пользователя и рассылает ее подписчикам
func (r *LocationRepository) SaveLocation(ctx context.Context, record *models.LocationRecord) error {
	if record.Position == nil {
		return fmt.Errorf("location record for %s has no position", record.UserID)
	}

	query := `
		INSERT INTO locations (uid, email, location, timestamp_millis, last_updated)
		VALUES ($1, $2, ST_SetSRID(ST_MakePoint($3, $4), 4326), $5, $6)
		ON CONFLICT (uid) DO UPDATE SET
			email = EXCLUDED.email,
			location = EXCLUDED.location,
			timestamp_millis = EXCLUDED.timestamp_millis,
			last_updated = EXCLUDED.last_updated;
	`
	_, err := r.db.Exec(ctx, query,
		record.UserID,
		record.Email,
		record.Position.Longitude,
		record.Position.Latitude,
		record.Position.TimestampMillis,
		record.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to save location: %w", err)
	}

	if err := r.setLocationCache(ctx, record); err != nil {
		return err
	}
	return r.hub.Publish(ctx, realtime.LocationChannel(record.UserID), record)
}

// GetLocation возвращает последнюю позицию пользователя или nil, если ее нет
func (r *LocationRepository) GetLocation(ctx context.Context, uid string) (*models.LocationRecord, error) {
	cached, err := r.getLocationFromCache(ctx, uid)
	if err == nil && cached != nil {
		return cached, nil
	}

	record := &models.LocationRecord{Position: &models.Position{}}
	query := `
		SELECT
			uid,
			email,
			ST_Y(location::geometry) as latitude,
			ST_X(location::geometry) as longitude,
			timestamp_millis,
			last_updated
		FROM locations
		WHERE uid = $1 AND location IS NOT NULL;
	`
	err = r.db.QueryRow(ctx, query, uid).Scan(
		&record.UserID,
		&record.Email,
		&record.Position.Latitude,
		&record.Position.Longitude,
		&record.Position.TimestampMillis,
		&record.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	// Ошибка кэша не мешает вернуть данные из бд
	_ = r.setLocationCache(ctx, record)
	return record, nil
}

func (r *LocationRepository) WatchLocation(ctx context.Context, uid string) (realtime.Subscription[models.LocationRecord], error) {
	return realtime.Watch[models.LocationRecord](ctx, r.hub, realtime.LocationChannel(uid))
}

func (r *LocationRepository) getLocationFromCache(ctx context.Context, uid string) (*models.LocationRecord, error) {
	val, err := r.redisClient.Get(ctx, locationCacheKey(uid)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get location from cache: %w", err)
	}

	record := &models.LocationRecord{}
	if err := json.Unmarshal(val, record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal location from cache: %w", err)
	}
	return record, nil
}

func (r *LocationRepository) setLocationCache(ctx context.Context, record *models.LocationRecord) error {
	val, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal location for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, locationCacheKey(record.UserID), val, locationCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set location in cache: %w", err)
	}
	return nil
}

func locationCacheKey(uid string) string {
	return fmt.Sprintf("location:%s", uid)
}
