package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/family_locator/internal/models"
	"github.com/shenikar/family_locator/internal/realtime"
	"github.com/shenikar/family_locator/internal/service"
)

const profileColumns = `
	uid,
	email,
	display_name,
	followers,
	following,
	share_location_with,
	pending_location_requests,
	location_requests_sent,
	created_at,
	updated_at`

// appendOnce добавляет $2 в конец массива, если его там еще нет. Порядок существующих элементов сохраняется.
func appendOnce(column string) string {
	return fmt.Sprintf("CASE WHEN $2 = ANY(%[1]s) THEN %[1]s ELSE array_append(%[1]s, $2) END", column)
}

type ProfileRepository struct {
	db  *pgxpool.Pool
	hub *realtime.Hub
}

func NewProfileRepository(db *pgxpool.Pool, hub *realtime.Hub) service.ProfileRepository {
	return &ProfileRepository{
		db:  db,
		hub: hub,
	}
}

// Create создает профиль пользователя
func (r *ProfileRepository) Create(ctx context.Context, profile *models.UserProfile) error {
	query := `
		INSERT INTO users (uid, email, display_name, followers, following, share_location_with, pending_location_requests, location_requests_sent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (uid) DO NOTHING
		RETURNING created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		profile.UID,
		profile.Email,
		profile.DisplayName,
		profile.Followers,
		profile.Following,
		profile.ShareLocationWith,
		profile.PendingLocationRequests,
		profile.LocationRequestsSent,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		// Профиль уже создан параллельным запросом
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetByID возвращает профиль по uid
func (r *ProfileRepository) GetByID(ctx context.Context, uid string) (*models.UserProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM users WHERE uid = $1;`

	profile, err := scanProfile(r.db.QueryRow(ctx, query, uid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("profile %s: %w", uid, models.ErrProfileNotFound)
		}
		return nil, fmt.Errorf("failed to get profile by id: %w", err)
	}
	return profile, nil
}

// FindByEmail ищет профили по точному совпадению email
func (r *ProfileRepository) FindByEmail(ctx context.Context, email string) ([]*models.UserProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM users WHERE email = $1 ORDER BY created_at;`

	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find profiles by email: %w", err)
	}
	defer rows.Close()

	profiles := make([]*models.UserProfile, 0)
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return profiles, nil
}

// AddFollow: uid начинает следить за target, оба делятся геопозицией друг с другом
func (r *ProfileRepository) AddFollow(ctx context.Context, uid, target string) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := execOne(ctx, tx, `
			UPDATE users SET
				following = ` + appendOnce("following") + `,
				share_location_with = ` + appendOnce("share_location_with") + `,
				updated_at = NOW()
			WHERE uid = $1;`, uid, target); err != nil {
			return err
		}
		return execOne(ctx, tx, `
			UPDATE users SET
				followers = ` + appendOnce("followers") + `,
				share_location_with = ` + appendOnce("share_location_with") + `,
				updated_at = NOW()
			WHERE uid = $1;`, target, uid)
	})
}

// RemoveFollow отменяет подписку и взаимный обмен геопозицией
func (r *ProfileRepository) RemoveFollow(ctx context.Context, uid, target string) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := execOne(ctx, tx, `
			UPDATE users SET
				following = array_remove(following, $2),
				share_location_with = array_remove(share_location_with, $2),
				updated_at = NOW()
			WHERE uid = $1;`, uid, target); err != nil {
			return err
		}
		return execOne(ctx, tx, `
			UPDATE users SET
				followers = array_remove(followers, $2),
				share_location_with = array_remove(share_location_with, $2),
				updated_at = NOW()
			WHERE uid = $1;`, target, uid)
	})
}

// AddLocationRequest сохраняет запрос uid на доступ к геопозиции target
func (r *ProfileRepository) AddLocationRequest(ctx context.Context, uid, target string) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := execOne(ctx, tx, `
			UPDATE users SET
				pending_location_requests = ` + appendOnce("pending_location_requests") + `,
				updated_at = NOW()
			WHERE uid = $1;`, target, uid); err != nil {
			return err
		}
		return execOne(ctx, tx, `
			UPDATE users SET
				location_requests_sent = ` + appendOnce("location_requests_sent") + `,
				updated_at = NOW()
			WHERE uid = $1;`, uid, target)
	})
}

// AcceptLocationRequest: uid принимает запрос requester и начинает делиться с ним геопозицией
func (r *ProfileRepository) AcceptLocationRequest(ctx context.Context, uid, requester string) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := execOne(ctx, tx, `
			UPDATE users SET
				pending_location_requests = array_remove(pending_location_requests, $2),
				share_location_with = ` + appendOnce("share_location_with") + `,
				updated_at = NOW()
			WHERE uid = $1;`, uid, requester); err != nil {
			return err
		}
		return execOne(ctx, tx, `
			UPDATE users SET
				location_requests_sent = array_remove(location_requests_sent, $2),
				share_location_with = ` + appendOnce("share_location_with") + `,
				updated_at = NOW()
			WHERE uid = $1;`, requester, uid)
	})
}

// RejectLocationRequest удаляет запрос у обеих сторон
func (r *ProfileRepository) RejectLocationRequest(ctx context.Context, uid, requester string) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := execOne(ctx, tx, `
			UPDATE users SET
				pending_location_requests = array_remove(pending_location_requests, $2),
				updated_at = NOW()
			WHERE uid = $1;`, uid, requester); err != nil {
			return err
		}
		return execOne(ctx, tx, `
			UPDATE users SET
				location_requests_sent = array_remove(location_requests_sent, $2),
				updated_at = NOW()
			WHERE uid = $1;`, requester, uid)
	})
}

// PublishProfile рассылает актуальный профиль подписчикам канала profiles:{uid}
func (r *ProfileRepository) PublishProfile(ctx context.Context, uid string) error {
	profile, err := r.GetByID(ctx, uid)
	if err != nil {
		return err
	}
	return r.hub.Publish(ctx, realtime.ProfileChannel(uid), profile)
}

func (r *ProfileRepository) WatchProfile(ctx context.Context, uid string) (realtime.Subscription[models.UserProfile], error) {
	return realtime.Watch[models.UserProfile](ctx, r.hub, realtime.ProfileChannel(uid))
}

// execOne выполняет UPDATE и проверяет, что профиль существует
func execOne(ctx context.Context, tx pgx.Tx, query string, uid, other string) error {
	cmdTag, err := tx.Exec(ctx, query, uid, other)
	if err != nil {
		return fmt.Errorf("failed to update profile %s: %w", uid, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("profile %s: %w", uid, models.ErrProfileNotFound)
	}
	return nil
}

func scanProfile(row pgx.Row) (*models.UserProfile, error) {
	profile := &models.UserProfile{}
	err := row.Scan(
		&profile.UID,
		&profile.Email,
		&profile.DisplayName,
		&profile.Followers,
		&profile.Following,
		&profile.ShareLocationWith,
		&profile.PendingLocationRequests,
		&profile.LocationRequestsSent,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return profile, nil
}
