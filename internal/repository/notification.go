package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/family_locator/internal/models"
	"github.com/shenikar/family_locator/internal/service"
)

type NotificationRepository struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) service.NotificationRepository {
	return &NotificationRepository{db: db}
}

// Append добавляет уведомление в список пользователя
func (r *NotificationRepository) Append(ctx context.Context, n *models.NotificationRecord) error {
	query := `
		INSERT INTO notifications (id, user_id, type, message, sender_id, sender_email, distance_meters, read)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING created_at;
	`
	err := r.db.QueryRow(ctx, query,
		n.ID,
		n.UserID,
		n.Type,
		n.Message,
		n.SenderID,
		n.SenderEmail,
		n.DistanceMeters,
		n.Read,
	).Scan(&n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append notification: %w", err)
	}
	return nil
}

// ListByUser возвращает уведомления пользователя с пагинацией, новые первыми
func (r *NotificationRepository) ListByUser(ctx context.Context, uid string, page, pageSize int) ([]*models.NotificationRecord, error) {
	// рассчитываем смещение
	offset := (page - 1) * pageSize

	query := `
		SELECT
			id,
			user_id,
			type,
			message,
			sender_id,
			sender_email,
			distance_meters,
			read,
			created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.db.Query(ctx, query, uid, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]*models.NotificationRecord, 0)
	for rows.Next() {
		n := &models.NotificationRecord{}
		err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.Type,
			&n.Message,
			&n.SenderID,
			&n.SenderEmail,
			&n.DistanceMeters,
			&n.Read,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return notifications, nil
}
