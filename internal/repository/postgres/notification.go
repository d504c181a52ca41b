package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"borrowbay-backend/internal/domain"
	"borrowbay-backend/internal/logger"
	"borrowbay-backend/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

// Create inserts a notification; a repeated dedupe key is a no-op so
// at-least-once senders never double up a user's inbox.
func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `INSERT INTO notifications (user_id, type, content, related_id, dedupe_key, is_read, created_on)
	          VALUES ($1, $2, $3, $4, $5, FALSE, NOW())
	          ON CONFLICT (dedupe_key) DO NOTHING
	          RETURNING id`
	logger.DatabaseCall("INSERT", "notifications", "userID", n.UserID, "type", n.Type)

	err := r.db.QueryRowContext(ctx, query, n.UserID, n.Type, n.Content, n.RelatedID, n.DedupeKey).Scan(&n.ID)
	if err == sql.ErrNoRows {
		// Duplicate delivery; already in the inbox.
		logger.DatabaseResult("INSERT", 0, nil, "dedupeKey", n.DedupeKey)
		return nil
	}
	logger.DatabaseResult("INSERT", 1, err, "notificationID", n.ID)
	return err
}

func (r *notificationRepository) List(ctx context.Context, userID int64, limit, offset int64) ([]domain.Notification, int64, error) {
	var count int64
	countQuery := `SELECT count(*) FROM notifications WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, user_id, type, content, related_id, dedupe_key, is_read, created_on
	          FROM notifications WHERE user_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var createdOn time.Time
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Content, &n.RelatedID,
			&n.DedupeKey, &n.IsRead, &createdOn); err != nil {
			return nil, 0, err
		}
		n.CreatedOn = createdOn.Format(time.RFC3339)
		notes = append(notes, n)
	}
	return notes, count, rows.Err()
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID int64) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: notification %d for user %d", domain.ErrNotFound, id, userID)
	}
	return nil
}
