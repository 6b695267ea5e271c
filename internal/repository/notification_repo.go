package repository

import (
	"context"
	"time"

	"github.com/haripriyathati/bloodlink-connect-plus/internal/models"

	"github.com/google/uuid"
)

// NotificationRepository - интерфейс для работы с журналом уведомлений.
type NotificationRepository interface {
	Create(ctx context.Context, userID, message string, notificationType models.NotificationType) (*models.Notification, error)
	GetByUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id string) error
	CountRecentReminders(ctx context.Context, userID string, since time.Time) (int, error)
}

// PostgresNotificationRepository - реализация NotificationRepository для базы данных.
type PostgresNotificationRepository struct {
	DB DBTX
}

// NewPostgresNotificationRepository создает новый экземпляр PostgresNotificationRepository.
func NewPostgresNotificationRepository(db DBTX) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{DB: db}
}

// Create добавляет непрочитанное уведомление в журнал пользователя.
func (r *PostgresNotificationRepository) Create(ctx context.Context, userID, message string, notificationType models.NotificationType) (*models.Notification, error) {
	notification := models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Message:   message,
		Type:      notificationType,
		CreatedAt: time.Now().UTC(),
		Read:      false,
	}
	insertQuery := `INSERT INTO notification (id, user_id, message, type, created_at, read)
	                VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		notification.ID,
		notification.UserID,
		notification.Message,
		notification.Type,
		notification.CreatedAt,
		notification.Read)
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

// GetByUser возвращает уведомления пользователя, новые первыми.
func (r *PostgresNotificationRepository) GetByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	query := `SELECT id, user_id, message, type, created_at, read FROM notification
	          WHERE user_id = $1
	          ORDER BY created_at DESC, id DESC`

	rows, err := r.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Type, &n.CreatedAt, &n.Read); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

// MarkRead помечает уведомление прочитанным. Обратного перехода нет.
func (r *PostgresNotificationRepository) MarkRead(ctx context.Context, id string) error {
	tag, err := r.DB.Exec(ctx, `UPDATE notification SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountRecentReminders считает напоминания о донации, созданные после указанного времени.
func (r *PostgresNotificationRepository) CountRecentReminders(ctx context.Context, userID string, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM notification
	          WHERE user_id = $1 AND type = $2 AND created_at > $3`

	var count int
	err := r.DB.QueryRow(ctx, query, userID, models.NotificationReminder, since).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
