package services

import (
	"context"
	"errors"
	"time"

	"github.com/haripriyathati/bloodlink-connect-plus/internal/models"
	"github.com/haripriyathati/bloodlink-connect-plus/internal/repository"
)

// reminderCooldownMonths - календарных месяцев между донациями.
// reminderDebounceDays - окно, в котором повторное напоминание подавляется.
const (
	reminderCooldownMonths = 3
	reminderDebounceDays   = 7
)

type NotificationService struct {
	Repo   repository.NotificationRepository
	Offers repository.OfferRepository
	Users  repository.UserRepository
}

// NewNotificationService создаёт новый экземпляр NotificationService.
func NewNotificationService(repo repository.NotificationRepository, offers repository.OfferRepository, users repository.UserRepository) *NotificationService {
	return &NotificationService{Repo: repo, Offers: offers, Users: users}
}

// GetUserNotifications возвращает уведомления пользователя, новые первыми.
func (s *NotificationService) GetUserNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	if _, err := requireUser(ctx, s.Users, userID); err != nil {
		return nil, err
	}
	notifications, err := s.Repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, models.InternalError("failed to fetch notifications")
	}
	return notifications, nil
}

// MarkRead помечает уведомление прочитанным. Переход одностороний.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID string) error {
	err := s.Repo.MarkRead(ctx, notificationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.NotFoundError("notification not found")
		}
		return models.InternalError("failed to mark notification as read")
	}
	return nil
}

// ReminderScan проверяет, пора ли напомнить донору о повторной донации.
// Вызывается при каждой загрузке истории донора; окно в 7 дней защищает от
// дублей. Возвращает созданное уведомление или nil, если напоминать не нужно.
func (s *NotificationService) ReminderScan(ctx context.Context, donorID string) (*models.Notification, error) {
	latest, err := s.Offers.LatestApprovedByDonor(ctx, donorID)
	if err != nil {
		return nil, models.InternalError("failed to look up donation history")
	}
	if latest == nil {
		return nil, nil
	}

	eligibleDate := latest.OfferDate.AddDate(0, reminderCooldownMonths, 0)
	now := time.Now().UTC()
	if now.Before(eligibleDate) {
		return nil, nil
	}

	count, err := s.Repo.CountRecentReminders(ctx, donorID, now.AddDate(0, 0, -reminderDebounceDays))
	if err != nil {
		return nil, models.InternalError("failed to check existing reminders")
	}
	if count > 0 {
		return nil, nil
	}

	notification, err := s.Repo.Create(ctx, donorID, models.ReminderMessage, models.NotificationReminder)
	if err != nil {
		return nil, models.InternalError("failed to create reminder notification")
	}
	return notification, nil
}

// ReminderSweep запускает проверку напоминаний для всех доноров с одобренными
// предложениями. Возвращает количество созданных уведомлений.
func (s *NotificationService) ReminderSweep(ctx context.Context) (int, error) {
	donorIDs, err := s.Offers.ActiveDonorIDs(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, donorID := range donorIDs {
		notification, err := s.ReminderScan(ctx, donorID)
		if err != nil {
			return created, err
		}
		if notification != nil {
			created++
		}
	}
	return created, nil
}
