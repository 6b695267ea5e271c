package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/haripriyathati/bloodlink-connect-plus/internal/models"
	"github.com/haripriyathati/bloodlink-connect-plus/internal/repository"
)

// ApprovalService - единственная точка, связывающая решение администратора
// с изменением склада и уведомлением пользователя. Три шага выполняются
// как одна логическая транзакция: частичное применение невозможно.
type ApprovalService struct {
	UoW   repository.UnitOfWork
	Users repository.UserRepository
}

// NewApprovalService создаёт новый экземпляр ApprovalService.
func NewApprovalService(uow repository.UnitOfWork, users repository.UserRepository) *ApprovalService {
	return &ApprovalService{UoW: uow, Users: users}
}

// DecideRequest применяет решение администратора к запросу на кровь.
// Одобрение списывает units со склада (с отсечением на нуле), отклонение
// склад не меняет. Уведомление пациенту создается в обоих случаях.
func (s *ApprovalService) DecideRequest(ctx context.Context, requestID, adminID string, decision models.RequestStatus, adminResponse string) (*models.BloodRequest, error) {
	if err := s.checkDecision(ctx, adminID, decision); err != nil {
		return nil, err
	}

	var updated *models.BloodRequest
	err := s.UoW.Do(ctx, func(r repository.Repositories) error {
		var err error
		updated, err = r.Requests.UpdateStatus(ctx, requestID, decision, adminResponse)
		if err != nil {
			return mapTransitionError(err, "blood request")
		}

		if decision == models.StatusApproved {
			if _, err := r.Stock.ApplyDelta(ctx, updated.BloodGroup, -updated.Units); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					// Фиксированная вселенная групп: отсутствие записи - нарушение инварианта.
					return models.InternalError(fmt.Sprintf("blood stock entry missing for group %s", updated.BloodGroup))
				}
				return models.InternalError("failed to update blood stock")
			}
		}

		message, notificationType := decisionNotification("blood request", decision, adminResponse)
		if _, err := r.Notifications.Create(ctx, updated.PatientID, message, notificationType); err != nil {
			return models.InternalError("failed to create decision notification")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DecideOffer применяет решение администратора к предложению донора.
// Одобрение пополняет склад ровно на units.
func (s *ApprovalService) DecideOffer(ctx context.Context, offerID, adminID string, decision models.RequestStatus, adminResponse string) (*models.DonationOffer, error) {
	if err := s.checkDecision(ctx, adminID, decision); err != nil {
		return nil, err
	}

	var updated *models.DonationOffer
	err := s.UoW.Do(ctx, func(r repository.Repositories) error {
		var err error
		updated, err = r.Offers.UpdateStatus(ctx, offerID, decision, adminResponse)
		if err != nil {
			return mapTransitionError(err, "donation offer")
		}

		if decision == models.StatusApproved {
			if _, err := r.Stock.ApplyDelta(ctx, updated.BloodGroup, updated.Units); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return models.InternalError(fmt.Sprintf("blood stock entry missing for group %s", updated.BloodGroup))
				}
				return models.InternalError("failed to update blood stock")
			}
		}

		message, notificationType := decisionNotification("donation offer", decision, adminResponse)
		if _, err := r.Notifications.Create(ctx, updated.DonorID, message, notificationType); err != nil {
			return models.InternalError("failed to create decision notification")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// checkDecision проверяет значение решения и роль вызывающего.
func (s *ApprovalService) checkDecision(ctx context.Context, adminID string, decision models.RequestStatus) error {
	if !models.TerminalStatus(decision) {
		return models.BadRequestError("decision must be approved or rejected")
	}
	if _, err := requireRole(ctx, s.Users, adminID, models.RoleAdmin); err != nil {
		return err
	}
	return nil
}

// mapTransitionError переводит ошибки репозитория в ответы для клиента.
// Повторное решение - жесткая ошибка, а не тихий no-op.
func mapTransitionError(err error, kind string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return models.NotFoundError(kind + " not found")
	}
	if errors.Is(err, repository.ErrNotPending) {
		return models.BadRequestError("decision already submitted for this " + kind)
	}
	return models.InternalError("internal server error")
}

// decisionNotification формирует текст и тип уведомления о решении.
func decisionNotification(kind string, decision models.RequestStatus, adminResponse string) (string, models.NotificationType) {
	message := strings.TrimSpace(fmt.Sprintf("Your %s has been %s. %s", kind, decision, adminResponse))
	if decision == models.StatusApproved {
		return message, models.NotificationApproval
	}
	return message, models.NotificationRejection
}
