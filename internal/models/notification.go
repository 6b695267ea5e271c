package models

import "time"

type NotificationType string // Тип уведомления

const (
	NotificationInfo        NotificationType = "info"
	NotificationReminder    NotificationType = "donation-reminder"
	NotificationApproval    NotificationType = "approval"
	NotificationRejection   NotificationType = "rejection"
	NotificationSlotBooking NotificationType = "slot-booking"
)

// ReminderMessage - фиксированный текст напоминания о повторной донации.
const ReminderMessage = "You are now eligible to donate blood again! It's been 3 months since your last donation."

// Notification представляет уведомление пользователя.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	CreatedAt time.Time        `json:"createdAt"`
	Read      bool             `json:"read"`
}
