package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/haripriyathati/bloodlink-connect-plus/internal/services"
)

const sweepTimeout = 2 * time.Minute

// StartDailyReminderScheduler запускает ежедневный обход доноров
// с напоминаниями о возможности новой сдачи крови.
func StartDailyReminderScheduler(notifications *services.NotificationService, logger *log.Logger) *cron.Cron {
	c := cron.New()

	// Runs every day at 00:05 AM
	_, err := c.AddFunc("5 0 * * *", func() {
		logger.Println("Running daily donation reminder sweep...")
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()

		created, err := notifications.ReminderSweep(ctx)
		if err != nil {
			logger.Println("reminder sweep failed:", err)
			return
		}
		logger.Printf("reminder sweep finished, created %d notifications", created)
	})
	if err != nil {
		logger.Println("failed to schedule reminder sweep:", err)
	}

	c.Start()
	return c
}
