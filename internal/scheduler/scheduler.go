// Package scheduler runs the periodic alert scans. Alerts themselves are
// evaluated at query time by the inventory and health endpoints; the scans
// here only turn current alert states into stored notifications for the
// roles that act on them.
package scheduler

import (
	"fmt"

	"poultry-backend/internal/database"
	"poultry-backend/internal/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

func New(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:   cron.New(),
		logger: logger,
	}
}

// Start registers the alert scan on the given cron schedule and starts the
// scheduler in its own goroutine.
func (s *Scheduler) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.RunAlertScan); err != nil {
		return fmt.Errorf("invalid alert scan schedule %q: %w", schedule, err)
	}
	s.cron.Start()
	s.logger.Info("alert scan scheduled", zap.String("schedule", schedule))
	return nil
}

// Stop halts the scheduler and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// RunAlertScan evaluates both alert predicates and stores notifications for
// every Admin and Manager. A notification is skipped while an identical
// unread one exists, so repeated scans do not pile up duplicates.
func (s *Scheduler) RunAlertScan() {
	var recipients []models.User
	if err := database.DB.
		Where("role IN ?", []models.UserRole{models.RoleAdmin, models.RoleManager}).
		Find(&recipients).Error; err != nil {
		s.logger.Error("alert scan: could not load recipients", zap.Error(err))
		return
	}
	if len(recipients) == 0 {
		return
	}

	lowStock := s.scanLowStock(recipients)
	health := s.scanHealthAlerts(recipients)
	s.logger.Info("alert scan finished",
		zap.Int("low_stock_items", lowStock),
		zap.Int("health_alerts", health))
}

func (s *Scheduler) scanLowStock(recipients []models.User) int {
	var items []models.InventoryItem
	if err := database.DB.Where("quantity <= minimum_stock").Find(&items).Error; err != nil {
		s.logger.Error("alert scan: low-stock query failed", zap.Error(err))
		return 0
	}

	for _, item := range items {
		msg := fmt.Sprintf("Low stock: %s is at %.2f %s (minimum %.2f %s)",
			item.ItemName, item.Quantity, item.Unit, item.MinimumStock, item.Unit)
		s.notify(recipients, msg, models.NotifyWarning)
	}
	return len(items)
}

func (s *Scheduler) scanHealthAlerts(recipients []models.User) int {
	var records []models.HealthRecord
	if err := database.DB.Preload("Batch").
		Where("status IN ?", models.AlertHealthStatuses).
		Find(&records).Error; err != nil {
		s.logger.Error("alert scan: health query failed", zap.Error(err))
		return 0
	}

	for _, rec := range records {
		breed := "unknown"
		if rec.Batch != nil {
			breed = rec.Batch.Breed
		}
		msg := fmt.Sprintf("Health alert: batch #%d (%s) is %s", rec.BatchID, breed, rec.Status)
		s.notify(recipients, msg, models.NotifyAlert)
	}
	return len(records)
}

func (s *Scheduler) notify(recipients []models.User, message string, typ models.NotificationType) {
	for _, u := range recipients {
		var existing int64
		database.DB.Model(&models.Notification{}).
			Where("user_id = ? AND message = ? AND is_read = ?", u.ID, message, false).
			Count(&existing)
		if existing > 0 {
			continue
		}

		n := models.Notification{
			UserID:  u.ID,
			Message: message,
			Type:    typ,
		}
		if err := database.DB.Create(&n).Error; err != nil {
			s.logger.Error("alert scan: could not store notification",
				zap.Uint("user_id", u.ID), zap.Error(err))
		}
	}
}
