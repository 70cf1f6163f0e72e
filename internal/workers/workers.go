// Package workers runs periodic maintenance in the background.
package workers

import (
	"context"
	"time"

	"collegeskills_backend/internal/logger"
	"collegeskills_backend/internal/repositories"
)

const (
	projectExpiryInterval    = time.Hour
	notificationSweepEvery   = 24 * time.Hour
	notificationRetainPeriod = 30 * 24 * time.Hour
)

// ProjectExpiryWorker cancels open projects whose deadline has passed
// without a funded proposal.
type ProjectExpiryWorker struct {
	projectRepo repositories.ProjectRepository
}

func NewProjectExpiryWorker(projectRepo repositories.ProjectRepository) *ProjectExpiryWorker {
	return &ProjectExpiryWorker{projectRepo: projectRepo}
}

func (w *ProjectExpiryWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(projectExpiryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			expired, err := w.projectRepo.ExpireOpenBefore(time.Now())
			if err != nil {
				logger.WorkerLog("project-expiry", "sweep failed", "error", err)
				continue
			}
			if expired > 0 {
				logger.WorkerLog("project-expiry", "cancelled overdue projects", "count", expired)
			}
		}
	}
}

// NotificationCleanupWorker deletes read notifications past the
// retention window.
type NotificationCleanupWorker struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationCleanupWorker(notificationRepo repositories.NotificationRepository) *NotificationCleanupWorker {
	return &NotificationCleanupWorker{notificationRepo: notificationRepo}
}

func (w *NotificationCleanupWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(notificationSweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-notificationRetainPeriod)
			deleted, err := w.notificationRepo.DeleteReadOlderThan(cutoff)
			if err != nil {
				logger.WorkerLog("notification-cleanup", "sweep failed", "error", err)
				continue
			}
			if deleted > 0 {
				logger.WorkerLog("notification-cleanup", "removed old notifications", "count", deleted)
			}
		}
	}
}
