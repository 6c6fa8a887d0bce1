package scheduler

import (
	"context"
	"fmt"
	"time"

	"visa_bulletin_chart/internal/app" // For PublishService interface

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const publishTimeout = 2 * time.Minute

type PublishScheduler struct {
	cronEngine      *cron.Cron
	publishService  app.PublishService
	logger          *logrus.Entry
	chatID          int64
	cronSpecPublish string
}

func NewPublishScheduler(
	publishService app.PublishService,
	logger *logrus.Entry,
	chatID int64,
	cronSpecPublish string, // e.g., "0 10 * * *" (10:00 AM daily)
) *PublishScheduler {
	return &PublishScheduler{
		cronEngine:      cron.New(cron.WithLocation(time.Local)), // Use server's local time for cron
		publishService:  publishService,
		logger:          logger,
		chatID:          chatID,
		cronSpecPublish: cronSpecPublish,
	}
}

// Start registers the publish job and starts the cron engine.
func (s *PublishScheduler) Start() error {
	s.logger.Info("Starting publish scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpecPublish, s.runPublish)
	if err != nil {
		return fmt.Errorf("could not add publish cron job %q: %w", s.cronSpecPublish, err)
	}

	s.cronEngine.Start()
	s.logger.WithField("cron_spec", s.cronSpecPublish).Info("Publish scheduler started.")
	return nil
}

func (s *PublishScheduler) runPublish() {
	s.logger.Info("Cron job triggered for chart publishing.")
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := s.publishService.PublishChart(ctx, s.chatID); err != nil {
		s.logger.WithError(err).Error("Error during scheduled chart publishing")
		return
	}
	s.logger.Info("Scheduled chart publishing finished.")
}

func (s *PublishScheduler) Stop() {
	s.logger.Info("Stopping publish scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()
	s.logger.Info("Publish scheduler gracefully stopped.")
}
