// internal/app/publish_service.go
package app

import (
	"bytes"
	"context"
	"fmt"

	domainTelegram "visa_bulletin_chart/internal/domain/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const chartCaption = "EB-2 visa bulletin: Final Action and Dates for Filing"

// PublishService defines the operations for sending the chart to a chat.
type PublishService interface {
	// PublishChart renders the current chart and sends it with the latest summary.
	PublishChart(ctx context.Context, chatID int64) error
}

// PublishServiceImpl implements the PublishService interface.
type PublishServiceImpl struct {
	charts         *ChartService
	telegramClient domainTelegram.Client
	logger         *logrus.Entry
}

func NewPublishServiceImpl(charts *ChartService, tc domainTelegram.Client, logger *logrus.Entry) *PublishServiceImpl {
	return &PublishServiceImpl{
		charts:         charts,
		telegramClient: tc,
		logger:         logger,
	}
}

func (s *PublishServiceImpl) PublishChart(ctx context.Context, chatID int64) error {
	logCtx := s.logger.WithField("chat_id", chatID)
	logCtx.Info("Publishing chart")

	var buf bytes.Buffer
	if err := s.charts.RenderPNG(ctx, &buf); err != nil {
		return fmt.Errorf("failed to render chart for chat %d: %w", chatID, err)
	}
	if err := s.telegramClient.SendPhoto(chatID, &buf, chartCaption); err != nil {
		logCtx.WithError(err).Error("Failed to send chart")
		return fmt.Errorf("failed to send chart to chat %d: %w", chatID, err)
	}

	summary, err := s.charts.LatestSummary(ctx)
	if err != nil {
		// The chart is already sent; a summary failure only logs.
		logCtx.WithError(err).Warn("No latest bulletin summary to send")
		return nil
	}
	if err := s.telegramClient.SendMessage(chatID, summary, &telebot.SendOptions{ParseMode: telebot.ModeDefault}); err != nil {
		logCtx.WithError(err).Error("Failed to send latest summary")
		return fmt.Errorf("failed to send summary to chat %d: %w", chatID, err)
	}

	logCtx.Info("Chart published")
	return nil
}
