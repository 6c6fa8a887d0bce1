// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"visa_bulletin_chart/internal/app"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// ChartProvider is the part of the chart service the commands need.
type ChartProvider interface {
	RenderPNG(ctx context.Context, w io.Writer) error
	LatestSummary(ctx context.Context) (string, error)
}

const helpText = "Available commands:\n\n" +
	"`/chart`\n - Final Action and Dates for Filing against the bulletin month.\n\n" +
	"`/latest`\n - Dates and gap of the most recent bulletin.\n\n" +
	"`/help`\n - Show this message."

func RegisterBotCommands(
	ctx context.Context,
	b *telebot.Bot,
	charts ChartProvider,
	baseLogger *logrus.Entry, // For contextual logging
) {
	handlerLogger := baseLogger.WithField("handler_group", "bot_commands")

	b.Handle("/start", func(c telebot.Context) error {
		logCommand(handlerLogger, c, "/start").Info("Processing /start command")
		return c.Send("Hi! I chart the EB-2 visa bulletin. Use /chart for the chart or /help for all commands.")
	})

	b.Handle("/help", func(c telebot.Context) error {
		logCommand(handlerLogger, c, "/help").Info("Processing /help command")
		return c.Send(helpText, &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	})

	b.Handle("/chart", func(c telebot.Context) error {
		return handleChart(ctx, c, charts, logCommand(handlerLogger, c, "/chart"))
	})

	b.Handle("/latest", func(c telebot.Context) error {
		return handleLatest(ctx, c, charts, logCommand(handlerLogger, c, "/latest"))
	})
}

func handleChart(ctx context.Context, c telebot.Context, charts ChartProvider, logCtx *logrus.Entry) error {
	logCtx.Info("Processing /chart command")

	var buf bytes.Buffer
	if err := charts.RenderPNG(ctx, &buf); err != nil {
		logCtx.WithError(err).Error("Error rendering chart for /chart command")
		return c.Send("Could not draw the chart right now. Please try again later.")
	}
	return c.Send(&telebot.Photo{File: telebot.FromReader(&buf)})
}

func handleLatest(ctx context.Context, c telebot.Context, charts ChartProvider, logCtx *logrus.Entry) error {
	logCtx.Info("Processing /latest command")

	summary, err := charts.LatestSummary(ctx)
	if err != nil {
		if errors.Is(err, app.ErrNoBulletins) {
			logCtx.Info("No bulletins available")
			return c.Send("No bulletins are available yet.")
		}
		logCtx.WithError(err).Error("Error building summary for /latest command")
		return c.Send("Could not read the bulletin data. Please try again later.")
	}
	return c.Send(strings.TrimSpace(summary))
}

func logCommand(base *logrus.Entry, c telebot.Context, command string) *logrus.Entry {
	logCtx := base.WithField("command", command)
	if c.Sender() != nil {
		logCtx = logCtx.WithField("sender_id", c.Sender().ID)
	}
	return logCtx
}
