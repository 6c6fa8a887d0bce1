package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"visa_bulletin_chart/internal/app"
	"visa_bulletin_chart/internal/infra/chart"
	"visa_bulletin_chart/internal/infra/config"
	"visa_bulletin_chart/internal/infra/dataset"
	"visa_bulletin_chart/internal/infra/logger"
	"visa_bulletin_chart/internal/infra/scheduler"
	"visa_bulletin_chart/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func main() {
	fmt.Println("Visa Bulletin Chart starting...")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load application configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg)
	mainLogger := logger.Component("main")
	mainLogger.WithFields(logrus.Fields{
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
		"dataset":     cfg.DatasetPath,
	}).Info("Configuration loaded")

	chartOpts, err := chart.AxisBounds(cfg.ChartAxisMin, cfg.ChartAxisMax, cfg.ChartMarkerDate)
	if err != nil {
		mainLogger.WithError(err).Fatal("Invalid chart bounds")
	}
	chartOpts.Width = cfg.ChartWidth
	chartOpts.Height = cfg.ChartHeight

	source := dataset.NewFileSource(cfg.DatasetPath, logger.Component("dataset"))
	renderer := chart.NewRenderer(chartOpts)
	chartService := app.NewChartService(source, renderer, chart.Tooltip, logger.Component("chart_service"))
	mainLogger.Info("Chart service initialized.")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !cfg.BotEnabled() {
		if err := renderOnce(ctx, chartService, cfg.ChartOutputPath); err != nil {
			mainLogger.WithError(err).Fatal("Could not render chart")
		}
		mainLogger.WithField("output", cfg.ChartOutputPath).Info("Chart written. Set TELEGRAM_TOKEN to run the bot.")
		return
	}

	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			entry := logger.Component("telebot").WithError(err)
			if c != nil && c.Sender() != nil && c.Chat() != nil {
				entry = entry.WithFields(logrus.Fields{"message": c.Text(), "sender_id": c.Sender().ID, "chat_id": c.Chat().ID})
			}
			entry.Error("Telegram handler error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not create Telegram bot")
	}

	telegram.RegisterBotCommands(ctx, bot, chartService, logger.Component("telegram"))
	mainLogger.Info("Bot command handlers registered.")

	publishService := app.NewPublishServiceImpl(chartService, telegram.NewTelebotAdapter(bot), logger.Component("publish_service"))
	publishScheduler := scheduler.NewPublishScheduler(publishService, logger.Component("scheduler"), cfg.TelegramChatID, cfg.CronSpecPublish)
	if err := publishScheduler.Start(); err != nil {
		mainLogger.WithError(err).Fatal("Could not start publish scheduler")
	}

	mainLogger.Info("Application setup complete. Bot and Scheduler are starting...")

	// Start bot in a goroutine so it doesn't block graceful shutdown handling
	go bot.Start()

	<-ctx.Done()

	mainLogger.Info("Shutting down application...")
	publishScheduler.Stop()
	bot.Stop()
	mainLogger.Info("Application shut down gracefully.")
}

func renderOnce(ctx context.Context, charts *app.ChartService, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := charts.RenderPNG(ctx, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
