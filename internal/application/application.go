package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mymmrac/telego"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gifts_buyer/internal/config"
	service "gifts_buyer/internal/domain/service/gift"
	"gifts_buyer/internal/i18n"
	"gifts_buyer/internal/infrastructure/notifier"
	"gifts_buyer/internal/infrastructure/persistence"
	"gifts_buyer/internal/infrastructure/telegram"
	"gifts_buyer/internal/metrics"
	"gifts_buyer/internal/transport/bot"
	"gifts_buyer/internal/transport/bot/handler"
	"gifts_buyer/internal/worker"
	"gifts_buyer/pkg/application/connectors"
	"gifts_buyer/pkg/application/modules"
	"gifts_buyer/pkg/contextx"
	"gifts_buyer/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const (
	Name = "gifts_buyer"

	clientRestartDelay = 5 * time.Second
)

type snapshotStore interface {
	service.SnapshotStore
	Size(ctx context.Context) (int, error)
}

// Run wires every component and blocks until ctx is done or a module fails.
func Run(ctx context.Context, cfg config.Config, version string) error {
	tr, err := i18n.New(cfg.Gifts.Language)
	if err != nil {
		return fmt.Errorf("i18n.New: %w", err)
	}

	m := metrics.New()

	client, err := telegram.NewClient(cfg.Telegram, gotdLogger(cfg.Observability.LogLevel))
	if err != nil {
		return fmt.Errorf("telegram.NewClient: %w", err)
	}

	redisConnector := &connectors.Redis{
		Address:        cfg.Storage.Redis.Addr,
		Username:       cfg.Storage.Redis.Username,
		Password:       cfg.Storage.Redis.Password,
		DatabaseNumber: cfg.Storage.Redis.DB,
	}
	defer redisConnector.Close(ctx)

	store, err := newSnapshotStore(ctx, cfg.Storage, redisConnector)
	if err != nil {
		return err
	}

	var telegoBot *telego.Bot
	if cfg.Notifications.BotEnabled() {
		if telegoBot, err = telego.NewBot(cfg.Notifications.BotToken); err != nil {
			return fmt.Errorf("telego.NewBot: %w", err)
		}
	}

	announcer := notifier.NewAnnouncer(newTextSender(cfg.Notifications, client, telegoBot), tr).
		WithFailureCounter(m.NotificationsFailed)

	if !announcer.Enabled() {
		logger(ctx).Info("notification channel not configured, notifications disabled")
	}

	ranges := cfg.Gifts.Ranges()

	purchaser := service.NewPurchaser(client, announcer).WithHiddenSender(cfg.Gifts.HideSenderName)
	detector := worker.NewGiftDetector(
		client,
		service.NewCatalogDiffer(client, store),
		service.NewPriorityRanker(cfg.Gifts.PrioritizeLowSupply),
		service.NewEligibilityEvaluator(service.NewRangeMatcher(ranges), cfg.Gifts.OnlyUpgradable),
		service.NewDistributor(purchaser, announcer),
		announcer,
		cfg.Gifts.Interval(),
	).WithMetrics(m)

	onReady := func(ctx context.Context) error {
		balance, err := client.Balance(ctx)
		if err != nil {
			logger(ctx).Warn("failed to fetch balance", logx.Error(err))
		}

		m.Balance.Set(float64(balance))

		known, err := store.Size(ctx)
		if err != nil {
			logger(ctx).Warn("failed to read snapshot size", logx.Error(err))
		}

		logger(ctx).Info("gifts buyer started",
			slog.Int64(logx.FieldBalance, balance),
			slog.Int(logx.FieldCount, len(ranges)),
			slog.Int("known_gifts", known),
			slog.String("language", tr.DisplayName()),
		)

		announcer.Started(ctx, balance, ranges)

		return nil
	}

	startOnce := announceOnce(onReady)

	g, ctx := errgroup.WithContext(ctx)

	modules.Background{
		Name: "telegramClient",
		Runner: modules.Restarting{
			Name: "telegramClient",
			Runner: modules.RunnerFunc(func(ctx context.Context) error {
				return client.Start(ctx, startOnce)
			}),
			Delay: clientRestartDelay,
		},
	}.Run(ctx, g)

	modules.Background{
		Name: "giftDetector",
		Runner: modules.RunnerFunc(func(ctx context.Context) error {
			if err := client.WaitReady(ctx); err != nil {
				return err
			}

			return detector.Run(ctx)
		}),
	}.Run(ctx, g)

	if cfg.Notifications.AdminBotEnabled() {
		h := handler.New(detector, client, ranges, tr)

		modules.Background{
			Name:   "adminBot",
			Runner: bot.New(telegoBot, h, cfg.Notifications.BotAdminID),
		}.Run(ctx, g)
	}

	modules.MetricServer{
		ListenAddress: cfg.Observability.MetricsAddr,
		Gatherer:      m.Gatherer(),
	}.Run(ctx, g)

	modules.ProbeServer{
		Name:          Name,
		Version:       version,
		ListenAddress: cfg.Observability.ProbeAddr,
		Ready:         detector.Ready,
	}.Run(ctx, g)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

func newSnapshotStore(ctx context.Context, cfg config.Storage, redisConnector *connectors.Redis) (snapshotStore, error) {
	if cfg.Backend != config.BackendRedis {
		return persistence.NewFileSnapshotStore(cfg.HistoryPath), nil
	}

	client, err := redisConnector.Client(ctx)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	return persistence.NewRedisSnapshotStore(client, cfg.Redis.Key), nil
}

// newTextSender picks the notification transport: the Bot API bot when a
// token is set, the user account otherwise, nothing without a channel.
func newTextSender(
	cfg config.Notifications,
	client notifier.PeerTextSender,
	telegoBot *telego.Bot,
) notifier.TextSender {
	channel, ok := cfg.Channel()
	if !ok {
		return nil
	}

	if telegoBot != nil {
		return notifier.NewTelegramBot(telegoBot, channel)
	}

	return notifier.NewAccountChannel(client, channel)
}

// announceOnce keeps the startup summary from repeating when the client
// session is restarted.
func announceOnce(onReady func(ctx context.Context) error) func(ctx context.Context) error {
	var once sync.Once

	return func(ctx context.Context) error {
		var err error
		once.Do(func() { err = onReady(ctx) })

		return err
	}
}

func gotdLogger(level string) *zap.Logger {
	if logx.ParseLevel(level) != slog.LevelDebug {
		return zap.NewNop()
	}

	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}

	return log
}
