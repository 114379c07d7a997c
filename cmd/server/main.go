package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ogurasousui/kintai-line-bot/internal/adapters/line"
	tabularrepo "github.com/ogurasousui/kintai-line-bot/internal/adapters/repository/tabular"
	pgstore "github.com/ogurasousui/kintai-line-bot/internal/adapters/tabular/postgres"
	"github.com/ogurasousui/kintai-line-bot/internal/adapters/tabular/sheets"
	"github.com/ogurasousui/kintai-line-bot/internal/core/attendance"
	"github.com/ogurasousui/kintai-line-bot/internal/core/dispatch"
	"github.com/ogurasousui/kintai-line-bot/internal/core/shift"
	"github.com/ogurasousui/kintai-line-bot/internal/core/tabular"
	"github.com/ogurasousui/kintai-line-bot/internal/core/vacation"
	"github.com/ogurasousui/kintai-line-bot/internal/platform/config"
	pg "github.com/ogurasousui/kintai-line-bot/internal/platform/db/postgres"
	"github.com/ogurasousui/kintai-line-bot/internal/platform/logger"
	"github.com/ogurasousui/kintai-line-bot/internal/platform/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	messenger, err := line.NewMessenger(cfg.Line.ChannelSecret, cfg.Line.ChannelAccessToken, cfg.Line.AdminUserID)
	if err != nil {
		log.Fatalf("failed to create LINE client: %v", err)
	}

	var store tabular.Store
	switch cfg.Store.Backend {
	case config.StoreBackendSheets:
		creds, err := cfg.Sheets.Credentials()
		if err != nil {
			log.Fatalf("failed to load sheets credentials: %v", err)
		}
		store, err = sheets.NewStore(ctx, cfg.Sheets.SpreadsheetID, creds)
		if err != nil {
			log.Fatalf("failed to create sheets store: %v", err)
		}
	case config.StoreBackendPostgres:
		pool, err := pg.NewPool(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("failed to initialize database pool: %v", err)
		}
		defer pool.Close()
		store = pgstore.NewStore(pool)
	}

	loc := cfg.Location()
	clock := attendance.NewClock(loc)

	attendanceSvc := attendance.NewService(tabularrepo.NewAttendanceRepository(store), clock)
	shiftSvc := shift.NewService(tabularrepo.NewShiftRepository(store), shift.NewClock(loc))

	var notifier vacation.Notifier
	if cfg.Line.AdminUserID != "" {
		notifier = messenger
	}
	vacationSvc := vacation.NewService(tabularrepo.NewVacationRepository(store), notifier, zlog)

	dispatcher := dispatch.NewDispatcher(dispatch.Deps{
		Attendance:  attendanceSvc,
		Shifts:      shiftSvc,
		Vacations:   vacationSvc,
		Profiles:    messenger,
		Clock:       clock,
		AdminUserID: cfg.Line.AdminUserID,
		Logger:      zlog,
	})

	webhook := line.NewWebhookHandler(messenger, messenger, dispatcher, zlog)
	srv := server.New(cfg.Server.Port, webhook)

	zlog.Info("HTTP server listening",
		zap.Int("port", cfg.Server.Port),
		zap.String("store_backend", cfg.Store.Backend),
	)

	if err := srv.Run(ctx); err != nil {
		zlog.Fatal("server stopped with error", zap.Error(err))
	}
}
