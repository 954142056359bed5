package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/praneeshadilushi-max/qr-code-generator-bot/internal/config"
	"github.com/praneeshadilushi-max/qr-code-generator-bot/internal/moderation"
	"github.com/praneeshadilushi-max/qr-code-generator-bot/internal/ratelimit"
	"github.com/praneeshadilushi-max/qr-code-generator-bot/internal/store"
	"github.com/praneeshadilushi-max/qr-code-generator-bot/internal/telegram"
)

type App struct {
	cfg     config.Config
	log     *zap.Logger
	bot     *tgbotapi.BotAPI
	httpSrv *http.Server
	repo    store.Repo
	router  *telegram.Router
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	return &App{cfg: cfg, log: log, bot: bot, httpSrv: srv}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting qr-bot",
		zap.String("http", a.cfg.HTTPAddr),
		zap.Int("dailyLimit", a.cfg.DailyLimit),
		zap.Int("cooldownSeconds", a.cfg.CooldownSeconds),
	)

	// A configured DSN that cannot be opened is a startup error; an empty
	// DSN degrades to the fail-closed disabled store.
	repo, err := store.Open(ctx, a.cfg.DatabaseURL)
	if err != nil {
		a.log.Error("open store failed", zap.Error(err))
		return err
	}
	a.repo = repo
	if a.cfg.DatabaseURL == "" {
		a.log.Warn("no DATABASE_URL configured, running without persistence (quota fail-closed)")
	} else {
		a.log.Info("store ready")
	}

	filter := moderation.New(a.cfg.MaxTextLength, a.cfg.BannedKeywords)
	limiter := ratelimit.New(a.repo, a.log,
		time.Duration(a.cfg.CooldownSeconds)*time.Second, a.cfg.DailyLimit)
	a.router = telegram.NewRouter(a.bot, a.log, a.repo, limiter, filter, a.cfg.AdminID)

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updCh := a.bot.GetUpdatesChan(u)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			a.log.Info("shutdown signal received")

			shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := a.httpSrv.Shutdown(shCtx)
			cancel()

			if err != nil {
				a.log.Warn("http server shutdown error", zap.Error(err))
			}
			if a.repo != nil {
				_ = a.repo.Close()
			}
			return nil

		case upd := <-updCh:
			a.router.HandleUpdate(ctx, upd)
		}
	}
}
