package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	appconfig "github.com/dmitrymomot/newsletter/config"
	"github.com/dmitrymomot/newsletter/core/broadcast"
	"github.com/dmitrymomot/newsletter/core/config"
	"github.com/dmitrymomot/newsletter/core/email"
	"github.com/dmitrymomot/newsletter/core/subscription"
	"github.com/dmitrymomot/newsletter/integration/database/pg"
	"github.com/dmitrymomot/newsletter/integration/email/postmark"
	"github.com/dmitrymomot/newsletter/integration/email/smtp"
	"github.com/dmitrymomot/newsletter/migrations"
)

func main() {
	var cfg appconfig.Config
	config.MustLoad(&cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)
	slog.SetDefault(log)

	manager := pg.NewManager(cfg.Database,
		pg.WithMigrations(migrations.FS),
		pg.WithLogger(log),
	)
	defer manager.Close()

	store := subscription.NewStore(manager)

	// create-admin provisions a publisher account and exits. Everything else
	// runs the HTTP service.
	if len(os.Args) > 1 && os.Args[1] == "create-admin" {
		os.Exit(runCreateAdmin(store, os.Args[2:], log))
	}

	sender, err := newSender(cfg)
	if err != nil {
		log.Error("email sender setup failed", slog.Any("error", err))
		os.Exit(1)
	}

	service, err := subscription.NewService(store, sender, cfg.BaseURL,
		subscription.WithLogger(log),
	)
	if err != nil {
		log.Error("subscription service setup failed", slog.Any("error", err))
		os.Exit(1)
	}

	broadcaster := broadcast.NewBroadcaster(store, store, sender,
		broadcast.WithLogger(log),
	)

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      newHandler(service, broadcaster, manager, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", slog.Any("error", err))
		}
	}()

	log.Info("newsletter service listening", slog.Int("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("server stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

// newSender picks the outbound email backend. Provider-specific config is
// loaded only for the selected provider so dev setups need no Postmark or
// SMTP variables.
func newSender(cfg appconfig.Config) (email.EmailSender, error) {
	switch cfg.EmailProvider {
	case appconfig.EmailProviderPostmark:
		var pmCfg postmark.Config
		if err := config.Load(&pmCfg); err != nil {
			return nil, err
		}
		return postmark.New(pmCfg)
	case appconfig.EmailProviderSMTP:
		var smtpCfg smtp.Config
		if err := config.Load(&smtpCfg); err != nil {
			return nil, err
		}
		return smtp.New(smtpCfg)
	default:
		return email.NewDevSender(cfg.DevEmailDir), nil
	}
}

func runCreateAdmin(store *subscription.Store, args []string, log *slog.Logger) int {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: newsletter create-admin <username> <password>")
		return 2
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	id, err := store.CreateAdmin(ctx, args[0], args[1])
	if err != nil {
		log.Error("create admin failed", slog.Any("error", err))
		return 1
	}

	fmt.Println(id)
	return 0
}
