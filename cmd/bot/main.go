package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"draftbot/internal/adapters/discord"
	"draftbot/internal/adapters/httpapi"
	"draftbot/internal/application"
	"draftbot/internal/config"
	"draftbot/internal/infrastructure/database"
	"draftbot/internal/infrastructure/i18n"
	"draftbot/pkg/tz"
)

func main() {
	dumpSQL := flag.Bool("sql", false, "print the database schema and exit")
	flag.Parse()

	if *dumpSQL {
		fmt.Print(database.Schema())
		return
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := tz.Set(cfg.Timezone); err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Timezone).Msg("load timezone")
	}

	ctx := context.Background()
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()

	eventRepo := database.NewEventRepository(pool)
	signupRepo := database.NewSignupRepository(pool)
	leagueRepo := database.NewLeagueRecordRepository(pool)

	signupSvc := application.NewSignupService(signupRepo, eventRepo)
	eventSvc := application.NewEventService(eventRepo, signupRepo)
	podSvc := application.NewPodService(signupRepo, eventRepo, leagueRepo, signupSvc)
	translator := i18n.NewTranslator(cfg.Locale)

	bot, err := discord.NewBot(cfg, eventSvc, signupSvc, podSvc, translator)
	if err != nil {
		log.Fatal().Err(err).Msg("create bot")
	}
	if err := bot.Start(); err != nil {
		log.Fatal().Err(err).Msg("start bot")
	}

	// Import endpoint for the external spreadsheet sync.
	httpSrv := &http.Server{
		Addr:    cfg.HTTPListenAddr,
		Handler: httpapi.NewRouter(leagueRepo, cfg.GuildID, cfg.ImportToken),
	}
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("http server")
		}
	}()

	runCtx, cancel := context.WithCancel(ctx)
	go bot.Run(runCtx)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	cancel()
	_ = httpSrv.Shutdown(context.Background())
	log.Info().Stringer("signal", sig).Msg("shutting down")

	// Convention: the process reports the terminating signal number.
	if s, ok := sig.(syscall.Signal); ok {
		os.Exit(int(s))
	}
}
