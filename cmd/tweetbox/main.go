package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/pantonshire/tweetbox"
	"github.com/pantonshire/tweetbox/api"
	"github.com/pantonshire/tweetbox/auth"
	"github.com/pantonshire/tweetbox/database"
	"github.com/pantonshire/tweetbox/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var opts struct {
		ConfigPath string `short:"c" long:"config" description:"Path to the configuration file"`
		Verbose    []bool `short:"v" long:"verbose" description:"Enable debug output (repeatable)"`
		Migrate    bool   `long:"migrate" description:"Migrate the database schema before serving"`
		EnvFile    string `long:"env-file" default:".env" description:"Environment file loaded before the configuration"`
	}
	if _, err := flags.Parse(&opts); err != nil {
		if flagErr, ok := err.(*flags.Error); ok && flagErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// A missing .env file is fine; the environment may already be set.
	if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.New(logging.Config{}).Fatalf("load %s: %v", opts.EnvFile, err)
	}

	config, err := tweetbox.LoadConfig(opts.ConfigPath)
	if err != nil {
		logging.New(logging.Config{}).Fatalln(err)
	}
	if len(opts.Verbose) > config.Log.Verbosity {
		config.Log.Verbosity = len(opts.Verbose)
	}
	log := logging.New(config.Log)

	if err := run(config, opts.Migrate, log); err != nil {
		log.Fatalln(err)
	}
}

func run(config tweetbox.Config, migrate bool, log logging.Logger) error {
	signer, err := auth.NewSigner(config.Auth.Secret, config.Auth.PreviousSecrets, config.Auth.TokenTTL)
	if err != nil {
		return err
	}

	db, err := tweetbox.OpenDatabase(config.DB, log, migrate)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Println(err)
		}
	}()

	service := api.NewAPI(database.NewStore(db), signer, auth.Hasher{Cost: config.Auth.BcryptCost}, log, config.API)
	srv := &http.Server{
		Addr:         config.Server.Addr,
		Handler:      service.NewRouter(),
		ReadTimeout:  config.Server.ReadTimeout,
		WriteTimeout: config.Server.WriteTimeout,
		IdleTimeout:  config.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Println("shutting down")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
