package server

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/notify"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind     = "bind"
	flagAPI      = "api"
	flagRedis    = "redis"
	flagChannel  = "redis_channel"
	flagDebug    = "debug"
	flagDecimals = "decimals"
	flagLogLevel = "log_level"
)

// StartOptions holds the parsed flags of the start command.
type StartOptions struct {
	Bind         string
	API          string
	Redis        string
	RedisChannel string
	Debug        bool
	Decimals     int
	LogLevel     string
}

func parseFlags(args []string) (StartOptions, error) {
	var opts StartOptions
	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	startFlags.StringVar(&opts.Bind, flagBind, "tcp://localhost:26658", "address the abci server listens on")
	startFlags.StringVar(&opts.API, flagAPI, "localhost:8000", "address the http API listens on, empty to disable")
	startFlags.StringVar(&opts.Redis, flagRedis, "", "redis address events are published to, empty to disable")
	startFlags.StringVar(&opts.RedisChannel, flagChannel, notify.DefaultRedisChannel, "redis channel events are published on")
	startFlags.BoolVar(&opts.Debug, flagDebug, false, "call stack returned on error")
	startFlags.IntVar(&opts.Decimals, flagDecimals, 2, "number of decimals used to display amounts")
	startFlags.StringVar(&opts.LogLevel, flagLogLevel, "info", "one of debug, info, error or none")
	if err := startFlags.Parse(args); err != nil {
		return opts, errors.Wrap(errors.ErrInput, err.Error())
	}
	if opts.Decimals < 0 || opts.Decimals > 18 {
		return opts, errors.Wrapf(errors.ErrInput, "decimals %d out of range", opts.Decimals)
	}
	return opts, nil
}

// AppOptions is everything an application needs to be created by the
// start command.
type AppOptions struct {
	Home     string
	Logger   log.Logger
	Debug    bool
	Decimals int32
	// Notifier receives every event of a committed block.
	Notifier jointbank.Notifier
	// Events is the in process fan out of the same events, to be exposed
	// to API clients.
	Events *notify.PubSub
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags. The returned
// handler is served on the API address.
type AppGenerator func(AppOptions) (abci.Application, http.Handler, error)

// StartCmd initializes the application, and runs the abci server together
// with the http API until the process receives an interrupt.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	lvl, err := log.AllowLevel(opts.LogLevel)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	logger = log.NewFilter(logger, lvl)

	events, err := notify.NewPubSub(logger)
	if err != nil {
		return err
	}
	defer events.Stop()

	notifiers := []jointbank.Notifier{notify.NewLogger(logger), events}
	if opts.Redis != "" {
		client := redis.NewClient(&redis.Options{Addr: opts.Redis})
		defer client.Close()
		notifiers = append(notifiers, notify.NewRedis(client, opts.RedisChannel, logger))
		logger.Info("Publishing events to redis", "addr", opts.Redis, "channel", opts.RedisChannel)
	}

	// Generate the app in the proper dir
	app, handler, err := gen(AppOptions{
		Home:     home,
		Logger:   logger,
		Debug:    opts.Debug,
		Decimals: int32(opts.Decimals),
		Notifier: notify.Multi(notifiers...),
		Events:   events,
	})
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", opts.Bind)
	svr, err := server.NewServer(opts.Bind, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrHuman, "create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrHuman, "start abci server: %s", err)
	}
	defer svr.Stop()

	failed := make(chan error, 1)
	var httpSrv *http.Server
	if opts.API != "" && handler != nil {
		httpSrv = &http.Server{Addr: opts.API, Handler: handler}
		go func() {
			logger.Info("Starting API", "addr", opts.API)
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				failed <- errors.Wrapf(errors.ErrHuman, "api server: %s", err)
			}
		}()
	}

	// Wait forever
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case s := <-sig:
		logger.Info("Shutting down", "signal", s.String())
		err = nil
	case err = <-failed:
	}

	if httpSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if serr := httpSrv.Shutdown(ctx); serr != nil {
			logger.Error("API shutdown", "err", serr)
		}
	}
	return err
}
