package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/golang-migrate/migrate/v4"
	migratep "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Decentr-net/logrus/sentry"

	"github.com/Decentr-net/agora/internal/authz"
	"github.com/Decentr-net/agora/internal/consumer/mailing"
	"github.com/Decentr-net/agora/internal/health"
	"github.com/Decentr-net/agora/internal/notification"
	"github.com/Decentr-net/agora/internal/server"
	"github.com/Decentr-net/agora/internal/service/impl"
	"github.com/Decentr-net/agora/internal/storage/postgres"
	"github.com/Decentr-net/agora/internal/token"
)

// nolint:lll,gochecknoglobals
var opts = struct {
	Host         string        `long:"http.host" env:"HTTP_HOST" default:"0.0.0.0" description:"IP to listen on"`
	Port         int           `long:"http.port" env:"HTTP_PORT" default:"8080" description:"port to listen on for insecure connections, defaults to a random value"`
	HTTPTimeout  time.Duration `long:"http.request-timeout" env:"HTTP_REQUEST_TIMEOUT" default:"45s" description:"request processing timeout"`
	CORSOrigins  []string      `long:"http.cors-origin" env:"HTTP_CORS_ORIGINS" env-delim:"," description:"allowed CORS origins, any origin is allowed when empty"`
	SecureCookie bool          `long:"http.secure-cookie" env:"HTTP_SECURE_COOKIE" description:"set Secure flag on the refresh token cookie"`

	AuthRateLimit  int           `long:"auth.rate-limit" env:"AUTH_RATE_LIMIT" default:"20" description:"max requests to /auth per ip in the window, 0 disables limiting"`
	AuthRateWindow time.Duration `long:"auth.rate-window" env:"AUTH_RATE_WINDOW" default:"1m" description:"rate limiting window of /auth"`

	Postgres                   string `long:"postgres" env:"POSTGRES" default:"host=localhost port=5432 user=postgres password=root sslmode=disable" description:"postgres dsn"`
	PostgresMaxOpenConnections int    `long:"postgres.max_open_connections" env:"POSTGRES_MAX_OPEN_CONNECTIONS" default:"0" description:"postgres maximal open connections count, 0 means unlimited"`
	PostgresMaxIdleConnections int    `long:"postgres.max_idle_connections" env:"POSTGRES_MAX_IDLE_CONNECTIONS" default:"5" description:"postgres maximal idle connections count"`
	PostgresMigrations         string `long:"postgres.migrations" env:"POSTGRES_MIGRATIONS" default:"scripts/migrations/postgres" description:"postgres migrations directory"`

	JWTSecret     string        `long:"jwt.secret" env:"JWT_SECRET" required:"true" description:"secret to sign tokens with"`
	JWTAccessTTL  time.Duration `long:"jwt.access-ttl" env:"JWT_ACCESS_TTL" default:"1h" description:"access token lifetime"`
	JWTRefreshTTL time.Duration `long:"jwt.refresh-ttl" env:"JWT_REFRESH_TTL" default:"168h" description:"refresh token lifetime"`
	JWTResetTTL   time.Duration `long:"jwt.reset-ttl" env:"JWT_RESET_TTL" default:"10m" description:"password reset token lifetime"`

	NATSURL           string        `long:"nats.url" env:"NATS_URL" description:"nats url, in-process queue is used when empty"`
	NATSQueueGroup    string        `long:"nats.queue-group" env:"NATS_QUEUE_GROUP" default:"agora" description:"nats queue group of notification consumers"`
	NATSSubscribers   int           `long:"nats.subscribers" env:"NATS_SUBSCRIBERS" default:"1" description:"nats subscribers count"`
	NATSReconnectWait time.Duration `long:"nats.reconnect-wait" env:"NATS_RECONNECT_WAIT" default:"2s" description:"nats reconnect interval"`
	QueueBuffer       int64         `long:"queue.buffer" env:"QUEUE_BUFFER" default:"1024" description:"in-process queue buffer size"`

	MailingBaseURL          string        `long:"mailing.base-url" env:"MAILING_BASE_URL" default:"http://localhost:8080" description:"base url used in mail links"`
	MailingFailureThreshold uint32        `long:"mailing.failure-threshold" env:"MAILING_FAILURE_THRESHOLD" default:"5" description:"consecutive mailer failures to open the circuit breaker"`
	MailingOpenTimeout      time.Duration `long:"mailing.open-timeout" env:"MAILING_OPEN_TIMEOUT" default:"30s" description:"duration of the open circuit breaker state"`

	LogLevel  string `long:"log.level" env:"LOG_LEVEL" default:"info" description:"Log level" choice:"debug" choice:"info" choice:"warning" choice:"error"`
	SentryDSN string `long:"sentry.dsn" env:"SENTRY_DSN" description:"sentry dsn"`
}{}

var errTerminated = errors.New("terminated")

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithError(err).Fatal("failed to load .env")
	}

	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "Agora"
	parser.LongDescription = "Agora forum service"

	_, err := parser.Parse()

	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			parser.WriteHelp(os.Stdout)
			os.Exit(0)
		}
		logrus.WithError(err).Fatal("error occurred while parsing flags")
	}

	lvl, _ := logrus.ParseLevel(opts.LogLevel) // err will always be nil
	logrus.SetLevel(lvl)

	if opts.SentryDSN != "" {
		hook, err := sentry.NewHook(sentry.Options{
			Dsn:              opts.SentryDSN,
			AttachStacktrace: true,
			Release:          health.GetVersion(),
			ServerName:       "agora",
		}, logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel)

		if err != nil {
			logrus.WithError(err).Fatal("failed to init sentry")
		}

		logrus.AddHook(hook)
	} else {
		logrus.Info("empty sentry dsn")
		logrus.Warn("skip sentry initialization")
	}

	db := mustGetDB()
	s := postgres.New(db)

	ps := mustGetPubSub()
	defer func() {
		if err := ps.Close(); err != nil {
			logrus.WithError(err).Error("failed to close pubsub")
		}
	}()

	policy, err := authz.New()
	if err != nil {
		logrus.WithError(err).Fatal("failed to create authorization policy")
	}

	tokens := token.NewManager(token.Config{
		Secret:     opts.JWTSecret,
		AccessTTL:  opts.JWTAccessTTL,
		RefreshTTL: opts.JWTRefreshTTL,
		ResetTTL:   opts.JWTResetTTL,
	})

	c := mailing.New(ps.Subscriber, s, mailing.NewLogMailer(), mailing.Config{
		BaseURL:          opts.MailingBaseURL,
		FailureThreshold: opts.MailingFailureThreshold,
		OpenTimeout:      opts.MailingOpenTimeout,
	})

	r := chi.NewMux()
	r.Get("/health", health.Handler(
		5*time.Second,
		health.SubjectPinger("postgres", db.PingContext),
		c,
	))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		server.SetupRouter(impl.New(s, policy, notification.NewPublisher(ps.Publisher), tokens), tokens, r, server.Config{
			Timeout:        opts.HTTPTimeout,
			AllowedOrigins: opts.CORSOrigins,
			AuthRateLimit:  opts.AuthRateLimit,
			AuthRateWindow: opts.AuthRateWindow,
			RefreshTTL:     opts.JWTRefreshTTL,
			SecureCookie:   opts.SecureCookie,
		})
	})

	srv := http.Server{
		Addr:              fmt.Sprintf("%s:%d", opts.Host, opts.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())

	if err := c.Subscribe(ctx); err != nil {
		logrus.WithError(err).Fatal("failed to subscribe to notifications")
	}

	gr, _ := errgroup.WithContext(ctx)
	gr.Go(func() error {
		return c.Run(ctx)
	})
	gr.Go(srv.ListenAndServe)
	gr.Go(func() error {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

		s := <-sigs

		logrus.Infof("terminating by %s signal", s)

		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("failed to gracefully shutdown server")
		}

		return errTerminated
	})

	logrus.Info("service started")

	if err := gr.Wait(); err != nil && !errors.Is(err, errTerminated) && !errors.Is(err, http.ErrServerClosed) {
		logrus.WithError(err).Fatal("service unexpectedly closed")
	}
}

func mustGetDB() *sql.DB {
	db, err := sql.Open("postgres", opts.Postgres)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create postgres connection")
	}
	db.SetMaxOpenConns(opts.PostgresMaxOpenConnections)
	db.SetMaxIdleConns(opts.PostgresMaxIdleConnections)

	if err := db.PingContext(context.Background()); err != nil {
		logrus.WithError(err).Fatal("failed to ping postgres")
	}

	driver, err := migratep.WithInstance(db, &migratep.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("failed to create database migrate driver")
	}

	migrator, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", opts.PostgresMigrations), "postgres", driver)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create migrator")
	}

	switch v, d, err := migrator.Version(); err {
	case nil:
		logrus.Infof("database version %d with dirty state %t", v, d)
	case migrate.ErrNilVersion:
		logrus.Info("database version: nil")
	default:
		logrus.WithError(err).Fatal("failed to get version")
	}

	switch err := migrator.Up(); err {
	case nil:
		logrus.Info("database was migrated")
	case migrate.ErrNoChange:
		logrus.Info("database is up-to-date")
	default:
		logrus.WithError(err).Fatal("failed to migrate db")
	}

	return db
}

func mustGetPubSub() notification.PubSub {
	if opts.NATSURL == "" {
		logrus.Info("nats url is empty, using in-process queue")
		return notification.NewGoChannel(opts.QueueBuffer)
	}

	ps, err := notification.NewNATS(notification.NATSConfig{
		URL:              opts.NATSURL,
		QueueGroup:       opts.NATSQueueGroup,
		SubscribersCount: opts.NATSSubscribers,
		ReconnectWait:    opts.NATSReconnectWait,
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to nats")
	}

	return ps
}
