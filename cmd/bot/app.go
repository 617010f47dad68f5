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

	"github.com/Jacobbrewer1/neutron/cmd/bot/config"
	"github.com/Jacobbrewer1/neutron/cmd/bot/monitoring"
	"github.com/Jacobbrewer1/neutron/pkg/dataaccess"
	"github.com/Jacobbrewer1/neutron/pkg/dataaccess/connection"
	"github.com/Jacobbrewer1/neutron/pkg/dispatch"
	"github.com/Jacobbrewer1/neutron/pkg/logging"
	"github.com/Jacobbrewer1/neutron/pkg/platform"
	"github.com/Jacobbrewer1/neutron/pkg/request"
	"github.com/Jacobbrewer1/neutron/pkg/selection"
	"github.com/Jacobbrewer1/neutron/pkg/tickets"
	"github.com/bwmarrin/discordgo"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

const (
	// PathMetrics is the path for metrics.
	PathMetrics = "/metrics"

	// PathHealth is the path for health check.
	PathHealth = "/health"

	// shutdownTimeout bounds the graceful shutdown of the monitoring server.
	shutdownTimeout = 10 * time.Second
)

// IApp is the interface for the application.
type IApp interface {
	// Log returns the application logger.
	Log() *slog.Logger

	// Session returns the discord session.
	Session() *discordgo.Session

	// Config returns the application configuration.
	Config() *config.Config

	// Limiter returns the rate limiter of the dashboard API.
	Limiter() *rate.Limiter
}

type App struct {
	// is the logger.
	*slog.Logger

	// r is the router for the application.
	r *mux.Router

	// svr is the server for the application.
	svr *http.Server

	// s is the discord session.
	s *discordgo.Session

	// cfg is the application configuration.
	cfg *config.Config

	// store holds the panels and tickets.
	store dataaccess.Store

	// selections is the selection cache owned by the engine.
	selections *selection.Cache

	// tickets is the ticket lifecycle controller.
	tickets *tickets.Controller

	// engine routes component interactions.
	engine *dispatch.Engine

	// limiter limits the dashboard API.
	limiter *rate.Limiter
}

// NewApp creates a new instance of App.
func NewApp(l *slog.Logger, r *mux.Router, cfg *config.Config) *App {
	return &App{
		Logger:  l,
		r:       r,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.DashboardRateLimit), int(cfg.DashboardRateLimit*2)+1),
	}
}

func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.connectStore(ctx); err != nil {
		return fmt.Errorf("error connecting to store: %w", err)
	}

	// Register bot.
	if err := a.RegisterBot(); err != nil {
		return fmt.Errorf("error registering bot: %w", err)
	}

	if err := a.setupTickets(); err != nil {
		return fmt.Errorf("error setting up tickets: %w", err)
	}

	if a.cfg.PanelsFile != "" {
		if err := a.seedPanels(ctx, a.cfg.PanelsFile); err != nil {
			return fmt.Errorf("error seeding panels: %w", err)
		}
	}

	a.RegisterDiscordHandlers()

	// Open websocket.
	if err := a.s.Open(); err != nil {
		return fmt.Errorf("error opening connection to Discord: %w", err)
	}

	a.Info("Bot is now running.")

	a.generateServer()
	a.setupRoutes()
	a.runServer()

	<-ctx.Done()
	a.Info("Received shutdown signal")

	return a.ShutdownHook()
}

func (a *App) ShutdownHook() error {
	// Reset the total number of guilds to 0.
	monitoring.TotalDiscordGuilds.Set(0)

	var errs []error

	if a.svr != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.svr.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("error shutting down monitoring server: %w", err))
		}
	}

	// Close the connection to Discord.
	if a.s != nil {
		if err := a.s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing connection to Discord: %w", err))
		}
	}

	if a.selections != nil {
		if err := a.selections.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing selection cache: %w", err))
		}
	}

	if a.store != nil {
		if err := a.store.Close(context.Background()); err != nil {
			errs = append(errs, fmt.Errorf("error closing store: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (a *App) connectStore(ctx context.Context) error {
	switch a.cfg.DatabaseDriver {
	case dataaccess.DriverMongo:
		conn := &connection.MongoDB{ConnectionString: a.cfg.MongoUri}
		client, err := conn.Connect(ctx)
		if err != nil {
			return err
		}

		a.store, err = dataaccess.NewMongoStore(ctx, a.Logger, client, a.cfg.MongoDatabase)
		if err != nil {
			return err
		}
	case dataaccess.DriverSqlite:
		conn := &connection.Sqlite{Path: a.cfg.SqlitePath}
		db, err := conn.Connect(ctx)
		if err != nil {
			return err
		}

		a.store, err = dataaccess.NewSqliteStore(ctx, a.Logger, db)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown database driver %q", a.cfg.DatabaseDriver)
	}

	a.Info("Connected to store", slog.String("driver", a.cfg.DatabaseDriver))
	return nil
}

func (a *App) RegisterBot() error {
	// Default the number of guilds to 0.
	monitoring.TotalDiscordGuilds.Set(0)

	dg, err := discordgo.New("Bot " + a.cfg.BotToken)
	if err != nil {
		return fmt.Errorf("error creating Discord session: %w", err)
	}

	// Message content is needed for transcripts.
	dg.Identify.Intents = discordgo.IntentGuilds | discordgo.IntentGuildMessages | discordgo.IntentMessageContent

	a.s = dg
	return nil
}

func (a *App) setupTickets() error {
	cache, err := selection.NewCache(a.cfg.SelectionTTL)
	if err != nil {
		return err
	}
	a.selections = cache

	a.tickets = tickets.NewController(a.Logger, a.store, a.store, platform.NewDiscord(a.s),
		tickets.WithCloseDelay(a.cfg.CloseDelay),
		tickets.WithCategoryName(a.cfg.TicketCategoryName),
	)
	a.engine = dispatch.NewEngine(a.Logger, a.selections, a.tickets)
	return nil
}

func (a *App) runServer() {
	go func() {
		a.Info("Starting monitoring server", slog.String("addr", a.svr.Addr))
		if err := a.svr.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Error("Error starting monitoring server", slog.String(logging.KeyError, err.Error()))
			a.Warn("Monitoring server will not be available")
		}
	}()
}

func (a *App) setupRoutes() {
	a.r.HandleFunc(PathMetrics, promhttp.Handler().ServeHTTP).Methods(http.MethodGet)
	a.r.HandleFunc(PathHealth, middlewareHttp(a.healthCheck(), authOptionNone, a)).Methods(http.MethodGet)

	if a.cfg.DashboardToken != "" {
		a.dashboardRoutes(a.r.PathPrefix(PathAPI).Subrouter())
	}

	a.r.NotFoundHandler = request.NotFoundHandler(a.Logger)
	a.r.MethodNotAllowedHandler = request.MethodNotAllowedHandler(a.Logger)
}

func (a *App) generateServer() {
	a.svr = &http.Server{
		Addr:              ":" + a.cfg.MonitoringPort,
		Handler:           a.r,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (a *App) RegisterDiscordHandlers() {
	a.s.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		a.Info(fmt.Sprintf("Logged in as %s", r.User.Username), slog.Int("guilds", len(r.Guilds)))
	})

	// Every gateway event.
	a.s.AddHandler(eventCounter)

	// Bot joined guild.
	a.s.AddHandler(guildJoinedHandler(a))

	// Bot left guild.
	a.s.AddHandler(guildLeaveHandler(a))

	// Component interactions.
	a.s.AddHandler(interactionHandler(a, a.engine))
}

func eventCounter(_ *discordgo.Session, e *discordgo.Event) {
	if e.Type != "" {
		monitoring.TotalDiscordEvents.WithLabelValues(e.Type).Inc()
	} else {
		// If there is no type, then use the operation code.
		monitoring.TotalDiscordEvents.WithLabelValues("OP_" + strconv.Itoa(e.Operation)).Inc()
	}
}

func (a *App) Log() *slog.Logger {
	return a.Logger
}

func (a *App) Session() *discordgo.Session {
	return a.s
}

func (a *App) Config() *config.Config {
	return a.cfg
}

func (a *App) Limiter() *rate.Limiter {
	return a.limiter
}
