package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/l1jgo/colshape/internal/colshape"
	"github.com/l1jgo/colshape/internal/config"
	"github.com/l1jgo/colshape/internal/core/event"
	coresys "github.com/l1jgo/colshape/internal/core/system"
	"github.com/l1jgo/colshape/internal/data"
	"github.com/l1jgo/colshape/internal/httpapi"
	"github.com/l1jgo/colshape/internal/persist"
	"github.com/l1jgo/colshape/internal/scripting"
	"github.com/l1jgo/colshape/internal/system"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main daemon logic ──────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/colshape.toml"
	if p := os.Getenv("COLSHAPE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Shape manager
	shapes := colshape.NewManager(colshape.Options{
		CellSize:           cfg.Tracker.CellSize,
		UnboundedThreshold: cfg.Tracker.UnboundedThreshold,
		Logger:             log,
	})

	// 4. Static shapes
	printSection("Shapes")
	if cfg.Data.ShapeList != "" {
		table, err := data.LoadShapeTable(cfg.Data.ShapeList)
		if err != nil {
			return fmt.Errorf("load shape table: %w", err)
		}
		created, rejected := table.Spawn(shapes)
		for _, id := range rejected {
			log.Warn("static shape rejected", zap.String("shape", id))
		}
		printStat("static shapes", created)
	}

	// 5. Scripting host: creates dynamic shapes and reports the position
	var (
		source   colshape.PositionSource
		handlers []event.Handlers
	)
	if cfg.Scripting.Enabled {
		engine, err := scripting.NewEngine(cfg.Scripting.Dir, shapes, log)
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer engine.Close()
		source = engine
		handlers = append(handlers, engine)
		printOK(fmt.Sprintf("Lua scripts loaded from %s", cfg.Scripting.Dir))
	} else {
		log.Warn("scripting disabled, no position source: every tick is skipped")
		source = colshape.PositionFunc(func() (colshape.Vector3, bool) {
			return colshape.Vector3{}, false
		})
	}
	printStat("total shapes", shapes.Len())
	fmt.Println()

	// 6. Transition journal. It outlives the signal context until the
	// poller has stopped, so the last tick's rows are still written.
	var wg sync.WaitGroup
	journalCtx, cancelJournal := context.WithCancel(context.Background())
	defer cancelJournal()
	if cfg.Journal.Enabled {
		printSection("Journal")
		journal, closeDB, err := openJournal(ctx, cfg.Journal, log)
		if err != nil {
			return err
		}
		defer closeDB()
		handlers = append(handlers, journal)

		wg.Add(1)
		go func() {
			defer wg.Done()
			journal.Run(journalCtx)
		}()
		printOK(fmt.Sprintf("journal run %s", journal.RunID()))
		fmt.Println()
	}

	// 7. Event bus and systems
	bus := event.NewBus()
	event.SubscribeTransitions(bus, colshape.LogSink{Log: log})
	for _, h := range handlers {
		event.SubscribeTransitions(bus, h)
	}

	runner := coresys.NewRunner()
	runner.Register(system.NewTrackerSystem(shapes, source, event.Sink{Bus: bus}))
	runner.Register(system.NewEventDispatchSystem(bus))

	poller := coresys.NewPoller(runner, cfg.Tracker.PollInterval, log)

	// 8. Introspection HTTP
	if cfg.HTTP.Enabled {
		srv := &http.Server{
			Addr:              cfg.HTTP.BindAddress,
			Handler:           httpapi.NewHandler(shapes, log),
			ReadHeaderTimeout: 5 * time.Second,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			httpapi.ListenAndServe(ctx, log, srv)
		}()
	}

	printSection("Ready")
	if cfg.HTTP.Enabled {
		printReady(fmt.Sprintf("http listening on %s", cfg.HTTP.BindAddress))
	}
	printReady(fmt.Sprintf("polling started (interval: %s)", poller.Interval()))
	fmt.Println()

	poller.Start(ctx)

	<-ctx.Done()
	log.Info("shutdown signal received")
	stopInOrder(poller, cancelJournal, &wg)
	log.Info("colshaped stopped")
	return nil
}

// stopInOrder stops the poller first so its final tick has been queued,
// then cancels the journal and waits for the background goroutines.
func stopInOrder(poller *coresys.Poller, cancelJournal context.CancelFunc, wg *sync.WaitGroup) {
	poller.Stop()
	cancelJournal()
	wg.Wait()
}

// openJournal connects to PostgreSQL, applies migrations and builds the
// journal. The returned func closes the pool.
func openJournal(ctx context.Context, cfg config.JournalConfig, log *zap.Logger) (*persist.Journal, func(), error) {
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := persist.NewDB(connectCtx, cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("database: %w", err)
	}
	printOK("PostgreSQL connected")

	if err := persist.RunMigrations(connectCtx, db.Pool, log); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}
	printOK("migrations applied")

	repo := persist.NewTransitionRepo(db)
	return persist.NewJournal(repo, cfg.QueueSize, cfg.FlushInterval, log), db.Close, nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
