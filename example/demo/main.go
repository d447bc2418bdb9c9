// Command demo lends "Clean Code" to a patron, returns it late on a shifted clock and prints the fine.
//
// By default notifications are written to stdout. With -telegram-token the email channel is also
// sent to a Telegram chat, and with -outbox-enabled both channels are queued in PostgreSQL first
// and then relayed to stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/library-lending-go/example/config"
	"github.com/AntonStoeckl/library-lending-go/lending"
	"github.com/AntonStoeckl/library-lending-go/lending/oteladapters"
	"github.com/AntonStoeckl/library-lending-go/notify"
	"github.com/AntonStoeckl/library-lending-go/notify/outbox"
)

const (
	serviceName    = "library-lending-demo"
	serviceVersion = "dev"

	demoTitle     = "Clean Code"
	demoAuthor    = "Robert C. Martin"
	demoISBN      = lending.ISBNString("978-0132350884")
	demoPatron    = "Alice"
	demoPatronID  = lending.PatronIDInt(1)
	channelEmail  = "email"
	channelSMS    = "sms"
	adapterPGX    = "pgx"
	adapterSQL    = "sql"
	adapterSQLX   = "sqlx"
	hoursInOneDay = 24
)

// Config holds the command line settings of the demo.
type Config struct {
	ObservabilityEnabled bool
	OutboxEnabled        bool
	DBAdapter            string
	DSN                  string
	TelegramToken        string
	TelegramChatID       int64
	LoanDays             int
	ReturnAfterDays      int
}

func main() {
	cfg := parseFlags()
	ctx := context.Background()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("Demo failed: %v", err)
	}
}

func parseFlags() Config {
	var (
		observability   = flag.Bool("observability-enabled", false, "Export traces and metrics via OTLP gRPC")
		outboxEnabled   = flag.Bool("outbox-enabled", false, "Queue notifications in the PostgreSQL outbox")
		dbAdapter       = flag.String("db-adapter", adapterPGX, "Database adapter for the outbox: pgx, sql or sqlx")
		dsn             = flag.String("dsn", config.PostgresDefaultDSN(), "PostgreSQL DSN for the outbox")
		telegramToken   = flag.String("telegram-token", "", "Telegram bot token, enables the Telegram sink")
		telegramChatID  = flag.Int64("telegram-chat-id", 0, "Telegram chat ID of the demo patron")
		loanDays        = flag.Int("loan-days", 7, "Loan duration in days")
		returnAfterDays = flag.Int("return-after-days", 9, "Days after lending when the book is returned")
	)

	flag.Parse()

	return Config{
		ObservabilityEnabled: *observability,
		OutboxEnabled:        *outboxEnabled,
		DBAdapter:            *dbAdapter,
		DSN:                  *dsn,
		TelegramToken:        *telegramToken,
		TelegramChatID:       *telegramChatID,
		LoanDays:             *loanDays,
		ReturnAfterDays:      *returnAfterDays,
	}
}

func run(ctx context.Context, cfg Config) error {
	obsConfig, shutdown, err := cfg.NewObservabilityConfig(ctx)
	if err != nil {
		return err
	}
	defer shutdown()

	emailSink, smsSink, err := cfg.newConsoleSinks(obsConfig.ContextualLogger)
	if err != nil {
		return err
	}

	if cfg.TelegramToken != "" {
		telegramSink, telegramErr := cfg.newTelegramSink(obsConfig.ContextualLogger)
		if telegramErr != nil {
			return telegramErr
		}

		emailSink = notify.NewFanout(emailSink, telegramSink)
	}

	var relay func(ctx context.Context) error

	if cfg.OutboxEnabled {
		emailOutbox, smsOutbox, closeDB, outboxErr := cfg.newOutboxes(ctx, obsConfig)
		if outboxErr != nil {
			return outboxErr
		}
		defer closeDB()

		consoleEmail, consoleSMS := emailSink, smsSink
		emailSink, smsSink = emailOutbox, smsOutbox

		relay = func(ctx context.Context) error {
			for _, pair := range []struct {
				source *outbox.Outbox
				target lending.Notifier
			}{{emailOutbox, consoleEmail}, {smsOutbox, consoleSMS}} {
				delivered, deliverErr := pair.source.DeliverPending(ctx, pair.target, 0)
				if deliverErr != nil {
					return deliverErr
				}

				log.Printf("Relayed %d %s notification(s) from the outbox", delivered, pair.source.Channel())
			}

			return nil
		}
	}

	clock := newShiftedClock()

	ledger, err := lending.NewLedger(emailSink, smsSink, cfg.ledgerOptions(obsConfig, clock.Now)...)
	if err != nil {
		return err
	}

	catalog := lending.NewCatalog()
	catalog.AddBook(lending.BuildBook(demoTitle, demoAuthor, demoISBN))
	catalog.AddPatron(lending.BuildPatron(demoPatron, demoPatronID))

	book, _ := catalog.FindBookByISBN(demoISBN)
	patron, _ := catalog.FindPatronByID(demoPatronID)

	if !ledger.RequestLoan(ctx, book, patron, cfg.LoanDays) {
		return fmt.Errorf("book %q is not available", book.Title)
	}

	clock.Shift(time.Duration(cfg.ReturnAfterDays) * hoursInOneDay * time.Hour)
	fine := ledger.CloseLoan(ctx, book, patron)

	if relay != nil {
		if relayErr := relay(ctx); relayErr != nil {
			return relayErr
		}
	}

	fmt.Printf("Fine for returning %q after %d days on a %d day loan: %s\n",
		book.Title, cfg.ReturnAfterDays, cfg.LoanDays, lending.FormatFine(fine))

	return nil
}

func (c Config) newConsoleSinks(logger lending.ContextualLogger) (lending.Notifier, lending.Notifier, error) {
	emailSink, err := notify.NewEmailNotifier(os.Stdout, notify.WithContextualLogger(logger))
	if err != nil {
		return nil, nil, err
	}

	smsSink, err := notify.NewSMSNotifier(os.Stdout, notify.WithContextualLogger(logger))
	if err != nil {
		return nil, nil, err
	}

	return emailSink, smsSink, nil
}

func (c Config) newTelegramSink(logger lending.ContextualLogger) (lending.Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(c.TelegramToken)
	if err != nil {
		return nil, err
	}

	options := []notify.Option{notify.WithContextualLogger(logger)}
	chatIDs := map[string]int64{}

	if c.TelegramChatID != 0 {
		chatIDs[demoPatron] = c.TelegramChatID
		options = append(options, notify.WithFallbackChatID(c.TelegramChatID))
	}

	return notify.NewTelegramNotifier(bot, chatIDs, options...)
}

func (c Config) newOutboxes(ctx context.Context, obsConfig ObservabilityConfig) (*outbox.Outbox, *outbox.Outbox, func(), error) {
	options := []outbox.Option{outbox.WithContextualLogger(obsConfig.ContextualLogger)}

	if obsConfig.MetricsCollector != nil {
		options = append(options, outbox.WithMetrics(obsConfig.MetricsCollector))
	}

	if obsConfig.TracingCollector != nil {
		options = append(options, outbox.WithTracing(obsConfig.TracingCollector))
	}

	newOutbox, closeDB, err := c.outboxFactory(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	emailOutbox, err := newOutbox(channelEmail, options...)
	if err != nil {
		closeDB()
		return nil, nil, nil, err
	}

	smsOutbox, err := newOutbox(channelSMS, options...)
	if err != nil {
		closeDB()
		return nil, nil, nil, err
	}

	return emailOutbox, smsOutbox, closeDB, nil
}

type outboxFactory func(channel string, options ...outbox.Option) (*outbox.Outbox, error)

func (c Config) outboxFactory(ctx context.Context) (outboxFactory, func(), error) {
	switch c.DBAdapter {
	case adapterPGX:
		pool, err := config.PostgresPGXPool(ctx, c.DSN)
		if err != nil {
			return nil, nil, err
		}

		return func(channel string, options ...outbox.Option) (*outbox.Outbox, error) {
			return outbox.NewOutboxFromPGXPool(pool, channel, options...)
		}, pool.Close, nil

	case adapterSQL:
		db, err := config.PostgresSQLDB(ctx, c.DSN)
		if err != nil {
			return nil, nil, err
		}

		return func(channel string, options ...outbox.Option) (*outbox.Outbox, error) {
			return outbox.NewOutboxFromSQLDB(db, channel, options...)
		}, func() { _ = db.Close() }, nil

	case adapterSQLX:
		db, err := config.PostgresSQLX(ctx, c.DSN)
		if err != nil {
			return nil, nil, err
		}

		return func(channel string, options ...outbox.Option) (*outbox.Outbox, error) {
			return outbox.NewOutboxFromSQLX(db, channel, options...)
		}, func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown db adapter %q, use %s, %s or %s", c.DBAdapter, adapterPGX, adapterSQL, adapterSQLX)
	}
}

func (c Config) ledgerOptions(obsConfig ObservabilityConfig, clock lending.Clock) []lending.Option {
	options := []lending.Option{
		lending.WithClock(clock),
		lending.WithContextualLogger(obsConfig.ContextualLogger),
	}

	if obsConfig.MetricsCollector != nil {
		options = append(options, lending.WithMetrics(obsConfig.MetricsCollector))
	}

	if obsConfig.TracingCollector != nil {
		options = append(options, lending.WithTracing(obsConfig.TracingCollector))
	}

	return options
}

// ObservabilityConfig holds the observability adapters shared by the ledger, the sinks and the outbox.
type ObservabilityConfig struct {
	ContextualLogger lending.ContextualLogger
	MetricsCollector lending.MetricsCollector
	TracingCollector lending.TracingCollector
}

// NewObservabilityConfig returns stderr logging only, or the full OpenTelemetry setup if enabled.
// The returned function flushes the exporters.
func (c Config) NewObservabilityConfig(ctx context.Context) (ObservabilityConfig, func(), error) {
	if !c.ObservabilityEnabled {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})
		return ObservabilityConfig{ContextualLogger: oteladapters.NewSlogBridgeLoggerWithHandler(handler)}, func() {}, nil
	}

	providers, err := config.NewObservabilityProviders(ctx, serviceName, serviceVersion, config.OTLPEndpoint())
	if err != nil {
		return ObservabilityConfig{}, nil, err
	}

	shutdown := func() {
		if shutdownErr := providers.Shutdown(context.Background()); shutdownErr != nil {
			log.Printf("Failed to shut down observability providers: %v", shutdownErr)
		}
	}

	log.Printf("Observability enabled, exporting to %s", config.OTLPEndpoint())

	return ObservabilityConfig{
		ContextualLogger: oteladapters.NewSlogBridgeLogger(serviceName),
		MetricsCollector: oteladapters.NewMetricsCollector(otel.Meter(serviceName)),
		TracingCollector: oteladapters.NewTracingCollector(otel.Tracer(serviceName)),
	}, shutdown, nil
}

// shiftedClock is the wall clock plus an offset which the demo moves forward to simulate elapsed days.
type shiftedClock struct {
	offset time.Duration
	mu     sync.Mutex
}

func newShiftedClock() *shiftedClock {
	return &shiftedClock{}
}

func (c *shiftedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return time.Now().Add(c.offset)
}

func (c *shiftedClock) Shift(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.offset += d
}
