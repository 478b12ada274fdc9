package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aqasim81/schema/internal/database"
	"github.com/aqasim81/schema/internal/ddl"
	"github.com/aqasim81/schema/internal/tracker"
)

// Outcome is the non-error result of Run.
type Outcome int

// Run outcomes.
const (
	// OutcomeCreated means the namespace and change table were created and committed.
	OutcomeCreated Outcome = iota + 1
	// OutcomeAlreadyInitialized means the layout existed before; nothing was changed.
	OutcomeAlreadyInitialized
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeAlreadyInitialized:
		return "already initialized"
	default:
		return "unknown"
	}
}

// Progress status constants reported via ProgressEvent.
const (
	StatusStarting  = "starting"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

// ProgressEvent is emitted for each plan statement executed.
// StatusSkipped means the object turned out to exist already.
type ProgressEvent struct {
	Statement *ddl.Statement
	Status    string
	Duration  time.Duration
	Error     error
}

// inspectFunc reports the current state of the layout as seen by tx.
type inspectFunc func(ctx context.Context, tx pgx.Tx, l ddl.Layout) (tracker.State, error)

// Bootstrapper creates the tracking namespace and change table of a plan
// as one transaction on a caller-owned connection.
type Bootstrapper struct {
	conn             Beginner
	plan             *ddl.Plan
	lockTimeout      time.Duration
	statementTimeout time.Duration
	logger           *slog.Logger
	onProgress       func(ProgressEvent)
	inspect          inspectFunc
}

// Option configures a Bootstrapper.
type Option func(*Bootstrapper)

// WithLockTimeout sets lock_timeout for the setup transaction. Zero keeps the server setting.
func WithLockTimeout(d time.Duration) Option {
	return func(b *Bootstrapper) { b.lockTimeout = d }
}

// WithStatementTimeout sets statement_timeout for the setup transaction. Zero keeps the server setting.
func WithStatementTimeout(d time.Duration) Option {
	return func(b *Bootstrapper) { b.statementTimeout = d }
}

// WithLogger sets the logger. slog.Default() is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bootstrapper) { b.logger = l }
}

// WithProgressCallback sets a function called for each statement processed.
func WithProgressCallback(fn func(ProgressEvent)) Option {
	return func(b *Bootstrapper) { b.onProgress = fn }
}

// New creates a Bootstrapper for plan on conn. conn stays open after Run.
func New(conn Beginner, plan *ddl.Plan, opts ...Option) *Bootstrapper {
	b := &Bootstrapper{
		conn: conn,
		plan: plan,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		b.logger = slog.Default()
	}

	if b.inspect == nil {
		b.inspect = func(ctx context.Context, tx pgx.Tx, l ddl.Layout) (tracker.State, error) {
			return tracker.New(tx).Inspect(ctx, l)
		}
	}

	return b
}

// Run executes the plan in a single transaction.
//
// On success the layout exists and OutcomeCreated is returned. If the layout
// already existed, or a concurrent run created it first, the transaction is
// rolled back and OutcomeAlreadyInitialized is returned with a nil error.
// Any other failure rolls back and returns the cause; statement errors wrap
// ErrSetupFailed, connection errors are returned without it.
func (b *Bootstrapper) Run(ctx context.Context) (Outcome, error) {
	if b.plan == nil {
		return 0, ErrNoPlan
	}

	log := b.logger.With("namespace", b.plan.Layout.Namespace, "table", b.plan.Layout.Table)

	err := execInTransaction(ctx, b.conn, log, func(tx pgx.Tx) error {
		return b.setup(ctx, tx, log)
	})

	switch {
	case err == nil:
		log.Info("tracking layout created")
		return OutcomeCreated, nil
	case errors.Is(err, errAlreadyInitialized):
		log.Info("tracking layout already initialized", "detail", err)
		return OutcomeAlreadyInitialized, nil
	default:
		return 0, err
	}
}

func (b *Bootstrapper) setup(ctx context.Context, tx pgx.Tx, log *slog.Logger) error {
	if err := b.applyTimeouts(ctx, tx); err != nil {
		return err
	}

	l := b.plan.Layout

	state, err := b.inspect(ctx, tx, l)
	if err != nil {
		return err
	}

	log.Debug("inspected tracking layout", "state", state)

	switch state {
	case tracker.StateAbsent:
	case tracker.StateInitialized:
		return errAlreadyInitialized
	case tracker.StateNamespaceOnly:
		return fmt.Errorf("%w: %s has no table %s", ErrNamespaceConflict, l.QuotedNamespace(), l.QualifiedTable())
	case tracker.StateMismatch:
		return fmt.Errorf("%w: %s, want columns %v", ErrLayoutMismatch, l.QualifiedTable(), ddl.Columns)
	default:
		return fmt.Errorf("unexpected tracking layout state %s", state)
	}

	for i := range b.plan.Statements {
		if err := b.execStatement(ctx, tx, log, &b.plan.Statements[i]); err != nil {
			return err
		}
	}

	return nil
}

func (b *Bootstrapper) applyTimeouts(ctx context.Context, tx pgx.Tx) error {
	if b.lockTimeout > 0 {
		if err := SetLocalLockTimeout(ctx, tx, b.lockTimeout); err != nil {
			return err
		}
	}

	if b.statementTimeout > 0 {
		if err := SetLocalStatementTimeout(ctx, tx, b.statementTimeout); err != nil {
			return err
		}
	}

	return nil
}

func (b *Bootstrapper) execStatement(ctx context.Context, tx pgx.Tx, log *slog.Logger, s *ddl.Statement) error {
	b.fireProgress(ProgressEvent{Statement: s, Status: StatusStarting})

	start := time.Now()
	_, err := tx.Exec(ctx, s.SQL)
	duration := time.Since(start)

	if err == nil {
		log.Debug("statement executed", "kind", s.Kind, "target", s.Target, "duration", duration)
		b.fireProgress(ProgressEvent{Statement: s, Status: StatusCompleted, Duration: duration})

		return nil
	}

	if database.IsAlreadyExists(err) {
		b.fireProgress(ProgressEvent{Statement: s, Status: StatusSkipped, Duration: duration, Error: err})

		return fmt.Errorf("%w: %s %s: %w", errAlreadyInitialized, s.Kind, s.Target, err)
	}

	b.fireProgress(ProgressEvent{Statement: s, Status: StatusFailed, Duration: duration, Error: err})

	if database.IsStatementError(err) {
		return fmt.Errorf("%w: %s %s: %w", ErrSetupFailed, s.Kind, s.Target, err)
	}

	return fmt.Errorf("executing %s %s: %w", s.Kind, s.Target, err)
}

func (b *Bootstrapper) fireProgress(event ProgressEvent) {
	if b.onProgress != nil {
		b.onProgress(event)
	}
}
