package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/aqasim81/schema/internal/bootstrap"
	"github.com/aqasim81/schema/internal/config"
	"github.com/aqasim81/schema/internal/database"
	"github.com/aqasim81/schema/internal/ddl"
)

var setupCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "setup",
	Short: "Setup database to receive schema change",
	Long: `Create the tracking namespace and change table in one transaction.

If either statement fails the transaction is rolled back and the database
is left as it was. If the tracking table already exists, setup reports it
and exits with status 0.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() { //nolint:gochecknoinits // standard Cobra pattern for flag registration
	setupCmd.Flags().Bool("dry-run", false, "print the DDL transaction without connecting")
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	cfg := AppConfig
	out := cmd.OutOrStdout()

	plan, err := ddl.Build(ddl.Layout{Namespace: cfg.Namespace, Table: cfg.Table})
	if err != nil {
		return err
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		fmt.Fprint(out, plan.Script())
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := newLogger(cmd.ErrOrStderr(), verbose)

	conn, err := connectDB(ctx, cfg, out)
	if err != nil {
		return err
	}
	defer conn.Close(ctx) //nolint:errcheck // best-effort close on exit

	return executeSetup(ctx, out, conn, plan, setupOpts{
		lockTimeout: cfg.LockTimeout,
		stmtTimeout: cfg.StatementTimeout,
		logger:      logger,
	})
}

type setupOpts struct {
	lockTimeout time.Duration
	stmtTimeout time.Duration
	logger      *slog.Logger
}

func connectDB(ctx context.Context, cfg *config.Config, out io.Writer) (*pgx.Conn, error) {
	fmt.Fprintf(out, "Connecting to %s\n", config.RedactURL(cfg.DatabaseURI))

	conn, err := database.Connect(ctx, cfg.DatabaseURI, cfg.ConnectTimeout)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return conn, nil
}

func executeSetup(
	ctx context.Context,
	out io.Writer,
	conn bootstrap.Beginner,
	plan *ddl.Plan,
	opts setupOpts,
) error {
	b := bootstrap.New(conn, plan,
		bootstrap.WithLockTimeout(opts.lockTimeout),
		bootstrap.WithStatementTimeout(opts.stmtTimeout),
		bootstrap.WithLogger(opts.logger),
		bootstrap.WithProgressCallback(progressPrinter(out)),
	)

	outcome, err := b.Run(ctx)
	if err != nil {
		return err
	}

	printOutcome(out, outcome, plan.Layout)

	return nil
}

// progressPrinter renders bootstrap progress events as one line per statement.
func progressPrinter(out io.Writer) func(bootstrap.ProgressEvent) {
	return func(event bootstrap.ProgressEvent) {
		switch event.Status {
		case bootstrap.StatusStarting:
			fmt.Fprintf(out, "  %s %s ... ", event.Statement.Kind, event.Statement.Target)
		case bootstrap.StatusCompleted:
			fmt.Fprintf(out, "done (%s)\n", event.Duration.Truncate(time.Millisecond))
		case bootstrap.StatusSkipped:
			fmt.Fprintln(out, "exists")
		case bootstrap.StatusFailed:
			fmt.Fprintf(out, "FAILED\n")
			fmt.Fprintf(out, "    Error: %v\n", event.Error)
		}
	}
}

func printOutcome(out io.Writer, outcome bootstrap.Outcome, l ddl.Layout) {
	switch outcome {
	case bootstrap.OutcomeCreated:
		fmt.Fprintf(out, "\nSetup complete: created %s and %s.\n", l.QuotedNamespace(), l.QualifiedTable())
	case bootstrap.OutcomeAlreadyInitialized:
		fmt.Fprintf(out, "\nAlready initialized: %s exists, nothing to do.\n", l.QualifiedTable())
	}
}
