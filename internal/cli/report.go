package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aqasim81/schema/internal/bootstrap"
	"github.com/aqasim81/schema/internal/config"
	"github.com/aqasim81/schema/internal/database"
	"github.com/aqasim81/schema/internal/ddl"
)

const exitCodeError = 1

// report writes a user-facing message for err to w and returns the exit code.
func report(w io.Writer, err error) int {
	msg := errorMessage(err)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}

	fmt.Fprint(w, msg)

	return exitCodeError
}

func errorMessage(err error) string {
	msg := err.Error()
	if !strings.HasPrefix(msg, "schema: ") {
		msg = "schema: " + msg
	}

	switch {
	case errors.Is(err, config.ErrDatabaseURIRequired):
		return msg
	case errors.Is(err, database.ErrInvalidDatabaseURL):
		return msg + "\nCheck the value passed with --database or set in " + config.EnvDatabaseURI + "."
	case errors.Is(err, database.ErrConnectionFailed):
		return msg + "\nIs the database reachable and are the credentials correct?"
	case errors.Is(err, bootstrap.ErrNamespaceConflict):
		return msg + "\nThe namespace was not created by setup. Drop it or configure a different namespace."
	case errors.Is(err, bootstrap.ErrLayoutMismatch):
		return msg + "\nThe change table was created with a different column set. Nothing was changed."
	case errors.Is(err, bootstrap.ErrSetupFailed):
		return msg + "\nThe transaction was rolled back; the database is unchanged."
	case errors.Is(err, ddl.ErrInvalidLayout):
		return msg + "\nFix the namespace or table name in the configuration file."
	default:
		return msg
	}
}
