package bootstrap

import "errors"

// ErrSetupFailed indicates a DDL statement was rejected and the transaction rolled back.
var ErrSetupFailed = errors.New("setup failed")

// ErrNamespaceConflict indicates the tracking namespace exists but holds no change table.
var ErrNamespaceConflict = errors.New("tracking namespace exists without change table")

// ErrLayoutMismatch indicates the change table exists with a different column set.
var ErrLayoutMismatch = errors.New("change table has unexpected columns")

// ErrNoPlan indicates the Bootstrapper was created without a plan.
var ErrNoPlan = errors.New("no bootstrap plan")

// errAlreadyInitialized aborts the transaction when the layout turns out to
// exist already. Run maps it to OutcomeAlreadyInitialized.
var errAlreadyInitialized = errors.New("tracking layout already initialized")
