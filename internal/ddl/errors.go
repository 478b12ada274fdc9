package ddl

import "errors"

// ErrInvalidLayout indicates a namespace or table name PostgreSQL would reject.
var ErrInvalidLayout = errors.New("invalid tracking layout")

// ErrInvalidPlan indicates rendered DDL does not describe the tracking layout.
var ErrInvalidPlan = errors.New("invalid bootstrap plan")
