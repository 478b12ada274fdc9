package tracker

import "errors"

// ErrInspection indicates the catalog could not be queried.
var ErrInspection = errors.New("inspecting tracking layout")
