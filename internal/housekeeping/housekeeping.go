// Package housekeeping holds the toolbox chores: working-set trimming,
// temp-folder cleanup, the periodic trim scheduler and autostart.
package housekeeping

import "errors"

// ErrUnsupported is returned where the platform has no equivalent.
var ErrUnsupported = errors.New("not supported on this platform")
