//go:build !windows

package housekeeping

import "skihide/pkg/core"

func TrimWorkingSets(core.Logger) (cleaned, failed int, err error) {
	return 0, 0, ErrUnsupported
}
