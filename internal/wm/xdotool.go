package wm

import (
	"strconv"
	"strings"
)

func (h Handle) decimal() string {
	return strconv.FormatUint(uint64(h), 10)
}

// parseWindowIDs reads one decimal window id per line.
func parseWindowIDs(out string) []Handle {
	var ids []Handle
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		id, err := strconv.ParseUint(line, 10, 64)
		if err != nil || id == 0 {
			continue
		}
		ids = append(ids, Handle(id))
	}
	return ids
}

// parseGeometry reads WIDTH/HEIGHT from `xdotool getwindowgeometry --shell`.
func parseGeometry(out string) (width, height int) {
	for _, line := range strings.Split(out, "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			continue
		}
		switch key {
		case "WIDTH":
			width, _ = strconv.Atoi(value)
		case "HEIGHT":
			height, _ = strconv.Atoi(value)
		}
	}
	return width, height
}
