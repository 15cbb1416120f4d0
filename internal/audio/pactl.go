package audio

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const defaultSink = "@DEFAULT_SINK@"

// parseMute reads `pactl get-sink-mute` output, e.g. "Mute: yes".
func parseMute(out string) (bool, error) {
	_, value, ok := strings.Cut(strings.TrimSpace(out), ":")
	if !ok {
		return false, fmt.Errorf("unexpected mute output %q", out)
	}
	switch strings.TrimSpace(value) {
	case "yes":
		return true, nil
	case "no":
		return false, nil
	}
	return false, fmt.Errorf("unexpected mute value %q", value)
}

// parseVolume reads the first channel percentage from
// `pactl get-sink-volume`, e.g. "Volume: front-left: 39321 /  60% / ...".
func parseVolume(out string) (float32, error) {
	for _, field := range strings.Fields(out) {
		if !strings.HasSuffix(field, "%") {
			continue
		}
		pct, err := strconv.Atoi(strings.TrimSuffix(field, "%"))
		if err != nil {
			continue
		}
		return clamp(float32(pct) / 100), nil
	}
	return 0, fmt.Errorf("no volume percentage in %q", out)
}

func formatVolume(v float32) string {
	return strconv.Itoa(int(math.Round(float64(v)*100))) + "%"
}

func formatMute(m bool) string {
	if m {
		return "1"
	}
	return "0"
}
