package audio

import (
	"fmt"
	"os/exec"
	"strings"

	"skihide/pkg/core"
)

// Pulse controls the default sink through pactl (PulseAudio or PipeWire).
type Pulse struct {
	log core.Logger
	run func(args ...string) (string, error)
}

func Open(log core.Logger) (*Pulse, error) {
	if _, err := exec.LookPath("pactl"); err != nil {
		return nil, fmt.Errorf("%w: pactl not found: %v", ErrUnavailable, err)
	}
	p := &Pulse{log: log, run: runPactl}
	if _, err := p.Mute(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	log.Info("Audio endpoint opened", "backend", "pactl")
	return p, nil
}

func runPactl(args ...string) (string, error) {
	out, err := exec.Command("pactl", args...).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("pactl %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

func (p *Pulse) Mute() (bool, error) {
	out, err := p.run("get-sink-mute", defaultSink)
	if err != nil {
		return false, err
	}
	return parseMute(out)
}

func (p *Pulse) SetMute(muted bool) error {
	_, err := p.run("set-sink-mute", defaultSink, formatMute(muted))
	return err
}

func (p *Pulse) Volume() (float32, error) {
	out, err := p.run("get-sink-volume", defaultSink)
	if err != nil {
		return 0, err
	}
	return parseVolume(out)
}

func (p *Pulse) SetVolume(level float32) error {
	if err := checkVolume(level); err != nil {
		return err
	}
	_, err := p.run("set-sink-volume", defaultSink, formatVolume(level))
	return err
}

func (p *Pulse) Close() error {
	return nil
}
