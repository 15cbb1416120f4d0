//go:build !windows && !linux

package housekeeping

func (a *Autostart) Enable(bool) error        { return ErrUnsupported }
func (a *Autostart) Disable() error           { return ErrUnsupported }
func (a *Autostart) IsEnabled() (bool, error) { return false, ErrUnsupported }
