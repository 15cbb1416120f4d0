package keyboard

import (
	"golang.design/x/hotkey"

	"skihide/internal/trigger"
)

// X11 reports Alt as Mod1 and Super as Mod4 on common keymaps.
var modifierMap = map[string]hotkey.Modifier{
	trigger.ModCtrl:  hotkey.ModCtrl,
	trigger.ModAlt:   hotkey.Mod1,
	trigger.ModShift: hotkey.ModShift,
	trigger.ModWin:   hotkey.Mod4,
}
