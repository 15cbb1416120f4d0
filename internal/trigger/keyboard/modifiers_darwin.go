package keyboard

import (
	"golang.design/x/hotkey"

	"skihide/internal/trigger"
)

var modifierMap = map[string]hotkey.Modifier{
	trigger.ModCtrl:  hotkey.ModCtrl,
	trigger.ModAlt:   hotkey.ModOption,
	trigger.ModShift: hotkey.ModShift,
	trigger.ModWin:   hotkey.ModCmd,
}
