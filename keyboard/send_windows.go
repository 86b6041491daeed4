//go:build windows

package keyboard

import (
	"fmt"

	"github.com/dacapoday/sendinput"
)

var modifierCodes = map[string]sendinput.KeyCode{
	"CTRL":    sendinput.KEY_LCONTROL,
	"CONTROL": sendinput.KEY_LCONTROL,
	"ALT":     sendinput.KEY_LMENU,
	"SHIFT":   sendinput.KEY_LSHIFT,
	"WIN":     sendinput.KEY_LWIN,
}

// Send はキー操作文字列（例: "Enter", "Tab", "Ctrl+Right"）を1回送信します。
// 空文字列は何もせずに成功します。
func Send(keyOperation string) error {
	modifiers, key := parseChord(keyOperation)
	if key == "" && len(modifiers) == 0 {
		return nil
	}
	if key == "" {
		return fmt.Errorf("keyboard: %q has no main key", keyOperation)
	}
	main := sendinput.Key(key)
	if main == 0 && len(key) == 1 {
		// 英数字 1 文字は仮想キーコードが ASCII と一致する
		main = sendinput.KeyCode(key[0])
	}
	if main == 0 {
		return fmt.Errorf("keyboard: unknown key %q", key)
	}

	var pressed []sendinput.KeyCode
	for _, m := range modifiers {
		code := modifierCodes[m]
		if err := sendinput.SendKeyboardInput(code, true); err != nil {
			releaseAll(pressed)
			return err
		}
		pressed = append(pressed, code)
	}
	if err := sendinput.SendKeyboardInput(main, true); err != nil {
		releaseAll(pressed)
		return err
	}
	if err := sendinput.SendKeyboardInput(main, false); err != nil {
		releaseAll(pressed)
		return err
	}
	releaseAll(pressed)
	return nil
}

// releaseAll は押した修飾キーを逆順で離します。
func releaseAll(pressed []sendinput.KeyCode) {
	for i := len(pressed) - 1; i >= 0; i-- {
		_ = sendinput.SendKeyboardInput(pressed[i], false)
	}
}
