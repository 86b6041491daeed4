package keyboard

import "strings"

// parseChord はキー操作文字列（例: "Enter", "Ctrl+Shift+C"）を
// 修飾キー名の列とメインキー名に分解します。名前はすべて大文字に正規化されます。
// メインキーが無い（空文字や修飾キーのみ）場合は key が空になります。
func parseChord(s string) (modifiers []string, key string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ""
	}
	parts := strings.Split(s, "+")
	for i, p := range parts {
		parts[i] = strings.ToUpper(strings.TrimSpace(p))
	}
	for _, p := range parts[:len(parts)-1] {
		if isModifier(p) {
			modifiers = append(modifiers, p)
		}
	}
	key = parts[len(parts)-1]
	if isModifier(key) {
		return modifiers, ""
	}
	return modifiers, key
}

func isModifier(name string) bool {
	switch name {
	case "CTRL", "CONTROL", "ALT", "SHIFT", "WIN":
		return true
	}
	return false
}
