package bot

import (
	"fmt"
	"html"
	"strings"
)

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeHTML escapes the characters Telegram's HTML parse mode treats as markup.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// field escapes a text value, substituting Unknown when it is empty.
func field(s string) string {
	if s == "" {
		return Unknown
	}
	return EscapeHTML(s)
}

func choose(set bool, yes, no string) string {
	if set {
		return yes
	}
	return no
}

// Render formats the device report as a Telegram HTML message.
func Render(p DeviceProperties) string {
	image := Unknown
	if p.Image != "" {
		image = fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(p.Image), linkLabel)
	}

	var b strings.Builder
	b.WriteString(reportHeader + "\n")
	line := func(icon, label, value string) {
		fmt.Fprintf(&b, "%s <b>%s:</b> %s\n", icon, label, value)
	}
	line("📱", "Модель", field(p.DeviceName))
	line("📷", "Изображение", image)
	line("📟", "IMEI 1", field(p.IMEI))
	line("📟", "IMEI 2", field(p.IMEI2))
	line("📦", "Серийный номер", field(p.Serial))
	line("🔄", "SIM-Lock", choose(p.SIMLock, phraseSIMLocked, phraseSIMUnlocked))
	line("📌", "Описание модели", field(p.ModelDesc))
	line("🔁", "Замена устройства", choose(p.Replacement, phraseReplaced, phraseOriginal))
	line("🎛", "Тип устройства", choose(p.DemoUnit, phraseDemoUnit, phraseRetailUnit))
	line("🌍", "Регион Apple", field(p.AppleRegion))
	line("🍏", "Модель Apple", field(p.AppleModel))
	line("🔎", "Статус пропажи", choose(p.LostMode, phraseLostMode, phraseNotLost))
	return b.String()
}
