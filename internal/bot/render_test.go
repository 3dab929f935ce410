package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeHTML(t *testing.T) {
	assert.Equal(t, "&lt;script&gt;a &amp; b&lt;/script&gt;", EscapeHTML("<script>a & b</script>"))
	assert.Equal(t, `"quoted"`, EscapeHTML(`"quoted"`))
}

func TestRenderFullReport(t *testing.T) {
	out := Render(DeviceProperties{
		DeviceName:  "iPhone 12",
		Image:       "https://img.example/a.png?x=1&y=2",
		IMEI:        "356789012345678",
		Serial:      "F2LX",
		SIMLock:     true,
		Replacement: true,
		DemoUnit:    true,
		LostMode:    true,
		AppleModel:  "iPhone 12 <Blue>",
	})

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Len(t, lines, 13)
	assert.Equal(t, "🔍 <b>Информация об устройстве:</b>", lines[0])
	assert.Equal(t, "📱 <b>Модель:</b> iPhone 12", lines[1])
	assert.Equal(t, `📷 <b>Изображение:</b> <a href="https://img.example/a.png?x=1&amp;y=2">Ссылка</a>`, lines[2])
	assert.Equal(t, "📟 <b>IMEI 1:</b> 356789012345678", lines[3])
	assert.Equal(t, "📟 <b>IMEI 2:</b> Неизвестно", lines[4])
	assert.Equal(t, "🔄 <b>SIM-Lock:</b> 🔒 Заблокирован", lines[6])
	assert.Equal(t, "🔁 <b>Замена устройства:</b> ♻️ Был заменён", lines[8])
	assert.Equal(t, "🎛 <b>Тип устройства:</b> 🛠 Это демонстрационный образец", lines[9])
	assert.Equal(t, "🍏 <b>Модель Apple:</b> iPhone 12 &lt;Blue&gt;", lines[11])
	assert.Equal(t, "🔎 <b>Статус пропажи:</b> ⚠️ Устройство в режиме пропажи!", lines[12])
}

func TestRenderDefaults(t *testing.T) {
	out := Render(DeviceProperties{})

	assert.Contains(t, out, "📱 <b>Модель:</b> Неизвестно")
	assert.Contains(t, out, "📷 <b>Изображение:</b> Неизвестно")
	assert.Contains(t, out, "🔓 Разблокирован")
	assert.Contains(t, out, "✅ Оригинальное")
	assert.Contains(t, out, "🚀 Обычный серийный образец")
	assert.Contains(t, out, "✅ Не числится потерянным")
	assert.NotContains(t, out, "<a href")
}
