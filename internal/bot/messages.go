package bot

// Reply texts sent to chat users.
const (
	MsgAccessDenied      = "У вас нет доступа к этому боту."
	MsgPrompt            = "Отправьте IMEI, чтобы проверить информацию."
	MsgInvalidIdentifier = "Некорректный IMEI. Должно быть ровно 15 цифр."
	MsgRequestFailed     = "Ошибка запроса к API: %s"
	MsgMalformedResponse = "Ошибка обработки JSON-ответа от API."
	MsgDetailsMissing    = "Ошибка: В ответе API нет `details`."
	MsgDetailsMalformed  = "Ошибка обработки `details` в JSON."
	MsgPropertiesMissing = "Ошибка: В `details` нет `properties`."
	MsgInternalError     = "Внутренняя ошибка. Попробуйте позже."

	// Unknown replaces absent text fields in the device report.
	Unknown = "Неизвестно"
)

const (
	phraseSIMLocked   = "🔒 Заблокирован"
	phraseSIMUnlocked = "🔓 Разблокирован"
	phraseReplaced    = "♻️ Был заменён"
	phraseOriginal    = "✅ Оригинальное"
	phraseDemoUnit    = "🛠 Это демонстрационный образец"
	phraseRetailUnit  = "🚀 Обычный серийный образец"
	phraseLostMode    = "⚠️ Устройство в режиме пропажи!"
	phraseNotLost     = "✅ Не числится потерянным"
	linkLabel         = "Ссылка"
	reportHeader      = "🔍 <b>Информация об устройстве:</b>"
)
