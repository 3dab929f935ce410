package lookup

// CheckRequest is the body accepted by POST /api/check-imei.
type CheckRequest struct {
	IMEI  string `json:"imei"`
	Token string `json:"token"`
}

// ErrorResponse is the body returned for every rejected or failed lookup.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Client-facing messages. Existing bot deployments match on this wording.
const (
	MsgMissingJSON       = "Ошибка: JSON не передан или формат некорректен"
	MsgInvalidIdentifier = "Некорректный IMEI"
	MsgInvalidToken      = "Неверный токен"
	MsgCheckFailed       = "Ошибка проверки IMEI"
	MsgProviderFailure   = "Сервис проверки IMEI недоступен"
)
