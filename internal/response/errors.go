package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"
	ErrNotLinked          ErrCode = "STUDENT_NOT_LINKED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation   ErrCode = "VALIDATION_ERROR"
	ErrInvalidID    ErrCode = "INVALID_ID"
	ErrInvalidRange ErrCode = "INVALID_DATE_RANGE"
	ErrInvalidPage  ErrCode = "INVALID_PAGE"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrUnknownResource ErrCode = "UNKNOWN_RESOURCE"

	// ─── Upstream ──────────────────────────────────────────────────────
	ErrUpstream    ErrCode = "UPSTREAM_ERROR"
	ErrBadResponse ErrCode = "UPSTREAM_BAD_RESPONSE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Неверная почта или пароль."
	case ErrSessionInvalidated:
		return "Сессия завершена. Войдите снова."
	case ErrTokenRequired:
		return "Требуется токен авторизации."
	case ErrTokenInvalid:
		return "Недействительный токен авторизации."
	case ErrTokenExpired:
		return "Срок действия токена истёк."
	case ErrNotLinked:
		return "Аккаунт студента не привязан."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Проверьте введённые данные."
	case ErrInvalidID:
		return "Неверный формат идентификатора."
	case ErrInvalidRange:
		return "Неверный диапазон дат."
	case ErrInvalidPage:
		return "Неизвестная страница."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Данные не найдены."
	case ErrUnknownResource:
		return "Неизвестный ресурс."

	// ─── Upstream ──────────────────────────────────────────────────────
	case ErrUpstream:
		return "Запрос завершился с ошибкой. Попробуйте ещё раз позже."
	case ErrBadResponse:
		return "Не удалось обработать ответ сервера. Попробуйте позже."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Слишком много запросов. Попробуйте позже."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Внутренняя ошибка сервера."
	default:
		return "Произошла непредвиденная ошибка."
	}
}
