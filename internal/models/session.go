package models

// Session — контекст запроса, построенный один раз из входящей куки.
//
// Анонимная сессия (пустой UserUID) — корректное состояние, а не ошибка:
// ошибкой она становится только там, где операция требует аутентификации.
type Session struct {
	UserUID string
}

// IsLoggedIn сообщает, аутентифицирован ли пользователь.
func (s Session) IsLoggedIn() bool {
	return s.UserUID != ""
}
