package models

// ResetEmail — сообщение для очереди уведомлений: кому и какую
// ссылку сброса пароля отправить.
type ResetEmail struct {
	Email string `json:"email"`
	Link  string `json:"link"`
}
