// Package models содержит доменные модели магазина: пользователей,
// товары и строки корзины. Структуры используются в бизнес-логике
// и при работе с хранилищем.
package models

import "time"

// Права доступа, назначаемые пользователю.
const (
	PermissionUser             = "USER"
	PermissionAdmin            = "ADMIN"
	PermissionItemCreate       = "ITEMCREATE"
	PermissionItemUpdate       = "ITEMUPDATE"
	PermissionItemDelete       = "ITEMDELETE"
	PermissionPermissionUpdate = "PERMISSIONUPDATE"
)

// User представляет зарегистрированного пользователя системы.
//
// ResetToken и ResetTokenExpiry устанавливаются и сбрасываются только вместе:
// либо оба заполнены (выдан токен сброса пароля), либо оба пусты.
type User struct {
	UID              string     // Уникальный идентификатор пользователя
	Email            string     // Электронная почта, хранится в нижнем регистре
	Username         string     // Имя пользователя
	PasswordHash     string     // Bcrypt-хэш пароля
	Permissions      []string   // Набор прав, при регистрации ровно {USER}
	ResetToken       *string    // Токен сброса пароля, одноразовый
	ResetTokenExpiry *time.Time // Срок действия токена сброса
	CreatedAt        time.Time
}

// HasAnyPermission сообщает, есть ли у пользователя хотя бы одно
// из перечисленных прав.
func (u *User) HasAnyPermission(allowed ...string) bool {
	for _, need := range allowed {
		for _, have := range u.Permissions {
			if have == need {
				return true
			}
		}
	}
	return false
}
