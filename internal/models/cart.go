package models

// CartItem — строка корзины: связь пользователя с товаром и количеством.
//
// Инвариант: на пару (пользователь, товар) существует не более одной строки,
// количество всегда не меньше единицы.
type CartItem struct {
	ID       int
	UserUID  string
	ItemID   int
	Quantity int
}
