package models

import "time"

// Item представляет товар каталога.
type Item struct {
	ID          int
	Title       string
	Description string
	Price       int // Цена в копейках
	OwnerUID    string
	CreatedAt   time.Time
}

// DummyItem — входные данные для создания и обновления товара.
type DummyItem struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description"`
	Price       int    `json:"price" validate:"required,min=1"`
}
