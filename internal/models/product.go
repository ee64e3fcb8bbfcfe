package models

import "gorm.io/gorm"

// Rating is the aggregate customer rating attached to a product.
type Rating struct {
	Rate  float64 `json:"rate" validate:"gte=0,lte=5"`
	Count int     `json:"count" validate:"gte=0"`
}

// Product represents a catalog product. Products are immutable from the
// cart's point of view: cart lines carry price/stock snapshots taken at
// add-time instead of referencing live catalog rows.
type Product struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string  `json:"title" validate:"required,min=3,max=200"`
	Description string  `json:"description" validate:"omitempty,max=1000"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Category    string  `json:"category" validate:"omitempty,max=100"`
	Image       string  `json:"image" validate:"omitempty,url"`
	Rating      Rating  `json:"rating" gorm:"embedded;embeddedPrefix:rating_"`
	gorm.Model  `json:"-"`
}

// Category is a catalog category entry.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
