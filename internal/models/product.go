package models

import "gorm.io/gorm"

// Product represents a catalog item. Prices are formatted display strings
// (e.g. "RM 2,500"); use pkg/money to obtain numeric amounts.
type Product struct {
	ID            string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty"`
	Name          string `json:"name" validate:"required,min=2,max=100"`
	Description   string `json:"description" validate:"omitempty,max=500"`
	Price         string `json:"price" validate:"required"`
	OriginalPrice string `json:"original_price,omitempty"`
	Discount      string `json:"discount,omitempty"`
	Badge         string `json:"badge,omitempty" validate:"omitempty,oneof=new discount"`
	ImageURL      string `json:"image_url"`
	Category      string `json:"category,omitempty"`
	Details       string `json:"details,omitempty" validate:"omitempty,max=1000"`
	gorm.Model           // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
