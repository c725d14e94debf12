package model

type Product struct {
	BaseModel
	Name         string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category     string  `gorm:"type:varchar(100);not null" json:"category" validate:"required"`
	BuyingPrice  float64 `gorm:"type:numeric(12,2);default:0" json:"buying_price" validate:"gte=0"`
	SellingPrice float64 `gorm:"type:numeric(12,2);default:0" json:"selling_price" validate:"gte=0"`
	Stock        int     `gorm:"default:0" json:"stock" validate:"gte=0"`

	// Relasi
	SaleItems []SaleItem `json:"sale_items,omitempty"`
}
