package model

import "github.com/google/uuid"

// Sale is the header row of one checkout. TotalAmount starts at 0 and is
// finalized in the same transaction once every line item is priced.
type Sale struct {
	BaseModel
	CustomerName string     `gorm:"type:varchar(255);not null" json:"customer_name"`
	TotalAmount  float64    `gorm:"type:numeric(12,2);not null;default:0" json:"total_amount"`
	Items        []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// SaleItem snapshots the product's selling price at transaction time, so
// later price edits never rewrite history.
type SaleItem struct {
	BaseModel
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product  `json:"product,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice float64   `gorm:"type:numeric(12,2);not null" json:"unit_price"`
}

// SaleLine is one requested line item of POST /sales.
type SaleLine struct {
	ProductID uuid.UUID `json:"productId" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// CreateSaleRequest is the POST /sales body.
type CreateSaleRequest struct {
	CustomerName string     `json:"customerName" validate:"required"`
	Items        []SaleLine `json:"items" validate:"required,min=1,dive"`
}

// SaleSummary is the POST /sales success response.
type SaleSummary struct {
	ID           uuid.UUID `json:"id"`
	CustomerName string    `json:"customerName"`
	TotalAmount  float64   `json:"totalAmount"`
}
