package models

import "time"

// Material is the fabric a clothing item is made of.
type Material string

const (
	MaterialCotton  Material = "Cotton"
	MaterialDenim   Material = "Denim"
	MaterialLeather Material = "Leather"
	MaterialLinen   Material = "Linen"
)

// Materials lists every accepted Material, in display order.
var Materials = []Material{MaterialCotton, MaterialDenim, MaterialLeather, MaterialLinen}

// Valid reports whether m is one of the known materials.
func (m Material) Valid() bool {
	for _, known := range Materials {
		if m == known {
			return true
		}
	}
	return false
}

// ClothingItem is a single entry of the catalog.
type ClothingItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null" validate:"required"`
	Material  Material  `json:"material" gorm:"type:varchar(16);not null" validate:"required,oneof=Cotton Denim Leather Linen"`
	Price     float64   `json:"price" gorm:"not null"`
	Discount  float64   `json:"discount" gorm:"not null;default:0" validate:"gte=0,lte=100"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FinalPrice returns the price after the percentage discount is applied.
// No rounding is performed.
func (c ClothingItem) FinalPrice() float64 {
	return c.Price - c.Price*c.Discount/100
}

// ClothingPatch holds the fields of a partial update. Nil fields are left untouched.
type ClothingPatch struct {
	Name     *string   `json:"name"`
	Material *Material `json:"material"`
	Price    *float64  `json:"price"`
	Discount *float64  `json:"discount"`
}

// Apply merges the non-nil fields of p into item.
func (p ClothingPatch) Apply(item *ClothingItem) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Material != nil {
		item.Material = *p.Material
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Discount != nil {
		item.Discount = *p.Discount
	}
}

// Empty reports whether the patch carries no field at all.
func (p ClothingPatch) Empty() bool {
	return p.Name == nil && p.Material == nil && p.Price == nil && p.Discount == nil
}
