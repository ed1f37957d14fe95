package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/marubini/tillpoint-api/pkg/money"
	"gorm.io/gorm"
)

// Category represents a product category, used for menu grouping and
// Z-report sales aggregation
type Category struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;unique;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// Product represents a sellable item on the menu
type Product struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID *uuid.UUID     `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	SKU        string         `gorm:"size:100;unique;not null" json:"sku"`
	Price      money.Cents    `gorm:"default:0" json:"price"`
	Stock      int            `gorm:"default:0" json:"stock"`
	Active     bool           `gorm:"default:true" json:"active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category   *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Variations []Variation      `gorm:"foreignKey:ProductID" json:"variations,omitempty"`
	Modifiers  []ModifierOption `gorm:"foreignKey:ProductID" json:"modifiers,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// Variation represents a product variant carrying its own price and
// stock, e.g. a pour size or a bottle format
type Variation struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ProductID uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Price     money.Cents    `gorm:"default:0" json:"price"`
	Stock     int            `gorm:"default:0" json:"stock"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new variation
func (v *Variation) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Variation model
func (Variation) TableName() string {
	return "variations"
}

// ModifierOption represents an add-on that can be attached to a cart
// line, priced per unit of the modifier
type ModifierOption struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ProductID uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Price     money.Cents    `gorm:"default:0" json:"price"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new modifier option
func (m *ModifierOption) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ModifierOption model
func (ModifierOption) TableName() string {
	return "modifier_options"
}
