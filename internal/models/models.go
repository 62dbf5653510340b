package models

import (
	"time"
)

const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superAdmin"
)

type Product struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"    json:"id"`
	UserID        uint      `gorm:"index;not null"              json:"user"`
	Name          string    `gorm:"not null"                    json:"name"`
	Image         string    `gorm:"not null"                    json:"image"`
	Images        []string  `gorm:"serializer:json"             json:"images"`
	Brand         string    `gorm:"index;not null"              json:"brand"`
	Category      string    `gorm:"index;not null"              json:"category"`
	Description   string    `gorm:"not null"                    json:"description"`
	Price         float64   `gorm:"index;not null"              json:"price"`
	OriginalPrice float64   `json:"originalPrice"`
	CountInStock  int       `gorm:"not null;default:0"          json:"countInStock"`
	Rating        float64   `gorm:"default:0"                   json:"rating"`
	NumReviews    int       `gorm:"default:0"                   json:"numReviews"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"not null"                 json:"name"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Role         string    `gorm:"not null;default:user"    json:"role"`
	Addresses    []Address `gorm:"foreignKey:UserID"        json:"addresses,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Address is a saved shipping address on a user profile.
type Address struct {
	ID         uint   `gorm:"primaryKey"     json:"id"`
	UserID     uint   `gorm:"index;not null" json:"-"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type ShippingAddress struct {
	Street     string `json:"street"     validate:"required"`
	City       string `json:"city"       validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country"    validate:"required"`
}

type PaymentResult struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	UpdateTime string `json:"update_time"`
	Email      string `json:"email_address"`
}

type Order struct {
	ID              uint            `gorm:"primaryKey;autoIncrement"          json:"id"`
	UserID          uint            `gorm:"index;not null"                    json:"user_id"`
	User            User            `gorm:"foreignKey:UserID"                 json:"user,omitempty"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID"                json:"orderItems"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shippingAddress"`
	PaymentMethod   string          `gorm:"not null"                          json:"paymentMethod"`
	ItemsPrice      float64         `json:"itemsPrice"`
	TaxPrice        float64         `json:"taxPrice"`
	ShippingPrice   float64         `json:"shippingPrice"`
	TotalPrice      float64         `json:"totalPrice"`
	IsPaid          bool            `gorm:"default:false"                     json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	IsDelivered     bool            `gorm:"default:false"                     json:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	PaymentResult   PaymentResult   `gorm:"embedded;embeddedPrefix:payment_"  json:"paymentResult"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// OrderItem is a snapshot of a product at order time. Name, image and price are
// copied from the catalog so later catalog edits do not rewrite order history.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey"     json:"id"`
	OrderID   uint    `gorm:"index;not null" json:"order_id"`
	ProductID uint    `gorm:"not null"       json:"product"`
	Name      string  `gorm:"not null"       json:"name"`
	Image     string  `json:"image"`
	Price     float64 `gorm:"not null"       json:"price"`
	Qty       int     `gorm:"not null"       json:"qty"`
}

const (
	HomeContentBrand    = "brand"
	HomeContentCategory = "category"
)

type HomeContent struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"    json:"id"`
	Type      string    `gorm:"index;not null"              json:"type"`
	Name      string    `gorm:"not null"                    json:"name"`
	Image     string    `json:"image"`
	Discount  string    `gorm:"default:'UP TO 60% OFF'"     json:"discount"`
	SortOrder int       `gorm:"column:sort_order;default:0" json:"order"`
	IsActive  bool      `gorm:"default:true"                json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
