package main

import (
	"log"

	"github.com/uday8116/swift-basket/internal/config"
	"github.com/uday8116/swift-basket/internal/hash"
	"github.com/uday8116/swift-basket/internal/models"
)

// Seeds the database with sample accounts, catalog entries and home content.
// Destructive: wipes all existing rows first.
func main() {
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	for _, table := range []string{"order_items", "orders", "addresses", "home_contents", "products", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("wipe %s: %v", table, err)
		}
	}

	passwordHash, err := hash.HashPassword("password123")
	if err != nil {
		log.Fatal(err)
	}

	users := []models.User{
		{Name: "Platform Admin", Email: "admin@example.com", PasswordHash: passwordHash, Role: models.RoleSuperAdmin},
		{Name: "John Doe", Email: "john@example.com", PasswordHash: passwordHash, Role: models.RoleAdmin},
		{Name: "Jane Smith", Email: "jane@example.com", PasswordHash: passwordHash, Role: models.RoleUser},
	}
	if err := db.Create(&users).Error; err != nil {
		log.Fatalf("seed users: %v", err)
	}
	retailer := users[1]

	products := []models.Product{
		{
			UserID:        retailer.ID,
			Name:          "Classic Denim Jacket",
			Image:         "/images/sample.jpg",
			Images:        []string{},
			Brand:         "Levis",
			Category:      "Men",
			Description:   "Timeless denim jacket with a regular fit",
			Price:         2499,
			OriginalPrice: 3999,
			CountInStock:  12,
		},
		{
			UserID:        retailer.ID,
			Name:          "Running Shoes",
			Image:         "/images/sample.jpg",
			Images:        []string{},
			Brand:         "Nike",
			Category:      "Footwear",
			Description:   "Lightweight everyday running shoes",
			Price:         4999,
			OriginalPrice: 6499,
			CountInStock:  8,
		},
		{
			UserID:        retailer.ID,
			Name:          "Cotton Kurta",
			Image:         "/images/sample.jpg",
			Images:        []string{},
			Brand:         "FabIndia",
			Category:      "Women",
			Description:   "Handwoven cotton kurta",
			Price:         1299,
			OriginalPrice: 1999,
			CountInStock:  20,
		},
	}
	if err := db.Create(&products).Error; err != nil {
		log.Fatalf("seed products: %v", err)
	}

	content := []models.HomeContent{
		{Type: models.HomeContentBrand, Name: "Nike", Image: "/images/sample.jpg", SortOrder: 0, IsActive: true},
		{Type: models.HomeContentBrand, Name: "Levis", Image: "/images/sample.jpg", SortOrder: 1, IsActive: true},
		{Type: models.HomeContentCategory, Name: "Men", Image: "/images/sample.jpg", SortOrder: 0, IsActive: true},
		{Type: models.HomeContentCategory, Name: "Women", Image: "/images/sample.jpg", SortOrder: 1, IsActive: true},
	}
	if err := db.Create(&content).Error; err != nil {
		log.Fatalf("seed home content: %v", err)
	}

	log.Printf("seeded %d users, %d products, %d home content items", len(users), len(products), len(content))
}
