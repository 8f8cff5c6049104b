package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"backline/internal/database"
	"backline/internal/domain"
	"backline/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "backline.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM rental_agreements")
	db.Exec("DELETE FROM rental_items")
	db.Exec("DELETE FROM products")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@backline.local",
		PasswordHash: string(adminHash),
		Name:         "Admin",
		Role:         domain.RoleAdmin,
	}
	db.Create(&admin)
	log.Println("Admin created: admin@backline.local / admin123")

	// ================== ROOMS ==================
	log.Println("Creating rooms...")

	rooms := []domain.Room{
		{
			Name:        "Drum Room A",
			Description: "Pearl kit, wedges, vocal PA",
			RoomType:    domain.RoomDrums,
			Capacity:    6,
			IsVisible:   true,
		},
		{
			Name:        "Drum Room B",
			Description: "Yamaha kit, good for full band rehearsals",
			RoomType:    domain.RoomDrums,
			Capacity:    8,
			IsVisible:   true,
		},
		{
			Name:        "Guitar Studio",
			Description: "Amps and combos only, no acoustic drums",
			RoomType:    domain.RoomGuitar,
			Capacity:    4,
			IsVisible:   true,
		},
		{
			Name:        "Hall",
			Description: "Large universal room for parties and events",
			RoomType:    domain.RoomUniversal,
			Capacity:    30,
			IsVisible:   true,
		},
	}
	for i := range rooms {
		db.Create(&rooms[i])
	}

	// ================== BOOKINGS ==================
	log.Println("Creating bookings...")

	now := time.Now()
	tomorrow := now.AddDate(0, 0, 1).Format("2006-01-02")
	drumRoom := rooms[0]
	bookings := []map[string]any{
		{
			"date": tomorrow, "start_time": "14:00", "duration_hours": 2.0,
			"start_min": 840, "end_min": 960,
			"category": "band", "status": "confirmed",
			"room_id": drumRoom.ID, "room_name": drumRoom.Name,
			"customer_name": "The Valves", "customer_phone": "+1 555 0101",
			"band_name": "The Valves",
		},
		{
			"date": tomorrow, "start_time": "10:00", "duration_hours": 1.0,
			"start_min": 600, "end_min": 660,
			"category": "individual", "status": "pending",
			"customer_name": "Mia K", "customer_phone": "+1 555 0102",
		},
	}
	for _, b := range bookings {
		b["created_at"] = now
		b["updated_at"] = now
		db.Table("bookings").Create(b)
	}

	// ================== STORE ==================
	log.Println("Creating products and rental items...")

	products := []domain.Product{
		{Name: "D'Addario EXL110 strings", Category: "strings", Price: 9.5, Stock: 40, IsVisible: true},
		{Name: "Vic Firth 5A sticks", Category: "sticks", Price: 12.0, Stock: 25, IsVisible: true},
		{Name: "Instrument cable 3m", Category: "accessories", Price: 15.0, Stock: 18, IsVisible: true},
	}
	for i := range products {
		db.Create(&products[i])
	}

	items := []domain.RentalItem{
		{Name: "Fender Stratocaster", Category: "guitar", DailyPrice: 25.0, IsAvailable: true},
		{Name: "Boss Katana 100", Category: "amp", DailyPrice: 15.0, IsAvailable: true},
		{Name: "Shure SM58", Category: "mic", DailyPrice: 5.0, IsAvailable: true},
	}
	for i := range items {
		db.Create(&items[i])
	}

	log.Println("Seed complete.")
}
