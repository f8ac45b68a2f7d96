package main

import (
	"log"
	"os"

	"hotelease/internal/database"
	"hotelease/internal/domain"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "hotelease.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM favorites")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM hotels")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@hotelease.co.za",
		PasswordHash: string(adminHash),
		FirstName:    "Admin",
		LastName:     "User",
		Role:         domain.RoleAdmin,
	}
	db.Create(&admin)
	log.Println("Admin created: admin@hotelease.co.za / admin123")

	guestHash, _ := bcrypt.GenerateFromPassword([]byte("guest123"), bcrypt.DefaultCost)
	guest := domain.User{
		Email:        "guest@example.com",
		PasswordHash: string(guestHash),
		FirstName:    "Thandi",
		LastName:     "Nkosi",
		Phone:        "+27 82 000 0001",
		Role:         domain.RoleUser,
	}
	db.Create(&guest)
	log.Println("Guest created: guest@example.com / guest123")

	log.Println("Creating hotels...")
	hotels := []domain.Hotel{
		{
			Name:          "Table Bay Grand",
			Slug:          "table-bay-grand",
			Location:      "V&A Waterfront, Cape Town",
			Address:       "1 Quay Road",
			City:          "Cape Town",
			Province:      "Western Cape",
			Country:       "South Africa",
			Description:   "Harbourside hotel with views of Table Mountain.",
			PricePerNight: 2400,
			Currency:      "ZAR",
		},
		{
			Name:          "Umhlanga Pearl",
			Slug:          "umhlanga-pearl",
			Location:      "Umhlanga Rocks, Durban",
			Address:       "12 Lagoon Drive",
			City:          "Durban",
			Province:      "KwaZulu-Natal",
			Country:       "South Africa",
			Description:   "Beachfront rooms a short walk from the promenade.",
			PricePerNight: 1450,
			Currency:      "ZAR",
		},
		{
			Name:          "Maboneng Loft Hotel",
			Slug:          "maboneng-loft-hotel",
			Location:      "Maboneng, Johannesburg",
			Address:       "286 Fox Street",
			City:          "Johannesburg",
			Province:      "Gauteng",
			Country:       "South Africa",
			Description:   "Industrial lofts in the heart of the arts precinct.",
			PricePerNight: 980,
			Currency:      "ZAR",
		},
		{
			Name:          "Karoo Rest Camp",
			Slug:          "karoo-rest-camp",
			Location:      "Graaff-Reinet",
			City:          "Graaff-Reinet",
			Province:      "Eastern Cape",
			Country:       "South Africa",
			Description:   "Quiet stopover cottages under the Sneeuberg.",
			PricePerNight: 650,
			Currency:      "ZAR",
		},
	}
	for i := range hotels {
		db.Create(&hotels[i])
	}

	log.Printf("Seed complete: %d hotels, 2 users", len(hotels))
}
