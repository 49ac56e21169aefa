package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"puredrop/internal/auth"
	"puredrop/internal/config"
	"puredrop/internal/database"
	"puredrop/internal/models"
	"puredrop/internal/services"
	"time"

	"github.com/sirupsen/logrus"
)

var demoCustomers = []struct {
	name, phone, address string
}{
	{"Anita Rao", "9876500001", "7 Beach Road"},
	{"Karthik S", "9876500002", "22 Temple Street"},
	{"Meena V", "9876500003", "4 Park Avenue"},
	{"Farhan Ali", "9876500004", "19 Lake View"},
}

func main() {
	phone := flag.String("phone", "9000000001", "shop phone to seed")
	password := flag.String("password", "Demo@1234", "password for the demo owner if it has to be created")
	count := flag.Int("orders", 12, "number of demo orders to create")
	flag.Parse()

	logger := logrus.New()
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()
	location, err := cfg.Location()
	if err != nil {
		logger.WithError(err).Fatal("Invalid dashboard timezone")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Initialize database; indexes and migrations run as part of it
	store, err := database.Initialize(ctx, cfg.DatabaseURL, cfg.DatabaseName, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer store.Close(ctx)
	if store.Backend == "memory" {
		logger.Warn("Seeding the in-memory store has no lasting effect")
	}

	tokens := auth.NewTokenManager("seed", time.Minute)
	authService := services.NewAuthService(store.Owners, tokens, nil, nil, services.LoginPolicy{}, logger)
	orderService := services.NewOrderService(store.Orders, store.Owners, location, logger)

	fmt.Println("Creating demo shop owner...")
	_, err = authService.Register(ctx, services.RegisterInput{
		ShopName:  "Demo Water Supply",
		OwnerName: "Demo Owner",
		Phone:     *phone,
		Address:   "1 Main Road",
		Location:  "Chennai",
		Stock:     models.Stock{WaterTins: true, WaterBottles: true},
		Password:  *password,
	})
	switch {
	case err == nil:
		fmt.Printf("Shop owner created. Phone: %s Password: %s\n", *phone, *password)
	case services.KindOf(err) == services.KindConflict:
		fmt.Println("Shop owner already exists")
	default:
		logger.WithError(err).Fatal("Failed to create demo owner")
	}

	fmt.Println("Creating demo orders...")
	statuses := models.DeliveryStatuses
	now := time.Now().UTC()
	for i := 0; i < *count; i++ {
		customer := demoCustomers[i%len(demoCustomers)]
		items := models.OrderItems{
			WaterTins:    rand.Intn(4),
			WaterBottles: rand.Intn(6),
		}
		order := &models.Order{
			ShopPhone:      *phone,
			CustomerName:   customer.name,
			PhoneNumber:    customer.phone,
			UserAddress:    customer.address,
			PaymentMethod:  "COD",
			PaymentStatus:  "Pending",
			Amount:         float64(items.WaterTins*40 + items.WaterBottles*20),
			OrderItems:     items,
			DeliveryStatus: statuses[i%len(statuses)],
			// one order every 5 days going back
			CreatedAt: now.Add(-time.Duration(i*5) * 24 * time.Hour),
		}
		if err := orderService.CreateOrder(ctx, order); err != nil {
			logger.WithError(err).Fatal("Failed to create demo order")
		}
	}

	fmt.Printf("Database initialization completed successfully! %d orders created for %s\n", *count, *phone)
}
