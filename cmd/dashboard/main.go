package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"puredrop/internal/dashboard"
	"puredrop/internal/models"
	"puredrop/pkg/apiclient"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	godotenv.Load()

	apiURL := flag.String("api", getEnv("PUREDROP_API_URL", "http://localhost:5000"), "base URL of the shop API")
	phone := flag.String("phone", os.Getenv("PUREDROP_PHONE"), "shop owner phone")
	password := flag.String("password", os.Getenv("PUREDROP_PASSWORD"), "shop owner password")
	interval := flag.Duration("interval", dashboard.DefaultPollInterval, "refresh interval")
	timezone := flag.String("tz", getEnv("DASHBOARD_TIMEZONE", "Local"), "timezone for the monthly trend")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if *phone == "" || *password == "" {
		logger.Fatal("phone and password are required (PUREDROP_PHONE / PUREDROP_PASSWORD)")
	}
	loc, err := time.LoadLocation(*timezone)
	if err != nil {
		logger.WithError(err).Fatal("Invalid timezone")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := apiclient.NewClient(*apiURL)
	login, err := client.Login(ctx, *phone, *password)
	if err != nil {
		logger.WithError(err).Fatal("Login failed")
	}
	logger.WithFields(logrus.Fields{
		"shop":       login.Owner.ShopName,
		"expires_at": login.ExpiresAt,
	}).Info("Logged in")

	fetch := func(ctx context.Context) ([]models.Order, error) {
		return client.MyShopOrders(ctx, "")
	}
	onUpdate := func(orders []models.Order) {
		summary := dashboard.Summarize(orders, time.Now(), loc)
		fields := logrus.Fields{
			"total":      summary.Counts.Total,
			"pending":    summary.Counts.Pending,
			"dispatched": summary.Counts.Dispatched,
			"delivered":  summary.Counts.Delivered,
			"cancelled":  summary.Counts.Cancelled,
			"growth":     summary.GrowthRate,
		}
		for _, bucket := range summary.MonthlyTrend {
			if bucket.Value > 0 {
				fields[bucket.Name] = bucket.Value
			}
		}
		logger.WithFields(fields).Info("Orders refreshed")
	}

	poller := dashboard.NewPoller(*interval, fetch, onUpdate, logger)
	if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.WithError(err).Error("Dashboard stopped")
	}
	logger.Info("Dashboard exited")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
