// Package dashboard derives the figures shown on the shop dashboard from a
// shop's order list. Everything here is recomputed from scratch on each
// refresh; nothing is stored.
package dashboard

import (
	"math"
	"puredrop/internal/models"
	"strings"
	"time"
)

const growthWindow = 30 * 24 * time.Hour

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

type StatusCounts struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Dispatched int `json:"dispatched"`
	Delivered  int `json:"delivered"`
	Cancelled  int `json:"cancelled"`
}

type MonthBucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type Summary struct {
	Counts       StatusCounts  `json:"counts"`
	MonthlyTrend []MonthBucket `json:"monthlyTrend"`
	GrowthRate   int           `json:"growthRate"`
	GeneratedAt  time.Time     `json:"generatedAt"`
}

func CountByStatus(orders []models.Order) StatusCounts {
	counts := StatusCounts{Total: len(orders)}
	for _, order := range orders {
		status := string(order.DeliveryStatus)
		switch {
		case strings.EqualFold(status, string(models.StatusPending)):
			counts.Pending++
		case strings.EqualFold(status, string(models.StatusDispatched)):
			counts.Dispatched++
		case strings.EqualFold(status, string(models.StatusDelivered)):
			counts.Delivered++
		case strings.EqualFold(status, string(models.StatusCancelled)):
			counts.Cancelled++
		}
	}
	return counts
}

// MonthlyTrend buckets orders by calendar month of creation in loc. It always
// returns twelve buckets, January first. Orders from different years share
// a bucket.
func MonthlyTrend(orders []models.Order, loc *time.Location) []MonthBucket {
	if loc == nil {
		loc = time.Local
	}

	buckets := make([]MonthBucket, 12)
	for i, name := range monthNames {
		buckets[i].Name = name
	}
	for _, order := range orders {
		if order.CreatedAt.IsZero() {
			continue
		}
		month := order.CreatedAt.In(loc).Month()
		buckets[month-1].Value++
	}
	return buckets
}

// GrowthRate is the percentage change from prior to last, rounded half up.
// With no prior orders it is 100 if there are any recent orders and 0
// otherwise.
func GrowthRate(last, prior int) int {
	if prior == 0 {
		if last > 0 {
			return 100
		}
		return 0
	}
	change := float64(last-prior) / float64(prior) * 100
	return int(math.Floor(change + 0.5))
}

// OrderGrowth compares the 30 days up to now against the 30 days before.
func OrderGrowth(orders []models.Order, now time.Time) int {
	lastStart := now.Add(-growthWindow)
	priorStart := now.Add(-2 * growthWindow)

	var last, prior int
	for _, order := range orders {
		created := order.CreatedAt
		switch {
		case created.After(lastStart):
			last++
		case created.After(priorStart):
			prior++
		}
	}
	return GrowthRate(last, prior)
}

func Summarize(orders []models.Order, now time.Time, loc *time.Location) Summary {
	return Summary{
		Counts:       CountByStatus(orders),
		MonthlyTrend: MonthlyTrend(orders, loc),
		GrowthRate:   OrderGrowth(orders, now),
		GeneratedAt:  now,
	}
}
