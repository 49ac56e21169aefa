package models

import "time"

type DeliveryStatus string

const (
	StatusPending    DeliveryStatus = "Pending"
	StatusDispatched DeliveryStatus = "Dispatched"
	StatusDelivered  DeliveryStatus = "Delivered"
	StatusCancelled  DeliveryStatus = "Cancelled"
)

// DeliveryStatuses lists every accepted status in lifecycle order.
var DeliveryStatuses = []DeliveryStatus{
	StatusPending,
	StatusDispatched,
	StatusDelivered,
	StatusCancelled,
}

func (s DeliveryStatus) Valid() bool {
	for _, status := range DeliveryStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// OrderItems holds quantities per product category. Zero means not ordered.
type OrderItems struct {
	WaterTins        int `json:"waterTins" bson:"waterTins"`
	CoolingWaterTins int `json:"coolingWaterTins" bson:"coolingWaterTins"`
	WaterBottles     int `json:"waterBottles" bson:"waterBottles"`
	WaterPackers     int `json:"waterPackers" bson:"waterPackers"`
}

type Order struct {
	ID             string         `json:"id" gorm:"primaryKey;type:uuid"`
	ShopPhone      string         `json:"shopPhone" gorm:"index:idx_orders_shop_created,priority:1;size:10;not null"`
	ShopName       string         `json:"shopName"`
	ShopOwner      string         `json:"shopOwner"`
	ShopAddress    string         `json:"shopAddress"`
	CustomerName   string         `json:"customerName"`
	PhoneNumber    string         `json:"phoneNumber"`
	UserAddress    string         `json:"userAddress"`
	PaymentMethod  string         `json:"paymentMethod"`
	PaymentStatus  string         `json:"paymentStatus"`
	PaymentID      string         `json:"paymentId"`
	Amount         float64        `json:"amount"`
	OrderItems     OrderItems     `json:"orderItems" gorm:"embedded;embeddedPrefix:item_"`
	DeliveryStatus DeliveryStatus `json:"deliveryStatus" gorm:"default:'Pending';not null"`
	CreatedAt      time.Time      `json:"createdAt" gorm:"index:idx_orders_shop_created,priority:2,sort:desc"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderFilter narrows a shop's order listing. A zero value returns everything.
type OrderFilter struct {
	Status DeliveryStatus
}
