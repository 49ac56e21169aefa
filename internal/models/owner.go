package models

import "time"

// Stock flags which product categories a shop carries.
type Stock struct {
	WaterTins        bool `json:"waterTins" bson:"waterTins"`
	CoolingWaterTins bool `json:"coolingWaterTins" bson:"coolingWaterTins"`
	WaterBottles     bool `json:"waterBottles" bson:"waterBottles"`
	WaterPackets     bool `json:"waterPackets" bson:"waterPackets"`
}

// ShopOwner is the tenant record. Phone is the natural key and never changes
// after registration.
type ShopOwner struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	ShopName  string    `json:"shopName"`
	OwnerName string    `json:"ownerName"`
	Phone     string    `json:"phone" gorm:"uniqueIndex;size:10;not null"`
	Address   string    `json:"address"`
	Location  string    `json:"location"`
	ShopImage string    `json:"shopImage"`
	Stock     Stock     `json:"stock" gorm:"embedded;embeddedPrefix:stock_"`
	Password  string    `json:"-" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ShopOwner) TableName() string {
	return "owners"
}
