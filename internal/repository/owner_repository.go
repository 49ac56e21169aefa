package repository

import (
	"context"
	"errors"
	"puredrop/internal/models"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OwnerRepository interface {
	Create(ctx context.Context, owner *models.ShopOwner) error
	GetByPhone(ctx context.Context, phone string) (*models.ShopOwner, error)
	// Update overwrites the profile fields of the owner keyed by owner.Phone.
	Update(ctx context.Context, owner *models.ShopOwner) error
}

type ownerRepository struct {
	db *gorm.DB
}

func NewOwnerRepository(db *gorm.DB) OwnerRepository {
	return &ownerRepository{db: db}
}

func (r *ownerRepository) Create(ctx context.Context, owner *models.ShopOwner) error {
	if owner.ID == "" {
		owner.ID = uuid.NewString()
	}
	err := r.db.WithContext(ctx).Create(owner).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (r *ownerRepository) GetByPhone(ctx context.Context, phone string) (*models.ShopOwner, error) {
	var owner models.ShopOwner
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&owner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &owner, nil
}

func (r *ownerRepository) Update(ctx context.Context, owner *models.ShopOwner) error {
	now := time.Now()

	result := r.db.WithContext(ctx).Model(&models.ShopOwner{}).Where("phone = ?", owner.Phone).Updates(map[string]interface{}{
		"shop_name":                owner.ShopName,
		"owner_name":               owner.OwnerName,
		"address":                  owner.Address,
		"location":                 owner.Location,
		"shop_image":               owner.ShopImage,
		"stock_water_tins":         owner.Stock.WaterTins,
		"stock_cooling_water_tins": owner.Stock.CoolingWaterTins,
		"stock_water_bottles":      owner.Stock.WaterBottles,
		"stock_water_packets":      owner.Stock.WaterPackets,
		"updated_at":               now,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	owner.UpdatedAt = now
	return nil
}
