package services

import (
	"context"
	"errors"
	"puredrop/internal/auth"
	"puredrop/internal/models"
	"puredrop/internal/redis"
	"puredrop/internal/repository"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ProfileUpdate carries the fields a shop owner may change. Nil fields are
// left untouched. Phone may only repeat the current value.
type ProfileUpdate struct {
	Phone     *string       `json:"phone"`
	ShopName  *string       `json:"shopName"`
	OwnerName *string       `json:"ownerName"`
	Address   *string       `json:"address"`
	Location  *string       `json:"location"`
	ShopImage *string       `json:"shopImage"`
	Stock     *models.Stock `json:"stock"`
}

type ShopCache interface {
	GetShop(ctx context.Context, phone string) (*models.ShopOwner, error)
	SetShop(ctx context.Context, owner *models.ShopOwner, ttl time.Duration) error
	DeleteShop(ctx context.Context, phone string) error
}

type ShopService interface {
	GetByPhone(ctx context.Context, phone string) (*models.ShopOwner, error)
	UpdateProfile(ctx context.Context, identity auth.Identity, phone string, update ProfileUpdate) (*models.ShopOwner, error)
}

type shopService struct {
	ownerRepo repository.OwnerRepository
	cache     ShopCache
	cacheTTL  time.Duration
	logger    *logrus.Logger
}

// NewShopService builds the profile service. cache may be nil.
func NewShopService(ownerRepo repository.OwnerRepository, cache ShopCache, cacheTTL time.Duration, logger *logrus.Logger) ShopService {
	return &shopService{ownerRepo: ownerRepo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

func (s *shopService) GetByPhone(ctx context.Context, phone string) (*models.ShopOwner, error) {
	if s.cache != nil {
		owner, err := s.cache.GetShop(ctx, phone)
		if err == nil {
			return owner, nil
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			s.logger.WithError(err).Warn("Shop cache read failed")
		}
	}

	owner, err := s.ownerRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(KindNotFound, "Shop not found")
		}
		return nil, internalError("failed to fetch shop", err)
	}

	if s.cache != nil {
		if err := s.cache.SetShop(ctx, owner, s.cacheTTL); err != nil {
			s.logger.WithError(err).Warn("Shop cache write failed")
		}
	}
	return owner, nil
}

func (s *shopService) UpdateProfile(ctx context.Context, identity auth.Identity, phone string, update ProfileUpdate) (*models.ShopOwner, error) {
	if identity.Phone != phone {
		return nil, newError(KindForbidden, "You can only update your own shop")
	}
	if update.Phone != nil && strings.TrimSpace(*update.Phone) != phone {
		return nil, newError(KindValidation, "Phone number cannot be changed")
	}

	owner, err := s.ownerRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(KindNotFound, "Shop not found")
		}
		return nil, internalError("failed to fetch shop", err)
	}

	applyProfileUpdate(owner, update)

	if err := s.ownerRepo.Update(ctx, owner); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(KindNotFound, "Shop not found")
		}
		return nil, internalError("failed to update shop", err)
	}

	if s.cache != nil {
		if err := s.cache.DeleteShop(ctx, phone); err != nil {
			s.logger.WithError(err).Warn("Shop cache invalidation failed")
		}
	}

	s.logger.WithField("phone", phone).Info("Shop profile updated")
	return owner, nil
}

func applyProfileUpdate(owner *models.ShopOwner, update ProfileUpdate) {
	if update.ShopName != nil {
		owner.ShopName = strings.TrimSpace(*update.ShopName)
	}
	if update.OwnerName != nil {
		owner.OwnerName = strings.TrimSpace(*update.OwnerName)
	}
	if update.Address != nil {
		owner.Address = strings.TrimSpace(*update.Address)
	}
	if update.Location != nil {
		owner.Location = strings.TrimSpace(*update.Location)
	}
	if update.ShopImage != nil {
		owner.ShopImage = strings.TrimSpace(*update.ShopImage)
	}
	if update.Stock != nil {
		owner.Stock = *update.Stock
	}
}
