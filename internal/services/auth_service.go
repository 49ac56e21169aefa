package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"puredrop/internal/auth"
	"puredrop/internal/models"
	"puredrop/internal/repository"
	"puredrop/internal/storage"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for stored passwords.
const PasswordCost = 10

type RegisterInput struct {
	ShopName        string
	OwnerName       string
	Phone           string
	Address         string
	Location        string
	Stock           models.Stock
	Password        string
	ConfirmPassword string
	Image           *multipart.FileHeader
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Owner     *models.ShopOwner
}

// LoginLimiter throttles repeated failed logins per phone.
type LoginLimiter interface {
	LoginCooldown(ctx context.Context, phone string) (time.Duration, error)
	RecordLoginFailure(ctx context.Context, phone string, maxAttempts int, cooldown time.Duration) error
	ResetLoginAttempts(ctx context.Context, phone string) error
}

type LoginPolicy struct {
	MaxAttempts int
	Cooldown    time.Duration
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.ShopOwner, error)
	Login(ctx context.Context, phone, password string) (*LoginResult, error)
}

type authService struct {
	ownerRepo repository.OwnerRepository
	tokens    *auth.TokenManager
	images    storage.ImageStore
	limiter   LoginLimiter
	policy    LoginPolicy
	logger    *logrus.Logger
}

// NewAuthService wires registration and login. images and limiter are
// optional and may be nil.
func NewAuthService(
	ownerRepo repository.OwnerRepository,
	tokens *auth.TokenManager,
	images storage.ImageStore,
	limiter LoginLimiter,
	policy LoginPolicy,
	logger *logrus.Logger,
) AuthService {
	return &authService{
		ownerRepo: ownerRepo,
		tokens:    tokens,
		images:    images,
		limiter:   limiter,
		policy:    policy,
		logger:    logger,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.ShopOwner, error) {
	phone := strings.TrimSpace(input.Phone)
	if !IsValidPhone(phone) {
		return nil, newError(KindValidation, "Phone number must be exactly 10 digits and contain only numbers.")
	}
	if !IsValidPassword(input.Password) {
		return nil, newError(KindValidation, "Password must be 8 to 72 characters long and include an uppercase letter, lowercase letter, number, and special character.")
	}
	if input.ConfirmPassword != "" && input.ConfirmPassword != input.Password {
		return nil, newError(KindValidation, "Passwords do not match.")
	}

	_, err := s.ownerRepo.GetByPhone(ctx, phone)
	switch {
	case err == nil:
		return nil, newError(KindConflict, "Phone already registered")
	case !errors.Is(err, repository.ErrNotFound):
		return nil, internalError("failed to look up owner", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), PasswordCost)
	if err != nil {
		return nil, internalError("failed to hash password", err)
	}

	var imageURL string
	if input.Image != nil {
		imageURL, err = s.uploadImage(ctx, input.Image)
		if err != nil {
			return nil, err
		}
	}

	owner := &models.ShopOwner{
		ShopName:  strings.TrimSpace(input.ShopName),
		OwnerName: strings.TrimSpace(input.OwnerName),
		Phone:     phone,
		Address:   strings.TrimSpace(input.Address),
		Location:  strings.TrimSpace(input.Location),
		ShopImage: imageURL,
		Stock:     input.Stock,
		Password:  string(hashedPassword),
	}

	if err := s.ownerRepo.Create(ctx, owner); err != nil {
		// a concurrent registration can still lose the race on the unique index
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newError(KindConflict, "Phone already registered")
		}
		return nil, internalError("failed to create owner", err)
	}

	s.logger.WithFields(logrus.Fields{
		"owner_id": owner.ID,
		"phone":    owner.Phone,
	}).Info("Shop owner registered")
	return owner, nil
}

func (s *authService) uploadImage(ctx context.Context, image *multipart.FileHeader) (string, error) {
	if _, err := storage.ValidateImage(image); err != nil {
		return "", newError(KindValidation, err.Error())
	}
	if s.images == nil {
		return "", newError(KindValidation, "Image uploads are not enabled")
	}
	url, err := s.images.Upload(ctx, image)
	if err != nil {
		return "", internalError("failed to upload shop image", err)
	}
	return url, nil
}

func (s *authService) Login(ctx context.Context, phone, password string) (*LoginResult, error) {
	phone = strings.TrimSpace(phone)

	if err := s.checkCooldown(ctx, phone); err != nil {
		return nil, err
	}

	owner, err := s.ownerRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.recordFailure(ctx, phone)
			return nil, newError(KindNotFound, "Phone not registered")
		}
		return nil, internalError("failed to look up owner", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(owner.Password), []byte(password)); err != nil {
		s.recordFailure(ctx, phone)
		return nil, newError(KindInvalidCredentials, "Invalid credentials")
	}

	token, expiresAt, err := s.tokens.Issue(auth.Identity{ID: owner.ID, Phone: owner.Phone})
	if err != nil {
		return nil, internalError("failed to issue token", err)
	}

	if s.limiter != nil {
		if err := s.limiter.ResetLoginAttempts(ctx, phone); err != nil {
			s.logger.WithError(err).Warn("Failed to reset login attempts")
		}
	}

	s.logger.WithField("phone", owner.Phone).Info("Shop owner logged in")
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Owner: owner}, nil
}

func (s *authService) checkCooldown(ctx context.Context, phone string) error {
	if s.limiter == nil {
		return nil
	}
	remaining, err := s.limiter.LoginCooldown(ctx, phone)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to read login cooldown")
		return nil
	}
	if remaining > 0 {
		minutes := int(remaining.Minutes()) + 1
		return newError(KindRateLimited, fmt.Sprintf("Too many failed attempts. Try again in %d minutes", minutes))
	}
	return nil
}

func (s *authService) recordFailure(ctx context.Context, phone string) {
	if s.limiter == nil || s.policy.MaxAttempts <= 0 {
		return
	}
	if err := s.limiter.RecordLoginFailure(ctx, phone, s.policy.MaxAttempts, s.policy.Cooldown); err != nil {
		s.logger.WithError(err).Warn("Failed to record login attempt")
	}
}
