package repository

import (
	"context"
	"errors"
	"puredrop/internal/models"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const OwnersCollection = "owners"

type ownerDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ShopName  string             `bson:"shopName"`
	OwnerName string             `bson:"ownerName"`
	Phone     string             `bson:"phone"`
	Address   string             `bson:"address"`
	Location  string             `bson:"location"`
	ShopImage string             `bson:"shopImage"`
	Stock     models.Stock       `bson:"stock"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *ownerDocument) model() *models.ShopOwner {
	return &models.ShopOwner{
		ID:        d.ID.Hex(),
		ShopName:  d.ShopName,
		OwnerName: d.OwnerName,
		Phone:     d.Phone,
		Address:   d.Address,
		Location:  d.Location,
		ShopImage: d.ShopImage,
		Stock:     d.Stock,
		Password:  d.Password,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type mongoOwnerRepository struct {
	coll *mongo.Collection
}

func NewMongoOwnerRepository(db *mongo.Database) OwnerRepository {
	return &mongoOwnerRepository{coll: db.Collection(OwnersCollection)}
}

func (r *mongoOwnerRepository) Create(ctx context.Context, owner *models.ShopOwner) error {
	now := time.Now().UTC()
	doc := ownerDocument{
		ID:        primitive.NewObjectID(),
		ShopName:  owner.ShopName,
		OwnerName: owner.OwnerName,
		Phone:     owner.Phone,
		Address:   owner.Address,
		Location:  owner.Location,
		ShopImage: owner.ShopImage,
		Stock:     owner.Stock,
		Password:  owner.Password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}

	owner.ID = doc.ID.Hex()
	owner.CreatedAt = now
	owner.UpdatedAt = now
	return nil
}

func (r *mongoOwnerRepository) GetByPhone(ctx context.Context, phone string) (*models.ShopOwner, error) {
	var doc ownerDocument
	err := r.coll.FindOne(ctx, bson.M{"phone": phone}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc.model(), nil
}

func (r *mongoOwnerRepository) Update(ctx context.Context, owner *models.ShopOwner) error {
	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"shopName":  owner.ShopName,
		"ownerName": owner.OwnerName,
		"address":   owner.Address,
		"location":  owner.Location,
		"shopImage": owner.ShopImage,
		"stock":     owner.Stock,
		"updatedAt": now,
	}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"phone": owner.Phone}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	owner.UpdatedAt = now
	return nil
}
