package repository

import (
	"context"
	"errors"
	"puredrop/internal/models"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const OrdersCollection = "orders"

type orderDocument struct {
	ID             primitive.ObjectID    `bson:"_id,omitempty"`
	ShopPhone      string                `bson:"shopPhone"`
	ShopName       string                `bson:"shopName"`
	ShopOwner      string                `bson:"shopOwner"`
	ShopAddress    string                `bson:"shopAddress"`
	CustomerName   string                `bson:"customerName"`
	PhoneNumber    string                `bson:"phoneNumber"`
	UserAddress    string                `bson:"userAddress"`
	PaymentMethod  string                `bson:"paymentMethod"`
	PaymentStatus  string                `bson:"paymentStatus"`
	PaymentID      string                `bson:"paymentId"`
	Amount         float64               `bson:"amount"`
	OrderItems     models.OrderItems     `bson:"orderItems"`
	DeliveryStatus models.DeliveryStatus `bson:"deliveryStatus"`
	CreatedAt      time.Time             `bson:"createdAt"`
}

func newOrderDocument(order *models.Order) orderDocument {
	return orderDocument{
		ShopPhone:      order.ShopPhone,
		ShopName:       order.ShopName,
		ShopOwner:      order.ShopOwner,
		ShopAddress:    order.ShopAddress,
		CustomerName:   order.CustomerName,
		PhoneNumber:    order.PhoneNumber,
		UserAddress:    order.UserAddress,
		PaymentMethod:  order.PaymentMethod,
		PaymentStatus:  order.PaymentStatus,
		PaymentID:      order.PaymentID,
		Amount:         order.Amount,
		OrderItems:     order.OrderItems,
		DeliveryStatus: order.DeliveryStatus,
		CreatedAt:      order.CreatedAt,
	}
}

func (d *orderDocument) model() models.Order {
	return models.Order{
		ID:             d.ID.Hex(),
		ShopPhone:      d.ShopPhone,
		ShopName:       d.ShopName,
		ShopOwner:      d.ShopOwner,
		ShopAddress:    d.ShopAddress,
		CustomerName:   d.CustomerName,
		PhoneNumber:    d.PhoneNumber,
		UserAddress:    d.UserAddress,
		PaymentMethod:  d.PaymentMethod,
		PaymentStatus:  d.PaymentStatus,
		PaymentID:      d.PaymentID,
		Amount:         d.Amount,
		OrderItems:     d.OrderItems,
		DeliveryStatus: d.DeliveryStatus,
		CreatedAt:      d.CreatedAt,
	}
}

type mongoOrderRepository struct {
	coll *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) OrderRepository {
	return &mongoOrderRepository{coll: db.Collection(OrdersCollection)}
}

func (r *mongoOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	doc := newOrderDocument(order)
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	order.ID = doc.ID.Hex()
	return nil
}

func (r *mongoOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var doc orderDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	order := doc.model()
	return &order, nil
}

func (r *mongoOrderRepository) ListByShop(ctx context.Context, shopPhone string, filter models.OrderFilter) ([]models.Order, error) {
	query := bson.M{"shopPhone": shopPhone}
	if filter.Status != "" {
		query["deliveryStatus"] = filter.Status
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []orderDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(docs))
	for i := range docs {
		orders = append(orders, docs[i].model())
	}
	return orders, nil
}

func (r *mongoOrderRepository) UpdateStatus(ctx context.Context, id string, status models.DeliveryStatus) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"deliveryStatus": status}}

	var doc orderDocument
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	order := doc.model()
	return &order, nil
}
