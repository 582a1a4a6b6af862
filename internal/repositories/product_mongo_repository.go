package repositories

import (
	"context"
	"errors"
	"fmt"

	"etalase/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProductRepository is a MongoDB implementation of ProductRepository.
type MongoProductRepository struct {
	coll *mongo.Collection
}

// NewMongoProductRepository creates a new MongoProductRepository over
// the products collection of db.
func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{
		coll: db.Collection("products"),
	}
}

// EnsureIndexes creates the text index spanning title and description
// that backs keyword search.
func (r *MongoProductRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "description", Value: "text"},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create product text index: %w", err)
	}
	return nil
}

// Create inserts a new product and backfills the storage-assigned ID.
func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	res, err := r.coll.InsertOne(ctx, product)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.StorageID = oid
	}
	return nil
}

// GetByProductID retrieves a product by its opaque identifier.
func (r *MongoProductRepository) GetByProductID(ctx context.Context, productID string) (*models.Product, error) {
	var product models.Product
	if err := r.coll.FindOne(ctx, bson.M{"id": productID}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product %s: %w", productID, err)
	}
	return &product, nil
}

// List returns one page of products plus the total count of documents
// matching the filter, counted independently of skip and limit.
func (r *MongoProductRepository) List(ctx context.Context, q ProductQuery) ([]models.Product, int64, error) {
	filter := bson.M{}
	if q.Keyword != "" {
		filter["$text"] = bson.M{"$search": q.Keyword}
	}

	direction := 1
	if q.SortDesc {
		direction = -1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: q.SortField, Value: direction}}).
		SetSkip(q.Skip).
		SetLimit(q.Limit)

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}
	return products, total, nil
}

// Update applies a $set of fields to the product with the given opaque
// identifier.
func (r *MongoProductRepository) Update(ctx context.Context, productID string, fields map[string]interface{}) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": productID}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", productID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the product with the given opaque identifier.
func (r *MongoProductRepository) Delete(ctx context.Context, productID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": productID})
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", productID, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
