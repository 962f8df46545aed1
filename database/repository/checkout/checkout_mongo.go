package checkoutRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"salesnav/models"
)

const (
	collectionName = "checkouts"
	defaultLimit   = 50
	maxLimit       = 500
)

// MongoCheckoutRepo stores checkout records in MongoDB.
type MongoCheckoutRepo struct {
	coll *mongo.Collection
}

// NewMongoCheckoutRepo returns a repository over db.checkouts. Index creation
// failures are returned but leave a usable repository.
func NewMongoCheckoutRepo(db *mongo.Database) (*MongoCheckoutRepo, error) {
	repo := &MongoCheckoutRepo{coll: db.Collection(collectionName)}
	return repo, repo.ensureIndexes()
}

func (r *MongoCheckoutRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "client_email", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts rec, assigning an id and timestamp when missing.
func (r *MongoCheckoutRepo) Create(ctx context.Context, rec *models.CheckoutRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err := r.coll.InsertOne(ctx, rec)
	return err
}

func (r *MongoCheckoutRepo) GetByID(ctx context.Context, id string) (*models.CheckoutRecord, error) {
	var rec models.CheckoutRecord
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns the most recent records first.
func (r *MongoCheckoutRepo) List(ctx context.Context, limit int64) ([]models.CheckoutRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(ClampLimit(limit))
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []models.CheckoutRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ClampLimit maps a requested page size into [1, maxLimit], defaulting to 50.
func ClampLimit(limit int64) int64 {
	switch {
	case limit <= 0:
		return defaultLimit
	case limit > maxLimit:
		return maxLimit
	default:
		return limit
	}
}
