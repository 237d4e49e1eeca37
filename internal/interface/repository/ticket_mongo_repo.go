package repository

import (
	"context"

	"skyline-ingest/internal/domain/entity"
	"skyline-ingest/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTicketRepository implements TicketRepository on a MongoDB collection.
// Records are insert-only; the pipeline never updates a stored ticket.
type MongoTicketRepository struct {
	collection *mongo.Collection
}

// NewMongoTicketRepository creates a new mongo-backed ticket repository.
func NewMongoTicketRepository(db *mongo.Database) repository.TicketRepository {
	collection := db.Collection("flight_tickets")

	// Index for listing scans in capture order
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys: bson.M{"capturedAt": 1},
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	return &MongoTicketRepository{
		collection: collection,
	}
}

// Append inserts a new ticket record.
func (r *MongoTicketRepository) Append(ctx context.Context, record *entity.FlightTicketRecord) error {
	_, err := r.collection.InsertOne(ctx, record)
	return err
}

// FindAll returns every stored ticket record in capture order.
func (r *MongoTicketRepository) FindAll(ctx context.Context) ([]entity.FlightTicketRecord, error) {
	opts := options.Find().SetSort(bson.M{"capturedAt": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []entity.FlightTicketRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
