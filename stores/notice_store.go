package stores

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"student-portal/models"
)

type NoticeStore interface {
	Create(ctx context.Context, n *models.Notice) (*models.Notice, error)
	FindAll(ctx context.Context) ([]models.Notice, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type MongoNoticeStore struct {
	col *mongo.Collection
}

func NewMongoNoticeStore(db *mongo.Database) *MongoNoticeStore {
	return &MongoNoticeStore{col: db.Collection("notices")}
}

func (s *MongoNoticeStore) Create(ctx context.Context, n *models.Notice) (*models.Notice, error) {
	n.CreatedAt = time.Now().UTC()

	res, err := s.col.InsertOne(ctx, n)
	if err != nil {
		return nil, err
	}
	n.ID = res.InsertedID.(primitive.ObjectID)
	return n, nil
}

// FindAll returns notices newest first.
func (s *MongoNoticeStore) FindAll(ctx context.Context) ([]models.Notice, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notices := []models.Notice{}
	if err := cursor.All(ctx, &notices); err != nil {
		return nil, err
	}
	return notices, nil
}

func (s *MongoNoticeStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
