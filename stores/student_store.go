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

// StudentUpdate carries the profile fields overwritten on edit. Password is
// replaced only when non-empty.
type StudentUpdate struct {
	FullName    string
	Email       string
	Age         int
	PhoneNumber string
	Password    string
}

type StudentStore interface {
	Create(ctx context.Context, s *models.Student) (*models.Student, error)
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error)
	Update(ctx context.Context, id primitive.ObjectID, upd StudentUpdate) (*models.Student, error)
	FindAll(ctx context.Context) ([]models.Student, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type MongoStudentStore struct {
	col *mongo.Collection
}

func NewMongoStudentStore(db *mongo.Database) *MongoStudentStore {
	return &MongoStudentStore{col: db.Collection("students")}
}

func (s *MongoStudentStore) Create(ctx context.Context, student *models.Student) (*models.Student, error) {
	// Uniqueness is enforced by lookup, not an index constraint.
	err := s.col.FindOne(ctx, bson.M{"email": student.Email}).Err()
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now

	res, err := s.col.InsertOne(ctx, student)
	if err != nil {
		return nil, err
	}
	student.ID = res.InsertedID.(primitive.ObjectID)
	return student, nil
}

func (s *MongoStudentStore) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	var student models.Student
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&student)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *MongoStudentStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error) {
	var student models.Student
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&student)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *MongoStudentStore) Update(ctx context.Context, id primitive.ObjectID, upd StudentUpdate) (*models.Student, error) {
	// When the email moves, it must not collide with another student.
	err := s.col.FindOne(ctx, bson.M{"email": upd.Email, "_id": bson.M{"$ne": id}}).Err()
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	set := bson.M{
		"fullName":    upd.FullName,
		"email":       upd.Email,
		"age":         upd.Age,
		"phoneNumber": upd.PhoneNumber,
		"updatedAt":   time.Now().UTC(),
	}
	if upd.Password != "" {
		set["password"] = upd.Password
	}

	var student models.Student
	err = s.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&student)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *MongoStudentStore) FindAll(ctx context.Context) ([]models.Student, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	students := []models.Student{}
	if err := cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (s *MongoStudentStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
