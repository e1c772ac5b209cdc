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

type AssignmentStore interface {
	Create(ctx context.Context, a *models.Assignment) (*models.Assignment, error)
	FindByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Assignment, error)
	FindAllWithStudents(ctx context.Context) ([]models.AssignmentWithStudent, error)
	SetRemarks(ctx context.Context, id primitive.ObjectID, remark string) (*models.Assignment, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByStudent(ctx context.Context, studentID primitive.ObjectID) error
}

type MongoAssignmentStore struct {
	col      *mongo.Collection
	students *mongo.Collection
}

func NewMongoAssignmentStore(db *mongo.Database) *MongoAssignmentStore {
	return &MongoAssignmentStore{
		col:      db.Collection("assignments"),
		students: db.Collection("students"),
	}
}

func (s *MongoAssignmentStore) Create(ctx context.Context, a *models.Assignment) (*models.Assignment, error) {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	res, err := s.col.InsertOne(ctx, a)
	if err != nil {
		return nil, err
	}
	a.ID = res.InsertedID.(primitive.ObjectID)
	return a, nil
}

func (s *MongoAssignmentStore) FindByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Assignment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{"studentId": studentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	assignments := []models.Assignment{}
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// FindAllWithStudents joins every assignment with its student's fullName and
// email. Assignments whose student has been deleted are still listed, with the
// joined fields left empty.
func (s *MongoAssignmentStore) FindAllWithStudents(ctx context.Context) ([]models.AssignmentWithStudent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	assignments := []models.Assignment{}
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.StudentID)
	}

	names := map[primitive.ObjectID]models.Student{}
	if len(ids) > 0 {
		sc, err := s.students.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			return nil, err
		}
		defer sc.Close(ctx)

		var students []models.Student
		if err := sc.All(ctx, &students); err != nil {
			return nil, err
		}
		for _, st := range students {
			names[st.ID] = st
		}
	}

	joined := make([]models.AssignmentWithStudent, 0, len(assignments))
	for _, a := range assignments {
		row := models.AssignmentWithStudent{Assignment: a}
		if st, ok := names[a.StudentID]; ok {
			row.StudentFullName = st.FullName
			row.StudentEmail = st.Email
		}
		joined = append(joined, row)
	}
	return joined, nil
}

func (s *MongoAssignmentStore) SetRemarks(ctx context.Context, id primitive.ObjectID, remark string) (*models.Assignment, error) {
	var a models.Assignment
	err := s.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"remarks": remark, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *MongoAssignmentStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByStudent removes every assignment owned by the student. Used by the
// admin user-delete cascade; deleting zero assignments is not an error.
func (s *MongoAssignmentStore) DeleteByStudent(ctx context.Context, studentID primitive.ObjectID) error {
	_, err := s.col.DeleteMany(ctx, bson.M{"studentId": studentID})
	return err
}
