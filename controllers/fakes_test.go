package controllers_test

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"student-portal/models"
	"student-portal/stores"
)

// In-memory stores mirroring the mongo implementations' semantics.

type fakeStudentStore struct {
	students map[primitive.ObjectID]models.Student
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: map[primitive.ObjectID]models.Student{}}
}

func (f *fakeStudentStore) Create(_ context.Context, s *models.Student) (*models.Student, error) {
	for _, existing := range f.students {
		if existing.Email == s.Email {
			return nil, stores.ErrDuplicateEmail
		}
	}
	now := time.Now().UTC()
	s.ID = primitive.NewObjectID()
	s.CreatedAt = now
	s.UpdatedAt = now
	f.students[s.ID] = *s
	return s, nil
}

func (f *fakeStudentStore) FindByEmail(_ context.Context, email string) (*models.Student, error) {
	for _, s := range f.students {
		if s.Email == email {
			s := s
			return &s, nil
		}
	}
	return nil, stores.ErrNotFound
}

func (f *fakeStudentStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, stores.ErrNotFound
	}
	return &s, nil
}

func (f *fakeStudentStore) Update(_ context.Context, id primitive.ObjectID, upd stores.StudentUpdate) (*models.Student, error) {
	for otherID, other := range f.students {
		if otherID != id && other.Email == upd.Email {
			return nil, stores.ErrDuplicateEmail
		}
	}
	s, ok := f.students[id]
	if !ok {
		return nil, stores.ErrNotFound
	}
	s.FullName = upd.FullName
	s.Email = upd.Email
	s.Age = upd.Age
	s.PhoneNumber = upd.PhoneNumber
	if upd.Password != "" {
		s.Password = upd.Password
	}
	s.UpdatedAt = time.Now().UTC()
	f.students[id] = s
	return &s, nil
}

func (f *fakeStudentStore) FindAll(_ context.Context) ([]models.Student, error) {
	out := []models.Student{}
	for _, s := range f.students {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStudentStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.students[id]; !ok {
		return stores.ErrNotFound
	}
	delete(f.students, id)
	return nil
}

type fakeAssignmentStore struct {
	assignments []models.Assignment
	students    *fakeStudentStore
}

func newFakeAssignmentStore(students *fakeStudentStore) *fakeAssignmentStore {
	return &fakeAssignmentStore{students: students}
}

func (f *fakeAssignmentStore) Create(_ context.Context, a *models.Assignment) (*models.Assignment, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	a.CreatedAt = now
	a.UpdatedAt = now
	f.assignments = append(f.assignments, *a)
	return a, nil
}

func (f *fakeAssignmentStore) FindByStudent(_ context.Context, studentID primitive.ObjectID) ([]models.Assignment, error) {
	out := []models.Assignment{}
	for _, a := range f.assignments {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeAssignmentStore) FindAllWithStudents(ctx context.Context) ([]models.AssignmentWithStudent, error) {
	out := []models.AssignmentWithStudent{}
	for _, a := range f.assignments {
		row := models.AssignmentWithStudent{Assignment: a}
		if s, err := f.students.FindByID(ctx, a.StudentID); err == nil {
			row.StudentFullName = s.FullName
			row.StudentEmail = s.Email
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeAssignmentStore) SetRemarks(_ context.Context, id primitive.ObjectID, remark string) (*models.Assignment, error) {
	for i := range f.assignments {
		if f.assignments[i].ID == id {
			f.assignments[i].Remarks = remark
			f.assignments[i].UpdatedAt = time.Now().UTC()
			a := f.assignments[i]
			return &a, nil
		}
	}
	return nil, stores.ErrNotFound
}

func (f *fakeAssignmentStore) Delete(_ context.Context, id primitive.ObjectID) error {
	for i := range f.assignments {
		if f.assignments[i].ID == id {
			f.assignments = append(f.assignments[:i], f.assignments[i+1:]...)
			return nil
		}
	}
	return stores.ErrNotFound
}

func (f *fakeAssignmentStore) DeleteByStudent(_ context.Context, studentID primitive.ObjectID) error {
	kept := f.assignments[:0]
	for _, a := range f.assignments {
		if a.StudentID != studentID {
			kept = append(kept, a)
		}
	}
	f.assignments = kept
	return nil
}

type fakeNoticeStore struct {
	notices []models.Notice
}

func (f *fakeNoticeStore) Create(_ context.Context, n *models.Notice) (*models.Notice, error) {
	n.ID = primitive.NewObjectID()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	f.notices = append(f.notices, *n)
	return n, nil
}

func (f *fakeNoticeStore) FindAll(_ context.Context) ([]models.Notice, error) {
	out := make([]models.Notice, len(f.notices))
	copy(out, f.notices)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeNoticeStore) Delete(_ context.Context, id primitive.ObjectID) error {
	for i := range f.notices {
		if f.notices[i].ID == id {
			f.notices = append(f.notices[:i], f.notices[i+1:]...)
			return nil
		}
	}
	return stores.ErrNotFound
}
