package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/trezcool/studyflow/core/assignment"
)

type assignmentRepository struct {
	db *assignmentTable
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *DB) assignment.Repository {
	return &assignmentRepository{db: db.assignment}
}

// copyAssignment detaches the optional fields from the stored record.
func copyAssignment(asg assignment.Assignment) assignment.Assignment {
	if asg.DueDate != nil {
		due := *asg.DueDate
		asg.DueDate = &due
	}
	if asg.Weight != nil {
		w := *asg.Weight
		asg.Weight = &w
	}
	if asg.Grade != nil {
		g := *asg.Grade
		asg.Grade = &g
	}
	return asg
}

func (repo *assignmentRepository) query(keep func(asg *assignment.Assignment) bool) []assignment.Assignment {
	asgs := make([]assignment.Assignment, 0, len(repo.db.table))
	for _, asg := range repo.db.table {
		if keep == nil || keep(asg) {
			asgs = append(asgs, copyAssignment(*asg))
		}
	}
	sort.Slice(asgs, func(i, j int) bool { return asgs[i].ID < asgs[j].ID })
	return asgs
}

func (repo *assignmentRepository) CreateAssignment(_ context.Context, asg assignment.Assignment) (assignment.Assignment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.pkCount++
	asg = copyAssignment(asg)
	asg.ID = repo.db.pkCount
	repo.db.table[asg.ID] = &asg
	return copyAssignment(asg), nil
}

func (repo *assignmentRepository) QueryAllAssignments(_ context.Context) ([]assignment.Assignment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(nil), nil
}

func (repo *assignmentRepository) QueryAssignmentsByCourseID(_ context.Context, courseID int) ([]assignment.Assignment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(func(asg *assignment.Assignment) bool { return asg.CourseID == courseID }), nil
}

func (repo *assignmentRepository) GetAssignmentByID(_ context.Context, id int) (assignment.Assignment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if asg, ok := repo.db.table[id]; ok {
		return copyAssignment(*asg), nil
	}
	return assignment.Assignment{}, assignment.ErrNotFound
}

func (repo *assignmentRepository) UpdateAssignment(_ context.Context, asg assignment.Assignment) (assignment.Assignment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[asg.ID]; !ok {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	asg = copyAssignment(asg)
	repo.db.table[asg.ID] = &asg
	return copyAssignment(asg), nil
}

func (repo *assignmentRepository) SetAssignmentCompleted(
	_ context.Context,
	id int,
	completed bool,
	updatedAt time.Time,
) (assignment.Assignment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	asg, ok := repo.db.table[id]
	if !ok {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	asg.Completed = completed
	asg.UpdatedAt = updatedAt
	return copyAssignment(*asg), nil
}

func (repo *assignmentRepository) DeleteAssignmentsByID(_ context.Context, ids ...int) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}

func (repo *assignmentRepository) DeleteAssignmentsByCourseID(_ context.Context, courseID int) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for id, asg := range repo.db.table {
		if asg.CourseID == courseID {
			delete(repo.db.table, id)
		}
	}
	return nil
}
