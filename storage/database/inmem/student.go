package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/studyflow/core/student"
)

type studentRepository struct {
	db *studentTable
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) CheckStudentUniqueness(
	_ context.Context,
	email, studentID string,
	excludedStudents ...student.Student,
) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, std := range repo.db.table {
		if isExcludedStudent(std.ID, excludedStudents) {
			continue
		}
		if std.Email == email {
			return student.ErrEmailExists
		}
		if std.StudentID == studentID {
			return student.ErrStudentIDExists
		}
	}
	return nil
}

func isExcludedStudent(id int, excluded []student.Student) bool {
	for _, std := range excluded {
		if std.ID == id {
			return true
		}
	}
	return false
}

func (repo *studentRepository) CreateStudent(_ context.Context, std student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.pkCount++
	std.ID = repo.db.pkCount
	repo.db.table[std.ID] = &std
	return std, nil
}

func (repo *studentRepository) QueryAllStudents(_ context.Context) ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	students := make([]student.Student, 0, len(repo.db.table))
	for _, std := range repo.db.table {
		students = append(students, *std)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students, nil
}

func (repo *studentRepository) GetStudentByID(_ context.Context, id int) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if std, ok := repo.db.table[id]; ok {
		return *std, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) UpdateStudent(_ context.Context, std student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[std.ID]; !ok {
		return student.Student{}, student.ErrNotFound
	}
	repo.db.table[std.ID] = &std
	return std, nil
}

func (repo *studentRepository) DeleteStudentsByID(_ context.Context, ids ...int) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
