package inmemdb

import (
	"sync"

	"github.com/trezcool/studyflow/core/assignment"
	"github.com/trezcool/studyflow/core/course"
	"github.com/trezcool/studyflow/core/student"
)

type (
	DB struct {
		course     *courseTable
		assignment *assignmentTable
		student    *studentTable
	}

	courseTable struct {
		sync.RWMutex
		pkCount int
		table   map[int]*course.Course
	}

	assignmentTable struct {
		sync.RWMutex
		pkCount int
		table   map[int]*assignment.Assignment
	}

	studentTable struct {
		sync.RWMutex
		pkCount int
		table   map[int]*student.Student
	}
)

func Open() *DB {
	return &DB{
		course:     &courseTable{table: make(map[int]*course.Course)},
		assignment: &assignmentTable{table: make(map[int]*assignment.Assignment)},
		student:    &studentTable{table: make(map[int]*student.Student)},
	}
}

// Reset drops every record and restarts the primary key sequences.
func (db *DB) Reset() {
	db.course.Lock()
	db.course.table = make(map[int]*course.Course)
	db.course.pkCount = 0
	db.course.Unlock()

	db.assignment.Lock()
	db.assignment.table = make(map[int]*assignment.Assignment)
	db.assignment.pkCount = 0
	db.assignment.Unlock()

	db.student.Lock()
	db.student.table = make(map[int]*student.Student)
	db.student.pkCount = 0
	db.student.Unlock()
}
