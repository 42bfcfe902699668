package inmemdb

import (
	"sync"

	"github.com/MDharunPrasad/giglabs-intern-venture/core/ambassador"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/assignment"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/enrollment"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/meeting"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/submission"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/user"
)

// DB holds the tables of the local persistence variant.
// Tables that are read together are always locked in this order: enrollment, user.
type (
	DB struct {
		user       *userTable
		enrollment *enrollmentTable
		submission *submissionTable
		meeting    *meetingTable
		assignment *assignmentTable
		ambassador *ambassadorTable
	}

	userTable struct {
		table map[string]*user.User
		mutex sync.RWMutex
	}

	enrollmentTable struct {
		table    map[string]*enrollment.Enrollment // {learnerID: enrollment}
		progress map[string]enrollment.Ledger      // {enrollmentID: ledger}
		mutex    sync.RWMutex
	}

	submissionTable struct {
		table []submission.Submission
		mutex sync.RWMutex
	}

	meetingTable struct {
		table map[string]*meeting.Meeting
		mutex sync.RWMutex
	}

	assignmentTable struct {
		table map[string]*assignment.Assignment
		mutex sync.RWMutex
	}

	ambassadorTable struct {
		table []ambassador.Application
		mutex sync.RWMutex
	}
)

func Open() *DB {
	db := new(DB)
	db.init()
	return db
}

func (db *DB) init() {
	db.user = &userTable{table: make(map[string]*user.User)}
	db.enrollment = &enrollmentTable{
		table:    make(map[string]*enrollment.Enrollment),
		progress: make(map[string]enrollment.Ledger),
	}
	db.submission = &submissionTable{}
	db.meeting = &meetingTable{table: make(map[string]*meeting.Meeting)}
	db.assignment = &assignmentTable{table: make(map[string]*assignment.Assignment)}
	db.ambassador = &ambassadorTable{}
}

// Reset empties every table.
func (db *DB) Reset() {
	db.user.mutex.Lock()
	db.user.table = make(map[string]*user.User)
	db.user.mutex.Unlock()

	db.enrollment.mutex.Lock()
	db.enrollment.table = make(map[string]*enrollment.Enrollment)
	db.enrollment.progress = make(map[string]enrollment.Ledger)
	db.enrollment.mutex.Unlock()

	db.submission.mutex.Lock()
	db.submission.table = nil
	db.submission.mutex.Unlock()

	db.meeting.mutex.Lock()
	db.meeting.table = make(map[string]*meeting.Meeting)
	db.meeting.mutex.Unlock()

	db.assignment.mutex.Lock()
	db.assignment.table = make(map[string]*assignment.Assignment)
	db.assignment.mutex.Unlock()

	db.ambassador.mutex.Lock()
	db.ambassador.table = nil
	db.ambassador.mutex.Unlock()
}
