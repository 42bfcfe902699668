package enrollment

import (
	"errors"
	"fmt"
	"math"
)

// Status of a module for one learner.
type Status string

const (
	StatusLocked    Status = "locked"
	StatusAvailable Status = "available"
	StatusCompleted Status = "completed"
)

// ErrInvalidTransition is matched (errors.Is) by every *InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid module transition")

// InvalidTransitionError is returned when completing a module that is not the available one.
type InvalidTransitionError struct {
	Index     int
	Available int // -1 when every module is completed
}

func (err *InvalidTransitionError) Error() string {
	if err.Available < 0 {
		return fmt.Sprintf("module %d cannot be completed: all modules are completed", err.Index)
	}
	return fmt.Sprintf("module %d cannot be completed: module %d is the available one", err.Index, err.Available)
}

func (err *InvalidTransitionError) Is(target error) bool { return target == ErrInvalidTransition }

// Ledger holds the completed module indices of an enrollment.
type Ledger map[int]bool

func (l Ledger) clone() Ledger {
	c := make(Ledger, len(l)+1)
	for i, done := range l {
		if done {
			c[i] = true
		}
	}
	return c
}

// Statuses returns the status of each of the n modules.
// Module 0 is available until completed, module i is available once module i-1 is completed.
func Statuses(ledger Ledger, n int) []Status {
	statuses := make([]Status, n)
	for i := 0; i < n; i++ {
		switch {
		case ledger[i]:
			statuses[i] = StatusCompleted
		case i == 0 || ledger[i-1]:
			statuses[i] = StatusAvailable
		default:
			statuses[i] = StatusLocked
		}
	}
	return statuses
}

// CurrentIndex returns the index of the available module, or -1 when all n modules are completed.
func CurrentIndex(ledger Ledger, n int) int {
	for i, status := range Statuses(ledger, n) {
		if status == StatusAvailable {
			return i
		}
	}
	return -1
}

// Complete returns a copy of ledger with module i completed. ledger itself is never modified.
func Complete(ledger Ledger, n, i int) (Ledger, error) {
	current := CurrentIndex(ledger, n)
	if i < 0 || i >= n || i != current {
		return ledger, &InvalidTransitionError{Index: i, Available: current}
	}
	next := ledger.clone()
	next[i] = true
	return next, nil
}

func CompletedCount(ledger Ledger, n int) int {
	var count int
	for i := 0; i < n; i++ {
		if ledger[i] {
			count++
		}
	}
	return count
}

// ProgressPercentage is 100 * completed / n.
func ProgressPercentage(ledger Ledger, n int) float64 {
	if n <= 0 {
		return 0
	}
	return 100 * float64(CompletedCount(ledger, n)) / float64(n)
}

func CertificateEligible(ledger Ledger, n int) bool {
	return n > 0 && CompletedCount(ledger, n) >= n
}

type (
	ModuleProgress struct {
		Module
		Status Status `json:"status"`
	}

	// Progress is the learner's view of an enrollment. It is computed on every read.
	Progress struct {
		EnrollmentID        string           `json:"enrollment_id"`
		PackageID           string           `json:"package_id"`
		Modules             []ModuleProgress `json:"modules"`
		CompletedCount      int              `json:"completed_count"`
		ModuleCount         int              `json:"module_count"`
		Percentage          float64          `json:"percentage"`
		CurrentIndex        int              `json:"current_index"`
		CertificateEligible bool             `json:"certificate_eligible"`
	}
)

// Project computes the progress of enr from its ledger.
func Project(enr Enrollment, ledger Ledger) Progress {
	pkg, _ := GetPackage(enr.PackageID)
	n := enr.ModuleCount

	modules := make([]ModuleProgress, 0, n)
	for i, status := range Statuses(ledger, n) {
		mod, ok := pkg.Module(i)
		if !ok {
			mod = Module{Index: i}
		}
		modules = append(modules, ModuleProgress{Module: mod, Status: status})
	}

	return Progress{
		EnrollmentID:        enr.ID,
		PackageID:           enr.PackageID,
		Modules:             modules,
		CompletedCount:      CompletedCount(ledger, n),
		ModuleCount:         n,
		Percentage:          math.Round(ProgressPercentage(ledger, n)*100) / 100,
		CurrentIndex:        CurrentIndex(ledger, n),
		CertificateEligible: CertificateEligible(ledger, n),
	}
}
