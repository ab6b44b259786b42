package timesheet

import (
	"fmt"
	"time"
)

// ReportingType tags what a timestamp entry reports. Values arriving from
// clients are parsed at the boundary; anything else is rejected rather than
// silently misclassified.
type ReportingType string

const (
	ReportingWork        ReportingType = "work"
	ReportingPaidLeave   ReportingType = "paid_leave"
	ReportingUnpaidLeave ReportingType = "unpaid_leave"
)

func (r ReportingType) Valid() bool {
	switch r {
	case ReportingWork, ReportingPaidLeave, ReportingUnpaidLeave:
		return true
	}
	return false
}

func ParseReportingType(s string) (ReportingType, error) {
	r := ReportingType(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown reporting type %q", s)
	}
	return r, nil
}

// PunchType records how an entry was produced.
type PunchType int

const (
	// PunchTypeClock is a live punch from the clock widget.
	PunchTypeClock PunchType = iota
	// PunchTypeManual is an entry added or backdated by hand.
	PunchTypeManual
)

func (p PunchType) Valid() bool {
	return p == PunchTypeClock || p == PunchTypeManual
}

type TimeStamp struct {
	ID            string
	UserEmail     string
	EnteredBy     string
	PunchType     PunchType
	PunchIn       time.Time
	PunchOut      *time.Time // nil while the entry is open
	ReportingType ReportingType
	Detail        string
	// TotalWorkSeconds is recorded on punch-out and is meaningful only for
	// closed work entries.
	TotalWorkSeconds int64
	LastUpdate       time.Time
}

// Open reports whether the entry has a punch-in but no punch-out yet.
func (t *TimeStamp) Open() bool {
	return t.PunchOut == nil
}

// WorkSeconds returns the recorded work duration for closed work entries and
// zero otherwise (open entries have not accrued a total yet).
func (t *TimeStamp) WorkSeconds() int64 {
	if t.ReportingType != ReportingWork || t.Open() {
		return 0
	}
	return t.TotalWorkSeconds
}
