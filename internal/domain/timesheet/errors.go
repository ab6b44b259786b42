package timesheet

import "errors"

// Timesheet domain errors
var (
	// Punch lifecycle errors
	ErrAlreadyPunchedIn = errors.New("you are already punched in")
	ErrRestDayPunchIn   = errors.New("punch-in is not allowed on a rest day")
	ErrNoOpenEntry      = errors.New("no punch-in found for today, please add a manual entry")

	// General errors
	ErrTimestampNotFound = errors.New("timestamp not found")
	ErrPunchOrder        = errors.New("punch-in time must be earlier than punch-out time")
	ErrUnauthorized      = errors.New("unauthorized to access this timestamp")
)
