package checklist

import "time"

// OverdueAfter is how long the payment step may stay open before it is flagged
const OverdueAfter = 14 * 24 * time.Hour

// IsStepDone decides the done state of a step from its number, whether at
// least one file is attached and the checkbox flag.
//
//	1,2,3,7  file attached
//	4,6      file attached and checkbox ticked
//	5,8,9    checkbox ticked
func IsStepDone(stepNo int, hasFiles, actionDone bool) bool {
	switch stepNo {
	case 1, 2, 3, 7:
		return hasFiles
	case 4, 6:
		return hasFiles && actionDone
	case 5, 8, 9:
		return actionDone
	default:
		return false
	}
}

// IsOverdue reports whether an open payment step has waited at least OverdueAfter
func IsOverdue(stepNo int, isDone bool, createdAt, now time.Time) bool {
	if stepNo != PaymentStepNo || isDone || createdAt.IsZero() {
		return false
	}
	return now.Sub(createdAt) >= OverdueAfter
}
