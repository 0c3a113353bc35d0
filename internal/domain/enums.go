package domain

type ProjectStatus string

const (
	ProjectOpen      ProjectStatus = "Open"
	ProjectCompleted ProjectStatus = "Completed"
	ProjectCancelled ProjectStatus = "Cancelled"
)

// ProjectStatuses lists the accepted project statuses in display order.
var ProjectStatuses = []ProjectStatus{ProjectOpen, ProjectCompleted, ProjectCancelled}

type TaskStatus string

const (
	TaskOpen          TaskStatus = "Open"
	TaskWorking       TaskStatus = "Working"
	TaskPendingReview TaskStatus = "Pending Review"
	TaskOverdue       TaskStatus = "Overdue"
	TaskCompleted     TaskStatus = "Completed"
	TaskCancelled     TaskStatus = "Cancelled"
)

var TaskStatuses = []TaskStatus{
	TaskOpen, TaskWorking, TaskPendingReview, TaskOverdue, TaskCompleted, TaskCancelled,
}

// DocStatus mirrors the submit lifecycle of transactional documents.
type DocStatus int

const (
	DocDraft     DocStatus = 0
	DocSubmitted DocStatus = 1
	DocCancelled DocStatus = 2
)

func (s DocStatus) String() string {
	switch s {
	case DocDraft:
		return "Draft"
	case DocSubmitted:
		return "Submitted"
	case DocCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

type RepeatFrequency string

const (
	FrequencyOneTime     RepeatFrequency = "One Time"
	FrequencyDaily       RepeatFrequency = "Daily"
	FrequencyWeekly      RepeatFrequency = "Weekly"
	FrequencyFortnightly RepeatFrequency = "Fortnightly"
	FrequencyMonthly     RepeatFrequency = "Monthly"
	FrequencyQuarterly   RepeatFrequency = "Quarterly"
	FrequencyHalfYearly  RepeatFrequency = "Half-yearly"
	FrequencyYearly      RepeatFrequency = "Yearly"
)

var RepeatFrequencies = []RepeatFrequency{
	FrequencyOneTime, FrequencyDaily, FrequencyWeekly, FrequencyFortnightly,
	FrequencyMonthly, FrequencyQuarterly, FrequencyHalfYearly, FrequencyYearly,
}

// Recurring reports whether the frequency asks for a repeat schedule.
func (f RepeatFrequency) Recurring() bool {
	return f != "" && f != FrequencyOneTime
}

type AutoRepeatStatus string

const (
	AutoRepeatActive   AutoRepeatStatus = "Active"
	AutoRepeatDisabled AutoRepeatStatus = "Disabled"
)

// Doctype names used for references between documents.
const (
	DoctypeProject      = "Project"
	DoctypeTask         = "Task"
	DoctypeSalesInvoice = "Sales Invoice"
	DoctypePayment      = "Payment Entry"
	DoctypeCustomer     = "Customer"
)

func toAny[T any](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
