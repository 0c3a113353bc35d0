package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AutoRepeat schedules periodic copies of a reference document.
type AutoRepeat struct {
	Name             string
	ReferenceDoctype string
	ReferenceName    string
	Frequency        RepeatFrequency
	StartDate        time.Time
	NextScheduleDate time.Time
	Status           AutoRepeatStatus
	DocStatus        DocStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (a *AutoRepeat) Validate() error {
	return wrapValidation("Auto Repeat", validation.ValidateStruct(a,
		validation.Field(&a.ReferenceDoctype, validation.Required),
		validation.Field(&a.ReferenceName, validation.Required),
		validation.Field(&a.Frequency, validation.Required,
			validation.In(toAny(RepeatFrequencies)...),
			validation.NotIn(FrequencyOneTime).Error("must be a recurring frequency")),
	))
}

// NextDate advances from by one period of frequency.
func NextDate(from time.Time, frequency RepeatFrequency) time.Time {
	return AddPeriods(from, frequency, 1)
}

// AddPeriods advances from by n periods of frequency. Month based
// frequencies keep the day of month, clamped to the last day of the target
// month, so Jan 31 plus one month is Feb 28. Non-recurring frequencies
// return from unchanged.
func AddPeriods(from time.Time, frequency RepeatFrequency, n int) time.Time {
	switch frequency {
	case FrequencyDaily:
		return from.AddDate(0, 0, n)
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7*n)
	case FrequencyFortnightly:
		return from.AddDate(0, 0, 14*n)
	case FrequencyMonthly:
		return addMonths(from, n)
	case FrequencyQuarterly:
		return addMonths(from, 3*n)
	case FrequencyHalfYearly:
		return addMonths(from, 6*n)
	case FrequencyYearly:
		return addMonths(from, 12*n)
	default:
		return from
	}
}

func addMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

// DateOnly truncates t to midnight UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
