package domain

import "fmt"

// FilingStatus identifies the federal filing status of a return.
type FilingStatus string

const (
	FilingStatusSingle                    FilingStatus = "single"
	FilingStatusMarriedFilingJointly      FilingStatus = "married_filing_jointly"
	FilingStatusMarriedFilingSeparately   FilingStatus = "married_filing_separately"
	FilingStatusHeadOfHousehold           FilingStatus = "head_of_household"
	FilingStatusQualifyingSurvivingSpouse FilingStatus = "qualifying_surviving_spouse"
)

// FilingStatuses lists every supported status in a fixed order. Law
// configurations must carry brackets and a standard deduction for each.
var FilingStatuses = []FilingStatus{
	FilingStatusSingle,
	FilingStatusMarriedFilingJointly,
	FilingStatusMarriedFilingSeparately,
	FilingStatusHeadOfHousehold,
	FilingStatusQualifyingSurvivingSpouse,
}

// ParseFilingStatus converts a string from an input document into a
// FilingStatus, accepting only the canonical snake_case spellings.
func ParseFilingStatus(s string) (FilingStatus, error) {
	status := FilingStatus(s)
	for _, known := range FilingStatuses {
		if status == known {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown filing status %q", s)
}

// Valid reports whether the status is one of the five supported statuses.
func (fs FilingStatus) Valid() bool {
	for _, known := range FilingStatuses {
		if fs == known {
			return true
		}
	}
	return false
}

func (fs FilingStatus) String() string {
	return string(fs)
}
