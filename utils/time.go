package utils

import "time"

const DateLayout = "2006-01-02"

// Now is replaced in tests.
var Now = time.Now

// Today is the current calendar date in the server's zone.
func Today() string {
	return Now().Format(DateLayout)
}

// Tomorrow is the calendar date after Today.
func Tomorrow() string {
	return Now().AddDate(0, 0, 1).Format(DateLayout)
}

// ParseBookingDate validates a YYYY-MM-DD date and reports whether it lies
// before today.
func ParseBookingDate(date string) (past bool, err error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return false, err
	}
	// Same layout, so lexical order is calendar order.
	return date < Today(), nil
}
