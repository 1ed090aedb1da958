package utils

import (
	"strconv"
	"strings"
)

// DefaultBookingPrice is charged when a contractor lists no usable rate.
const DefaultBookingPrice = 150

// ParseContractorPrice keeps only the digits of a listed rate ("$85/hr" -> 85).
// An empty, missing or zero rate falls back to DefaultBookingPrice.
func ParseContractorPrice(price *string) int {
	if price == nil {
		return DefaultBookingPrice
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, *price)

	n, err := strconv.Atoi(digits)
	if err != nil || n == 0 {
		return DefaultBookingPrice
	}
	return n
}
