// Package agecalc holds the single age computation shared by the request
// handling layer and API clients. Both sides must agree given the same
// reference date, so neither is allowed to reimplement it.
package agecalc

import "time"

// At returns the age in whole years at the reference date.
// The birthday has not happened yet this year when the reference
// month/day pair precedes the birth month/day pair.
func At(birthDate, today time.Time) int {
	age := today.Year() - birthDate.Year()

	if today.Month() < birthDate.Month() ||
		(today.Month() == birthDate.Month() && today.Day() < birthDate.Day()) {
		age--
	}

	return age
}

// Today returns the age as of the current date.
func Today(birthDate time.Time) int {
	return At(birthDate, time.Now())
}
