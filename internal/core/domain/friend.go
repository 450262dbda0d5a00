package domain

import (
	"errors"
	"time"
)

var (
	ErrFriendNotFound = errors.New("friend not found")
	ErrFriendExists   = errors.New("friend already exists")
)

// Friend is a birthday entry owned by exactly one user. The pair
// (firstname, lastname) is unique within an owner's list.
type Friend struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"-"`
	Firstname   string    `json:"firstname"`
	Lastname    string    `json:"lastname"`
	Nickname    string    `json:"nickname,omitempty"`
	DateOfBirth time.Time `json:"date_of_birth"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DaysUntilNextBirthday returns the number of days from today until the next
// occurrence of the friend's birthday.
func (f *Friend) DaysUntilNextBirthday() int {
	return DaysUntilNext(f.DateOfBirth, time.Now())
}

// DaysUntilNext computes the days remaining from now until the next
// occurrence of the month/day of date. When the occurrence falls on the
// current day, or has already passed this year, it rolls over to next year,
// so the result is always in [1, 366]. A February 29 date resolves to
// February 28 in non-leap years.
func DaysUntilNext(date, now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	next := atYear(date.Month(), date.Day(), today.Year())
	if !next.After(today) {
		next = atYear(date.Month(), date.Day(), today.Year()+1)
	}

	return int(next.Sub(today).Hours() / 24)
}

// atYear pins a month/day to the given year, clamping Feb 29 to Feb 28 when
// the year is not a leap year instead of normalising to Mar 1.
func atYear(month time.Month, day, year int) time.Time {
	if month == time.February && day == 29 && !isLeapYear(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
