package catalog

import (
	"slices"
	"strconv"

	"github.com/matzehuels/coursefinder/pkg/errors"
)

// Semester is a YYYYMM term code such as "202508".
type Semester string

var termNames = map[string]string{
	"01": "Spring",
	"05": "Summer",
	"08": "Fall",
	"12": "Winter",
}

// ParseSemester validates a 6-digit semester code.
func ParseSemester(code string) (Semester, error) {
	if code == "" {
		return "", errors.New(errors.ErrCodeInvalidSemester, "semester cannot be empty")
	}
	if err := errors.ValidateSemester(code); err != nil {
		return "", err
	}
	return Semester(code), nil
}

// Year returns the 4-digit year part.
func (s Semester) Year() string {
	if len(s) < 4 {
		return string(s)
	}
	return string(s[:4])
}

// Month returns the 2-digit term month part.
func (s Semester) Month() string {
	if len(s) < 4 {
		return ""
	}
	return string(s[4:])
}

// Term returns Spring, Summer, Fall or Winter, or "Unknown MM" for any
// other month.
func (s Semester) Term() string {
	if t, ok := termNames[s.Month()]; ok {
		return t
	}
	return "Unknown " + s.Month()
}

// Label returns the display label, e.g. "Fall 2025".
func (s Semester) Label() string {
	return s.Term() + " " + s.Year()
}

func (s Semester) String() string { return string(s) }

// number returns the numeric value of the code; non-numeric codes sort last.
func (s Semester) number() int {
	n, err := strconv.Atoi(string(s))
	if err != nil {
		return -1
	}
	return n
}

// SortSemesters sorts codes newest first by numeric value.
func SortSemesters(codes []Semester) {
	slices.SortStableFunc(codes, func(a, b Semester) int {
		return b.number() - a.number()
	})
}

func itoa(n int) string { return strconv.Itoa(n) }
