// Package query turns the user's search filters into a catalog plan.
//
// A search takes one of four shapes, decided in this order:
//
//  1. A professor name is given: resolve the professor to the courses they
//     taught, then look those courses up ([KindProfessor]).
//  2. The department/course input names specific courses: look them up by
//     identifier ([KindSpecific]).
//  3. Otherwise the input is a department: list its courses, optionally
//     narrowed by gen-ed tag, and keep the first [Limit] ([KindDepartment]).
//  4. Nothing was given: the result is empty ([KindEmpty]).
//
// The plan is transport-independent; URL construction lives in the catalog
// client.
package query

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/matzehuels/coursefinder/pkg/catalog"
	"github.com/matzehuels/coursefinder/pkg/errors"
)

const (
	// PerPage is the page size requested from the department listing.
	PerPage = 100

	// Limit caps the number of department listing results that are shown.
	Limit = 10
)

// Filters are the user's search inputs.
type Filters struct {
	DeptOrCourse   string           // Department code or comma-separated course ids
	GenEd          string           // Gen-ed tag, department listings only
	Professor      string           // Professor name (takes precedence)
	Semester       catalog.Semester // Selected semester (may be empty)
	SemesterFilter bool             // Append Semester to catalog requests
	OpenOnly       bool             // Drop courses with no open seats
	Debug          bool             // Attach raw course JSON to rows
	DeptFallback   bool             // Fall back to DeptOrCourse when a professor has no courses
}

// Validate checks the free-text fields and the semester code.
func (f Filters) Validate() error {
	fields := []struct{ name, value string }{
		{"department or course", f.DeptOrCourse},
		{"gen-ed", f.GenEd},
		{"professor", f.Professor},
	}
	for _, fv := range fields {
		if err := errors.ValidateInput(fv.name, fv.value); err != nil {
			return err
		}
	}
	return errors.ValidateSemester(string(f.Semester))
}

// EffectiveSemester returns the semester to send to the catalog, or "" when
// semester filtering is off.
func (f Filters) EffectiveSemester() catalog.Semester {
	if !f.SemesterFilter {
		return ""
	}
	return catalog.Semester(strings.TrimSpace(string(f.Semester)))
}

// Kind identifies the shape of a plan.
type Kind int

const (
	KindEmpty Kind = iota
	KindProfessor
	KindSpecific
	KindDepartment
)

var kindNames = [...]string{"empty", "professor", "specific", "department"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Plan is the set of catalog requests a search needs.
type Plan struct {
	Kind      Kind
	Professor string           // KindProfessor
	CourseIDs []string         // KindSpecific
	Dept      string           // KindDepartment
	GenEd     string           // KindDepartment, upper-cased
	Semester  catalog.Semester // Empty when semester filtering is off
	PerPage   int              // KindDepartment
	Limit     int              // KindDepartment; 0 means unlimited

	// Fallback is the plan to run when a professor search finds no
	// courses. Nil unless Filters.DeptFallback is set.
	Fallback *Plan
}

// Describe returns a short, log-friendly summary of the plan.
func (p Plan) Describe() string {
	switch p.Kind {
	case KindProfessor:
		return withSemester(fmt.Sprintf("professor %q", p.Professor), p.Semester)
	case KindSpecific:
		return withSemester("courses "+strings.Join(p.CourseIDs, ","), p.Semester)
	case KindDepartment:
		s := "department " + p.Dept
		if p.GenEd != "" {
			s += " gen-ed " + p.GenEd
		}
		return withSemester(s, p.Semester)
	default:
		return "empty"
	}
}

func withSemester(s string, sem catalog.Semester) string {
	if sem == "" {
		return s
	}
	return s + " in " + string(sem)
}

// Build turns filters into a plan. It never fails; callers validate first.
func Build(f Filters) Plan {
	semester := f.EffectiveSemester()

	if prof := strings.TrimSpace(f.Professor); prof != "" {
		p := Plan{Kind: KindProfessor, Professor: prof, Semester: semester}
		if f.DeptFallback {
			if fb := buildCourseInput(f, semester); fb.Kind != KindEmpty {
				p.Fallback = &fb
			}
		}
		return p
	}
	return buildCourseInput(f, semester)
}

func buildCourseInput(f Filters, semester catalog.Semester) Plan {
	input := strings.ToUpper(strings.TrimSpace(f.DeptOrCourse))
	if input == "" {
		return Plan{Kind: KindEmpty}
	}
	if Classify(input) == KindSpecific {
		return Plan{Kind: KindSpecific, CourseIDs: SplitCourseIDs(input), Semester: semester}
	}
	return Plan{
		Kind:     KindDepartment,
		Dept:     input,
		GenEd:    strings.ToUpper(strings.TrimSpace(f.GenEd)),
		Semester: semester,
		PerPage:  PerPage,
		Limit:    Limit,
	}
}

// Classify decides whether input names specific courses or a department.
// Input containing a comma, or longer than four characters whose first four
// are letters, is specific. Everything else is a department.
//
// Department codes longer than four letters are misread as course ids.
func Classify(input string) Kind {
	input = strings.ToUpper(strings.TrimSpace(input))
	if input == "" {
		return KindEmpty
	}
	if strings.Contains(input, ",") {
		return KindSpecific
	}
	r := []rune(input)
	if len(r) > 4 && allLetters(r[:4]) {
		return KindSpecific
	}
	return KindDepartment
}

func allLetters(rs []rune) bool {
	for _, r := range rs {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// SplitCourseIDs splits comma-separated course ids, trimming blanks and
// dropping empty entries.
func SplitCourseIDs(input string) []string {
	var ids []string
	for _, part := range strings.Split(input, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
