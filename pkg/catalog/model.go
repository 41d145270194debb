package catalog

import (
	"encoding/json"
	"slices"
	"strings"
)

// Course is one catalog course record.
type Course struct {
	ID         string          // Course identifier, e.g. "CMSC216" (never empty in a valid course)
	Name       string          // Display name
	Credits    string          // Credit count as listed ("3", "1-3")
	DeptID     string          // Department code, e.g. "CMSC"
	Semester   Semester        // Semester the record belongs to (may be empty)
	GenEds     []string        // Flattened gen-ed tags in catalog order
	Professors []string        // Professor names listed on the course record
	Raw        json.RawMessage // Course JSON exactly as returned, for debug dumps
}

// Seats is the seat-availability record of a section.
type Seats struct {
	Open     int
	Total    int
	Waitlist int
}

// Section belongs to exactly one course.
type Section struct {
	ID       string
	CourseID string
	Seats    *Seats // nil when the record is missing or malformed
}

// OpenSeats returns the open-seat count, or 0 for a missing record or a
// negative count.
func (s Section) OpenSeats() int {
	if s.Seats == nil || s.Seats.Open < 0 {
		return 0
	}
	return s.Seats.Open
}

// Professor is an instructor with the course identifiers they have taught.
type Professor struct {
	Name   string
	Taught []string
}

// TotalOpenSeats sums open seats across sections. Malformed records count
// as zero.
func TotalOpenSeats(sections []Section) int {
	total := 0
	for _, s := range sections {
		total += s.OpenSeats()
	}
	return total
}

// ProfessorNames returns the de-duplicated, sorted names of profs.
// Blank names are dropped.
func ProfessorNames(profs []Professor) []string {
	names := make([]string, 0, len(profs))
	for _, p := range profs {
		names = append(names, p.Name)
	}
	return UniqueSorted(names)
}

// TaughtCourseIDs collects every course identifier taught by profs,
// de-duplicated and sorted.
func TaughtCourseIDs(profs []Professor) []string {
	var ids []string
	for _, p := range profs {
		ids = append(ids, p.Taught...)
	}
	return UniqueSorted(ids)
}

// UniqueSorted trims, de-duplicates and sorts values, dropping blanks.
func UniqueSorted(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// =============================================================================
// Result Rows
// =============================================================================

// Row is the read-only projection shown in the results table: one course
// joined with its open-seat total and professor names.
type Row struct {
	CourseID   string          `json:"course_id"`
	Name       string          `json:"name"`
	Credits    string          `json:"credits"`
	GenEds     []string        `json:"gen_ed"`
	Professors []string        `json:"professors"`
	SeatsOpen  int             `json:"seats_open"`
	Raw        json.RawMessage `json:"raw,omitempty"`
}

// NotAvailable is shown in place of an empty professor list.
const NotAvailable = "N/A"

// Columns are the table headers, in display order.
var Columns = []string{"Course ID", "Name", "Credits", "GenEd", "Professors", "Seats Open"}

// GenEdString joins the gen-ed tags with ", ".
func (r Row) GenEdString() string {
	return strings.Join(r.GenEds, ", ")
}

// ProfessorString joins professor names with ", ", or returns "N/A".
func (r Row) ProfessorString() string {
	if len(r.Professors) == 0 {
		return NotAvailable
	}
	return strings.Join(r.Professors, ", ")
}

// Cells returns the row formatted as table cells in [Columns] order.
func (r Row) Cells() []string {
	return []string{
		r.CourseID,
		r.Name,
		r.Credits,
		r.GenEdString(),
		r.ProfessorString(),
		itoa(r.SeatsOpen),
	}
}

// FilterOpen drops rows with no open seats.
func FilterOpen(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.SeatsOpen > 0 {
			out = append(out, r)
		}
	}
	return out
}
