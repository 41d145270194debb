package umdio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/coursefinder/pkg/catalog"
)

// =============================================================================
// API Shapes
// =============================================================================

type apiCourse struct {
	CourseID   string          `json:"course_id"`
	Name       string          `json:"name"`
	DeptID     string          `json:"dept_id"`
	Semester   flexString      `json:"semester"`
	Credits    flexString      `json:"credits"`
	GenEd      json.RawMessage `json:"gen_ed"`
	Professors stringList      `json:"professors"`

	raw json.RawMessage
}

func (c *apiCourse) UnmarshalJSON(data []byte) error {
	type plain apiCourse
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = apiCourse(p)
	c.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (c apiCourse) toCourse() (catalog.Course, error) {
	if strings.TrimSpace(c.CourseID) == "" {
		return catalog.Course{}, fmt.Errorf("missing course_id")
	}
	return catalog.Course{
		ID:         c.CourseID,
		Name:       c.Name,
		Credits:    string(c.Credits),
		DeptID:     c.DeptID,
		Semester:   catalog.Semester(c.Semester),
		GenEds:     catalog.FlattenGenEdJSON(c.GenEd),
		Professors: []string(c.Professors),
		Raw:        c.raw,
	}, nil
}

type apiSection struct {
	SectionID string          `json:"section_id"`
	Course    string          `json:"course"`
	Seats     json.RawMessage `json:"seats"`
	OpenSeats json.RawMessage `json:"open_seats"`
	Waitlist  json.RawMessage `json:"waitlist"`
}

func (s apiSection) toSection() catalog.Section {
	return catalog.Section{
		ID:       s.SectionID,
		CourseID: s.Course,
		Seats:    s.seats(),
	}
}

// seats reads either a {"open": n, ...} record or the flat
// seats/open_seats/waitlist counts. Anything unreadable yields nil.
func (s apiSection) seats() *catalog.Seats {
	if isObject(s.Seats) {
		var rec map[string]json.RawMessage
		if err := json.Unmarshal(s.Seats, &rec); err != nil {
			return nil
		}
		open, ok := parseCount(rec["open"])
		if !ok {
			return nil
		}
		total, _ := parseCount(rec["total"])
		waitlist, _ := parseCount(rec["waitlist"])
		return &catalog.Seats{Open: open, Total: total, Waitlist: waitlist}
	}
	open, ok := parseCount(s.OpenSeats)
	if !ok {
		return nil
	}
	total, _ := parseCount(s.Seats)
	waitlist, _ := parseCount(s.Waitlist)
	return &catalog.Seats{Open: open, Total: total, Waitlist: waitlist}
}

type apiProfessor struct {
	Name   string          `json:"name"`
	Taught json.RawMessage `json:"taught"`
}

// toProfessor accepts taught entries as plain course identifiers or as
// {"course_id": ...} objects. Other entries are ignored.
func (p apiProfessor) toProfessor() catalog.Professor {
	prof := catalog.Professor{Name: p.Name}
	var entries []json.RawMessage
	if err := json.Unmarshal(p.Taught, &entries); err != nil {
		return prof
	}
	for _, e := range entries {
		var id string
		if json.Unmarshal(e, &id) == nil {
			if id != "" {
				prof.Taught = append(prof.Taught, id)
			}
			continue
		}
		var obj struct {
			CourseID string `json:"course_id"`
		}
		if json.Unmarshal(e, &obj) == nil && obj.CourseID != "" {
			prof.Taught = append(prof.Taught, obj.CourseID)
		}
	}
	return prof
}

// =============================================================================
// Tolerant Decoders
// =============================================================================

// oneOrMany decodes either a JSON list or a single object into a list.
// null decodes to an empty list.
type oneOrMany[T any] []T

func (m *oneOrMany[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*m = nil
		return nil
	case len(data) > 0 && data[0] == '[':
		var list []T
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*m = list
		return nil
	case len(data) > 0 && data[0] == '{':
		var one T
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*m = []T{one}
		return nil
	default:
		return fmt.Errorf("expected object or list, got %.20s", data)
	}
}

// looseObject decodes a JSON object into v and marks any other value as
// absent instead of failing.
type looseObject[T any] struct {
	v  T
	ok bool
}

func (o *looseObject[T]) UnmarshalJSON(data []byte) error {
	if !isObject(data) {
		return nil
	}
	if err := json.Unmarshal(data, &o.v); err != nil {
		return err
	}
	o.ok = true
	return nil
}

// flexString accepts a JSON string or number.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %.20s", data)
	}
	*s = flexString(n.String())
	return nil
}

// stringList keeps the string entries of a JSON list and drops the rest.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		*l = nil
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	*l = out
	return nil
}

func isObject(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '{'
}

// parseCount reads a seat count given as a JSON number or numeric string.
func parseCount(data json.RawMessage) (int, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return int(f), true
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}
