package umdio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/coursefinder/pkg/cache"
	"github.com/matzehuels/coursefinder/pkg/catalog"
	"github.com/matzehuels/coursefinder/pkg/errors"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return NewClient(cache.NewMemoryCache(nil), Options{BaseURL: baseURL})
}

func serveJSON(t *testing.T, routes map[string]string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		key := r.URL.Path
		if r.URL.RawQuery != "" {
			key += "?" + r.URL.RawQuery
		}
		body, ok := routes[key]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func TestClient_Semesters(t *testing.T) {
	server, _ := serveJSON(t, map[string]string{
		"/courses/semesters": `["202412", "202508", 202501]`,
	})

	got, err := testClient(t, server.URL).Semesters(context.Background())
	if err != nil {
		t.Fatalf("Semesters() error: %v", err)
	}
	want := []catalog.Semester{"202508", "202501", "202412"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Semesters() mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_ListCourses(t *testing.T) {
	server, calls := serveJSON(t, map[string]string{
		"/courses?dept_id=CMSC&gen_ed=FSAR&per_page=100&semester=202508": `[
			{"course_id": "CMSC131", "name": "Object-Oriented Programming I", "credits": "4",
			 "dept_id": "CMSC", "semester": "202508", "gen_ed": [["FSAR"]]},
			{"course_id": "CMSC216", "name": "Introduction to Computer Systems", "credits": 4,
			 "dept_id": "CMSC", "gen_ed": []}
		]`,
	})

	c := testClient(t, server.URL)
	q := ListQuery{Dept: "CMSC", GenEd: "FSAR", Semester: "202508", PerPage: 100}
	got, err := c.ListCourses(context.Background(), q)
	if err != nil {
		t.Fatalf("ListCourses() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListCourses() returned %d courses, want 2", len(got))
	}
	if got[0].ID != "CMSC131" || got[1].ID != "CMSC216" {
		t.Errorf("order = %s, %s", got[0].ID, got[1].ID)
	}
	if got[1].Credits != "4" {
		t.Errorf("numeric credits = %q, want %q", got[1].Credits, "4")
	}
	if diff := cmp.Diff([]string{"FSAR"}, got[0].GenEds); diff != "" {
		t.Errorf("GenEds mismatch (-want +got):\n%s", diff)
	}
	if len(got[0].Raw) == 0 {
		t.Error("Raw should hold the course JSON")
	}

	if _, err := c.ListCourses(context.Background(), q); err != nil {
		t.Fatalf("second ListCourses() error: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("server calls = %d, want 1 (cached)", calls.Load())
	}
}

func TestListQuery_URL(t *testing.T) {
	tests := []struct {
		name string
		q    ListQuery
		want string
	}{
		{"empty", ListQuery{}, "http://x/courses"},
		{"dept", ListQuery{Dept: "CMSC", PerPage: 100}, "http://x/courses?dept_id=CMSC&per_page=100"},
		{"semester", ListQuery{Dept: "MATH", Semester: "202501"}, "http://x/courses?dept_id=MATH&semester=202501"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.URL("http://x"); got != tt.want {
				t.Errorf("URL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClient_Courses_ObjectOrList(t *testing.T) {
	server, _ := serveJSON(t, map[string]string{
		"/courses/CMSC216":                         `{"course_id": "CMSC216", "name": "Systems", "credits": "4"}`,
		"/courses/CMSC216,MATH140?semester=202508": `[{"course_id": "CMSC216"}, {"course_id": "MATH140"}]`,
	})
	c := testClient(t, server.URL)

	one, err := c.Courses(context.Background(), []string{"CMSC216"}, "")
	if err != nil {
		t.Fatalf("Courses() error: %v", err)
	}
	if len(one) != 1 || one[0].Name != "Systems" {
		t.Errorf("single object = %+v", one)
	}

	many, err := c.Courses(context.Background(), []string{"CMSC216", "MATH140"}, "202508")
	if err != nil {
		t.Fatalf("Courses() error: %v", err)
	}
	if len(many) != 2 || many[1].ID != "MATH140" {
		t.Errorf("list = %+v", many)
	}
}

func TestClient_Courses_Empty(t *testing.T) {
	got, err := testClient(t, "http://unused.invalid").Courses(context.Background(), nil, "")
	if err != nil || got != nil {
		t.Errorf("Courses(nil) = %v, %v; want nil, nil", got, err)
	}
}

func TestClient_Courses_ParseErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `[{"course_id": `},
		{"scalar", `"CMSC216"`},
		{"missing course_id", `[{"name": "No id"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := serveJSON(t, map[string]string{"/courses/CMSC216": tt.body})
			_, err := testClient(t, server.URL).Courses(context.Background(), []string{"CMSC216"}, "")
			if !errors.Is(err, errors.ErrCodeParse) {
				t.Errorf("Courses() error = %v, want PARSE_ERROR", err)
			}
		})
	}
}

func TestClient_Courses_NotFound(t *testing.T) {
	server, _ := serveJSON(t, nil)
	_, err := testClient(t, server.URL).Courses(context.Background(), []string{"NOPE999"}, "")
	if !errors.Is(err, errors.ErrCodeNotFound) || !errors.IsHTTP(err) {
		t.Errorf("Courses() error = %v, want NOT_FOUND http error", err)
	}
}

func TestClient_Sections(t *testing.T) {
	server, _ := serveJSON(t, map[string]string{
		"/courses/CMSC216/sections": `[
			{"section_id": "CMSC216-0101", "course": "CMSC216", "seats": {"open": 3, "total": 30}},
			{"section_id": "CMSC216-0102", "seats": {"open": 0}},
			{"section_id": "CMSC216-0103", "seats": null},
			"garbage",
			{"section_id": "CMSC216-0104", "seats": "40", "open_seats": "5", "waitlist": "2"}
		]`,
	})

	got, err := testClient(t, server.URL).Sections(context.Background(), "CMSC216")
	if err != nil {
		t.Fatalf("Sections() error: %v", err)
	}
	want := []catalog.Section{
		{ID: "CMSC216-0101", CourseID: "CMSC216", Seats: &catalog.Seats{Open: 3, Total: 30}},
		{ID: "CMSC216-0102", CourseID: "CMSC216", Seats: &catalog.Seats{Open: 0}},
		{ID: "CMSC216-0103", CourseID: "CMSC216"},
		{ID: "CMSC216-0104", CourseID: "CMSC216", Seats: &catalog.Seats{Open: 5, Total: 40, Waitlist: 2}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Sections() mismatch (-want +got):\n%s", diff)
	}
	if total := catalog.TotalOpenSeats(got); total != 8 {
		t.Errorf("TotalOpenSeats = %d, want 8", total)
	}
}

func TestClient_Professors(t *testing.T) {
	server, _ := serveJSON(t, map[string]string{
		"/professors?name=Jane+Smith": `[
			{"name": "Jane Smith", "taught": ["CMSC216", {"course_id": "CMSC330", "semester": "202501"}, 7]}
		]`,
		"/professors?course_id=CMSC216": `[{"name": "Jane Smith"}, {"name": "Bob Jones", "taught": null}]`,
	})
	c := testClient(t, server.URL)

	byName, err := c.ProfessorsByName(context.Background(), "Jane Smith")
	if err != nil {
		t.Fatalf("ProfessorsByName() error: %v", err)
	}
	want := []catalog.Professor{{Name: "Jane Smith", Taught: []string{"CMSC216", "CMSC330"}}}
	if diff := cmp.Diff(want, byName); diff != "" {
		t.Errorf("ProfessorsByName() mismatch (-want +got):\n%s", diff)
	}

	byCourse, err := c.ProfessorsByCourse(context.Background(), "CMSC216")
	if err != nil {
		t.Fatalf("ProfessorsByCourse() error: %v", err)
	}
	if diff := cmp.Diff([]string{"Bob Jones", "Jane Smith"}, catalog.ProfessorNames(byCourse)); diff != "" {
		t.Errorf("ProfessorNames mismatch (-want +got):\n%s", diff)
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(nil, Options{BaseURL: "http://example.test/v1/"})
	if c.BaseURL() != "http://example.test/v1" {
		t.Errorf("BaseURL() = %q", c.BaseURL())
	}
	if c.responseTTL != cache.TTLResponse || c.semesterTTL != cache.TTLSemesters {
		t.Errorf("TTLs = %v, %v", c.responseTTL, c.semesterTTL)
	}
	if NewClient(nil, Options{}).BaseURL() != DefaultBaseURL {
		t.Error("empty BaseURL should default to DefaultBaseURL")
	}
}
