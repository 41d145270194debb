package umdio

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/coursefinder/pkg/cache"
	"github.com/matzehuels/coursefinder/pkg/catalog"
	"github.com/matzehuels/coursefinder/pkg/errors"
	"github.com/matzehuels/coursefinder/pkg/integrations"
)

// DefaultBaseURL is the public umd.io v1 endpoint.
const DefaultBaseURL = "https://api.umd.io/v1"

// Namespace scopes umd.io responses in a shared cache.
const Namespace = "umdio:"

// Options configures a [Client]. The zero value uses the public API and the
// default TTLs.
type Options struct {
	BaseURL     string        // API root without trailing slash (default DefaultBaseURL)
	ResponseTTL time.Duration // TTL for course, section and professor responses
	SemesterTTL time.Duration // TTL for the semester list
	HTTP        integrations.Options
}

// Client provides access to the umd.io course catalog.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL     string
	responseTTL time.Duration
	semesterTTL time.Duration
}

// NewClient creates a umd.io client with the given cache backend.
// A nil backend disables caching.
func NewClient(backend cache.Cache, opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.ResponseTTL <= 0 {
		opts.ResponseTTL = cache.TTLResponse
	}
	if opts.SemesterTTL <= 0 {
		opts.SemesterTTL = cache.TTLSemesters
	}
	return &Client{
		Client:      integrations.NewClient(backend, Namespace, opts.HTTP),
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		responseTTL: opts.ResponseTTL,
		semesterTTL: opts.SemesterTTL,
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Semesters returns the semester codes known to the catalog, newest first.
func (c *Client) Semesters(ctx context.Context) ([]catalog.Semester, error) {
	var raw []flexString
	if err := c.Get(ctx, c.baseURL+"/courses/semesters", c.semesterTTL, &raw); err != nil {
		return nil, err
	}
	codes := make([]catalog.Semester, 0, len(raw))
	for _, s := range raw {
		if s != "" {
			codes = append(codes, catalog.Semester(s))
		}
	}
	catalog.SortSemesters(codes)
	return codes, nil
}

// ListQuery selects courses from the department listing endpoint. Empty
// fields are omitted from the request.
type ListQuery struct {
	Dept     string
	GenEd    string
	Semester catalog.Semester
	PerPage  int
}

// URL returns the listing URL relative to base. Query keys are encoded in
// sorted order, so equal queries always share a cache entry.
func (q ListQuery) URL(base string) string {
	v := url.Values{}
	if q.Dept != "" {
		v.Set("dept_id", q.Dept)
	}
	if q.GenEd != "" {
		v.Set("gen_ed", q.GenEd)
	}
	if q.Semester != "" {
		v.Set("semester", string(q.Semester))
	}
	if q.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(q.PerPage))
	}
	if len(v) == 0 {
		return base + "/courses"
	}
	return base + "/courses?" + v.Encode()
}

// ListCourses returns the courses matching q in catalog order.
func (c *Client) ListCourses(ctx context.Context, q ListQuery) ([]catalog.Course, error) {
	return c.courses(ctx, q.URL(c.baseURL))
}

// CoursesURL returns the lookup URL for one or more course identifiers.
func (c *Client) CoursesURL(ids []string, semester catalog.Semester) string {
	escaped := make([]string, len(ids))
	for i, id := range ids {
		escaped[i] = url.PathEscape(id)
	}
	u := c.baseURL + "/courses/" + strings.Join(escaped, ",")
	if semester != "" {
		u += "?semester=" + url.QueryEscape(string(semester))
	}
	return u
}

// Courses looks up specific courses by identifier. The catalog answers with
// an object for one id and a list for several; both come back as a list.
func (c *Client) Courses(ctx context.Context, ids []string, semester catalog.Semester) ([]catalog.Course, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return c.courses(ctx, c.CoursesURL(ids, semester))
}

func (c *Client) courses(ctx context.Context, u string) ([]catalog.Course, error) {
	var raw oneOrMany[apiCourse]
	if err := c.Get(ctx, u, c.responseTTL, &raw); err != nil {
		return nil, err
	}
	out := make([]catalog.Course, 0, len(raw))
	for i, ac := range raw {
		course, err := ac.toCourse()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "course %d from %s", i, u)
		}
		out = append(out, course)
	}
	return out, nil
}

// Sections returns the sections of one course. Entries that are not JSON
// objects are skipped; malformed seat records decode to nil seats.
func (c *Client) Sections(ctx context.Context, courseID string) ([]catalog.Section, error) {
	u := c.baseURL + "/courses/" + url.PathEscape(courseID) + "/sections"
	var raw oneOrMany[looseObject[apiSection]]
	if err := c.Get(ctx, u, c.responseTTL, &raw); err != nil {
		return nil, err
	}
	out := make([]catalog.Section, 0, len(raw))
	for _, s := range raw {
		if !s.ok {
			continue
		}
		sec := s.v.toSection()
		if sec.CourseID == "" {
			sec.CourseID = courseID
		}
		out = append(out, sec)
	}
	return out, nil
}

// ProfessorsByName searches professors by (partial) name.
func (c *Client) ProfessorsByName(ctx context.Context, name string) ([]catalog.Professor, error) {
	return c.professors(ctx, c.baseURL+"/professors?name="+integrations.URLEncode(name))
}

// ProfessorsByCourse returns the professors who teach courseID.
func (c *Client) ProfessorsByCourse(ctx context.Context, courseID string) ([]catalog.Professor, error) {
	return c.professors(ctx, c.baseURL+"/professors?course_id="+integrations.URLEncode(courseID))
}

func (c *Client) professors(ctx context.Context, u string) ([]catalog.Professor, error) {
	var raw oneOrMany[looseObject[apiProfessor]]
	if err := c.Get(ctx, u, c.responseTTL, &raw); err != nil {
		return nil, err
	}
	out := make([]catalog.Professor, 0, len(raw))
	for _, p := range raw {
		if p.ok {
			out = append(out, p.v.toProfessor())
		}
	}
	return out, nil
}
