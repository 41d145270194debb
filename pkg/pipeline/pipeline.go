// Package pipeline runs a course search from filters to result rows.
//
// This package implements the search flow shared by the CLI, the terminal
// UI and the web dashboard. By centralizing it, every surface applies the
// same query rules, failure handling and banners.
//
// # Architecture
//
// A search runs in three stages:
//
//  1. Plan: validate the filters and build a [query.Plan]
//  2. Fetch: resolve the plan against the catalog (through the cache)
//  3. Aggregate: join each course with its sections and professors
//
// # Failure handling
//
// No catalog failure aborts a search:
//
//   - semester-list and professor-lookup failures become warnings
//   - per-course section and professor failures degrade silently
//   - a failed course listing sets [Result.Error] and yields no rows
//
// Only invalid filters and context cancellation are returned as errors.
//
// # Usage
//
//	runner := pipeline.NewRunner(client, pipeline.Options{Workers: 4}, logger)
//	result, err := runner.Search(ctx, query.Filters{DeptOrCourse: "CMSC"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if result.Error != "" {
//	    fmt.Println(result.Error)
//	}
//	for _, row := range result.Rows {
//	    fmt.Println(row.Cells())
//	}
package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/coursefinder/pkg/aggregate"
	"github.com/matzehuels/coursefinder/pkg/catalog"
	"github.com/matzehuels/coursefinder/pkg/integrations/umdio"
	"github.com/matzehuels/coursefinder/pkg/query"
)

// =============================================================================
// Banners
// =============================================================================

const (
	// NoResultsWarning is shown whenever a search produces no rows.
	NoResultsWarning = "No courses found matching your filters."

	// SemestersWarning is shown when the semester list cannot be loaded.
	SemestersWarning = "Could not fetch semesters from API."

	professorErrorPrefix = "Failed to fetch professor data: "
	catalogErrorPrefix   = "Failed to fetch data from UMD API: "
)

// =============================================================================
// Catalog
// =============================================================================

// Catalog is the set of catalog operations a search needs.
// [umdio.Client] implements it.
type Catalog interface {
	aggregate.Source
	Semesters(ctx context.Context) ([]catalog.Semester, error)
	ListCourses(ctx context.Context, q umdio.ListQuery) ([]catalog.Course, error)
	Courses(ctx context.Context, ids []string, semester catalog.Semester) ([]catalog.Course, error)
	ProfessorsByName(ctx context.Context, name string) ([]catalog.Professor, error)
}

var _ Catalog = (*umdio.Client)(nil)

// =============================================================================
// Options and Results
// =============================================================================

// Options configures a [Runner].
type Options struct {
	// Workers bounds parallel course lookups (default aggregate.DefaultWorkers).
	Workers int

	// ReuseProfessors labels professor-search results with the searched
	// professors instead of looking up every course's professors.
	ReuseProfessors bool
}

// Result is the outcome of one search.
type Result struct {
	// ID identifies the search in logs and API responses.
	ID string `json:"id"`

	// Plan is the plan the filters resolved to.
	Plan query.Plan `json:"-"`

	// Rows are the result rows in catalog order.
	Rows []catalog.Row `json:"rows"`

	// Warnings are non-fatal notices, including [NoResultsWarning].
	Warnings []string `json:"warnings,omitempty"`

	// Error is the banner for a failed course listing. Rows are empty
	// when it is set.
	Error string `json:"error,omitempty"`

	// Err is the underlying listing failure.
	Err error `json:"-"`

	Stats Stats `json:"stats"`
}

// Empty reports whether the search produced no rows.
func (r *Result) Empty() bool { return len(r.Rows) == 0 }

// Stats contains search statistics.
type Stats struct {
	Kind     string        `json:"kind"`
	Courses  int           `json:"courses"`  // Courses returned by the catalog
	Rows     int           `json:"rows"`     // Rows after filtering
	Degraded int           `json:"degraded"` // Per-course lookups that fell back
	Duration time.Duration `json:"duration_ns"`
}

// SemesterList is the semester selector's content.
type SemesterList struct {
	Codes   []catalog.Semester `json:"codes"`
	Warning string             `json:"warning,omitempty"`
}

// Default returns the newest semester, or "" when none are known.
func (l SemesterList) Default() catalog.Semester {
	if len(l.Codes) == 0 {
		return ""
	}
	return l.Codes[0]
}

// Labels returns the display label of each code, in order.
func (l SemesterList) Labels() []string {
	labels := make([]string, len(l.Codes))
	for i, c := range l.Codes {
		labels[i] = c.Label()
	}
	return labels
}
