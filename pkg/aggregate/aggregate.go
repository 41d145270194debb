// Package aggregate joins catalog courses with their sections and
// professors into flat result rows.
//
// For each course the aggregator sums open seats across sections, collects
// professor names and flattens gen-ed tags. Per-course lookups that fail
// degrade to zero seats or no professors; they never fail the search.
//
// Lookups for different courses run concurrently, bounded by
// [Aggregator.Workers]. Rows always come back in the order the courses were
// given, whatever the worker count.
package aggregate

import (
	"context"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/coursefinder/pkg/catalog"
	"github.com/matzehuels/coursefinder/pkg/observability"
)

// DefaultWorkers is the number of courses looked up in parallel.
const DefaultWorkers = 4

// Source supplies per-course detail. The umd.io client implements it.
type Source interface {
	Sections(ctx context.Context, courseID string) ([]catalog.Section, error)
	ProfessorsByCourse(ctx context.Context, courseID string) ([]catalog.Professor, error)
}

// Aggregator builds result rows from courses.
//
// An Aggregator holds no per-search state; one value can serve concurrent
// searches.
type Aggregator struct {
	Source  Source
	Workers int // Parallel course lookups; 1 is fully sequential
	Logger  *log.Logger
}

// New creates an aggregator. Workers below 1 mean [DefaultWorkers].
// A nil logger uses log.Default().
func New(src Source, workers int, logger *log.Logger) *Aggregator {
	if workers < 1 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Aggregator{Source: src, Workers: workers, Logger: logger}
}

// Options control a single aggregation.
type Options struct {
	OpenOnly bool // Drop rows with no open seats, after aggregation
	Debug    bool // Attach the raw course JSON to each row

	// ReuseProfessors maps course ids to professor names already known
	// from a professor-name search. When non-nil, no per-course professor
	// lookups are made.
	ReuseProfessors map[string][]string
}

// Output is the result of an aggregation.
type Output struct {
	Rows     []catalog.Row
	Degraded int // Lookups that fell back to zero seats or no professors
}

// Aggregate builds one row per course, in input order. It only fails when
// ctx is cancelled.
func (a *Aggregator) Aggregate(ctx context.Context, courses []catalog.Course, opts Options) (Output, error) {
	rows := make([]catalog.Row, len(courses))
	var degraded atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(a.Workers, 1))

	for i, course := range courses {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			row, n := a.row(gctx, course, opts)
			if err := gctx.Err(); err != nil {
				return err
			}
			rows[i] = row
			degraded.Add(int32(n))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Output{}, err
	}
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}

	if opts.OpenOnly {
		rows = catalog.FilterOpen(rows)
	}
	return Output{Rows: rows, Degraded: int(degraded.Load())}, nil
}

// row fetches detail for one course and reports how many lookups degraded.
func (a *Aggregator) row(ctx context.Context, c catalog.Course, opts Options) (catalog.Row, int) {
	degraded := 0

	seats := 0
	if sections, err := a.Source.Sections(ctx, c.ID); err != nil {
		a.degrade(ctx, c.ID, "sections", err)
		degraded++
	} else {
		seats = catalog.TotalOpenSeats(sections)
	}

	var names []string
	if opts.ReuseProfessors != nil {
		names = opts.ReuseProfessors[c.ID]
	} else if profs, err := a.Source.ProfessorsByCourse(ctx, c.ID); err != nil {
		a.degrade(ctx, c.ID, "professors", err)
		degraded++
	} else {
		names = catalog.ProfessorNames(profs)
	}
	if len(names) == 0 {
		names = c.Professors
	}

	row := catalog.Row{
		CourseID:   c.ID,
		Name:       c.Name,
		Credits:    c.Credits,
		GenEds:     c.GenEds,
		Professors: catalog.UniqueSorted(names),
		SeatsOpen:  seats,
	}
	if opts.Debug {
		row.Raw = c.Raw
	}
	return row, degraded
}

func (a *Aggregator) degrade(ctx context.Context, courseID, stage string, err error) {
	if ctx.Err() != nil {
		return
	}
	if a.Logger != nil {
		a.Logger.Debug("course lookup degraded", "course", courseID, "stage", stage, "err", err)
	}
	observability.Search().OnCourseDegraded(ctx, courseID, stage, err)
}
