package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/coursefinder/pkg/aggregate"
	"github.com/matzehuels/coursefinder/pkg/catalog"
	"github.com/matzehuels/coursefinder/pkg/errors"
	"github.com/matzehuels/coursefinder/pkg/integrations/umdio"
	"github.com/matzehuels/coursefinder/pkg/observability"
	"github.com/matzehuels/coursefinder/pkg/query"
)

// Runner executes searches against a catalog.
// The CLI, TUI and web server all use it.
//
// The Runner stores no search results. Multiple goroutines can safely use
// the same Runner.
type Runner struct {
	Catalog    Catalog
	Aggregator *aggregate.Aggregator
	Logger     *log.Logger
	Options    Options
}

// NewRunner creates a runner over cat.
// If logger is nil, log.Default() is used.
func NewRunner(cat Catalog, opts Options, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Catalog:    cat,
		Aggregator: aggregate.New(cat, opts.Workers, logger),
		Logger:     logger,
		Options:    opts,
	}
}

// Semesters loads the semester selector. A failure yields an empty list
// and [SemestersWarning].
func (r *Runner) Semesters(ctx context.Context) SemesterList {
	codes, err := r.Catalog.Semesters(ctx)
	if err != nil {
		r.Logger.Warn("semester list unavailable", "err", err)
		return SemesterList{Warning: SemestersWarning}
	}
	return SemesterList{Codes: codes}
}

// Search runs one search. Catalog failures are reported through the
// result's warnings and error banner; the returned error is non-nil only
// for invalid filters or a cancelled context.
func (r *Runner) Search(ctx context.Context, f query.Filters) (*Result, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	plan := query.Build(f)
	result := &Result{ID: uuid.NewString(), Plan: plan}
	logger := r.Logger.With("search", result.ID[:8])

	kind := plan.Kind.String()
	observability.Search().OnSearchStart(ctx, kind, plan.Describe())
	logger.Debug("planned search", "plan", plan.Describe())

	courses, reuse, err := r.fetch(ctx, plan, result, logger)
	if err != nil {
		if ctx.Err() != nil {
			observability.Search().OnSearchComplete(ctx, kind, 0, time.Since(start), ctx.Err())
			return nil, ctx.Err()
		}
		result.Err = err
		result.Error = catalogErrorPrefix + errors.UserMessage(err)
		logger.Warn("course listing failed", "err", err)
		courses = nil
	}
	result.Stats.Courses = len(courses)

	out, err := r.Aggregator.Aggregate(ctx, courses, aggregate.Options{
		OpenOnly:        f.OpenOnly,
		Debug:           f.Debug,
		ReuseProfessors: reuse,
	})
	if err != nil {
		observability.Search().OnSearchComplete(ctx, kind, 0, time.Since(start), err)
		return nil, err
	}

	result.Rows = out.Rows
	if result.Rows == nil {
		result.Rows = []catalog.Row{}
	}
	if result.Empty() {
		result.Warnings = append(result.Warnings, NoResultsWarning)
	}
	result.Stats.Kind = kind
	result.Stats.Rows = len(result.Rows)
	result.Stats.Degraded = out.Degraded
	result.Stats.Duration = time.Since(start)

	observability.Search().OnSearchComplete(ctx, kind, len(result.Rows), result.Stats.Duration, result.Err)
	logger.Info("search complete",
		"plan", plan.Describe(),
		"courses", result.Stats.Courses,
		"rows", result.Stats.Rows,
		"duration", result.Stats.Duration)

	return result, nil
}

// fetch resolves a plan to catalog courses. For professor plans it also
// returns the course-to-professor names to reuse, when enabled.
func (r *Runner) fetch(ctx context.Context, plan query.Plan, result *Result, logger *log.Logger) ([]catalog.Course, map[string][]string, error) {
	switch plan.Kind {
	case query.KindProfessor:
		return r.fetchByProfessor(ctx, plan, result, logger)

	case query.KindSpecific:
		courses, err := r.Catalog.Courses(ctx, plan.CourseIDs, plan.Semester)
		return courses, nil, err

	case query.KindDepartment:
		courses, err := r.Catalog.ListCourses(ctx, umdio.ListQuery{
			Dept:     plan.Dept,
			GenEd:    plan.GenEd,
			Semester: plan.Semester,
			PerPage:  plan.PerPage,
		})
		if err != nil {
			return nil, nil, err
		}
		if plan.Limit > 0 && len(courses) > plan.Limit {
			courses = courses[:plan.Limit]
		}
		return courses, nil, nil

	default:
		return nil, nil, nil
	}
}

func (r *Runner) fetchByProfessor(ctx context.Context, plan query.Plan, result *Result, logger *log.Logger) ([]catalog.Course, map[string][]string, error) {
	profs, err := r.Catalog.ProfessorsByName(ctx, plan.Professor)
	switch {
	case err == nil:
	case ctx.Err() != nil:
		return nil, nil, ctx.Err()
	case errors.Is(err, errors.ErrCodeNotFound):
		logger.Debug("no professor matches", "name", plan.Professor)
		profs = nil
	default:
		logger.Warn("professor lookup failed", "name", plan.Professor, "err", err)
		result.Warnings = append(result.Warnings, professorErrorPrefix+errors.UserMessage(err))
		profs = nil
	}

	ids := catalog.TaughtCourseIDs(profs)
	if len(ids) == 0 {
		if plan.Fallback != nil {
			logger.Info("professor has no courses, falling back", "plan", plan.Fallback.Describe())
			return r.fetch(ctx, *plan.Fallback, result, logger)
		}
		return nil, nil, nil
	}

	courses, err := r.Catalog.Courses(ctx, ids, plan.Semester)
	if err != nil {
		return nil, nil, err
	}
	if !r.Options.ReuseProfessors {
		return courses, nil, nil
	}
	return courses, professorsByCourse(profs), nil
}

// professorsByCourse inverts professor → taught courses.
func professorsByCourse(profs []catalog.Professor) map[string][]string {
	m := make(map[string][]string)
	for _, p := range profs {
		for _, id := range p.Taught {
			m[id] = append(m[id], p.Name)
		}
	}
	return m
}
