package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/coursefinder/pkg/catalog"
	"github.com/matzehuels/coursefinder/pkg/pipeline"
	"github.com/matzehuels/coursefinder/pkg/query"
	"github.com/matzehuels/coursefinder/pkg/render"
)

// searchFlags holds flags for the search command.
type searchFlags struct {
	dept           string
	genEd          string
	professor      string
	semester       string
	semesterFilter bool
	openOnly       bool
	debug          bool
	deptFallback   bool
	format         string
	workers        int
	noCache        bool
	refresh        bool
}

// searchCommand creates the one-shot search command.
func (c *CLI) searchCommand() *cobra.Command {
	flags := searchFlags{}

	cmd := &cobra.Command{
		Use:   "search [dept-or-course]",
		Short: "Search courses by department, course id, gen-ed or professor",
		Long: `Search the UMD course catalog and print one row per course with its
open seats and instructors.

The department/course input is either a department code (listing its first
10 courses) or comma-separated course ids. A professor name takes precedence
over both.`,
		Example: `  # First ten CMSC courses in the newest semester
  coursefinder search CMSC

  # Specific courses with open seats only
  coursefinder search CMSC131,CMSC132 --open-only

  # Gen-ed listing for a given semester, as CSV
  coursefinder search ENGL --gened FSAW --semester 202508 --format csv

  # Everything a professor teaches
  coursefinder search --professor "Justin Wyss-Gallifent"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.dept = args[0]
			}
			return c.runSearch(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.dept, "dept", "d", "", "department code or comma-separated course ids")
	cmd.Flags().StringVarP(&flags.genEd, "gened", "g", "", "gen-ed tag, e.g. FSAR (department listings only)")
	cmd.Flags().StringVarP(&flags.professor, "professor", "p", "", "professor name (takes precedence)")
	cmd.Flags().StringVarP(&flags.semester, "semester", "s", "", "semester code YYYYMM (default: newest)")
	cmd.Flags().BoolVar(&flags.semesterFilter, "semester-filter", true, "restrict catalog requests to the semester")
	cmd.Flags().BoolVar(&flags.openOnly, "open-only", false, "only show courses with open seats")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "print the raw course JSON after the table")
	cmd.Flags().BoolVar(&flags.deptFallback, "dept-fallback", false, "fall back to the department input when a professor has no courses")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format: "+strings.Join(formatNames(), ", "))
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "parallel course lookups (default from config)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable response caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "bypass cached responses and store fresh ones")

	return cmd
}

func formatNames() []string {
	names := make([]string, len(render.Formats))
	for i, f := range render.Formats {
		names[i] = string(f)
	}
	return names
}

// runSearch executes one search and writes the result.
func (c *CLI) runSearch(cmd *cobra.Command, flags searchFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := loggerFromContext(ctx)

	s, err := c.newSession(ctx, runnerOpts{noCache: flags.noCache, refresh: flags.refresh, workers: flags.workers})
	if err != nil {
		return err
	}
	defer s.Close()

	formatName := flags.format
	if formatName == "" {
		formatName = s.cfg.Search.Format
	}
	format, err := render.ParseFormat(formatName)
	if err != nil {
		return err
	}

	// Flags left at their defaults take the configured values.
	if !cmd.Flags().Changed("semester-filter") {
		flags.semesterFilter = s.cfg.Search.SemesterFilter
	}
	if !cmd.Flags().Changed("dept-fallback") {
		flags.deptFallback = s.cfg.Search.DeptFallback
	}

	out, errw := cmd.OutOrStdout(), cmd.ErrOrStderr()

	semester := catalog.Semester(strings.TrimSpace(flags.semester))
	if semester == "" && flags.semesterFilter {
		list := s.runner.Semesters(ctx)
		if list.Warning != "" {
			printWarning(errw, "%s", list.Warning)
		}
		semester = list.Default()
		if semester != "" {
			logger.Debug("using newest semester", "semester", semester, "label", semester.Label())
		}
	}

	filters := query.Filters{
		DeptOrCourse:   flags.dept,
		GenEd:          flags.genEd,
		Professor:      flags.professor,
		Semester:       semester,
		SemesterFilter: flags.semesterFilter,
		OpenOnly:       flags.openOnly,
		Debug:          flags.debug,
		DeptFallback:   flags.deptFallback,
	}

	var spin *Spinner
	if format == render.FormatTable && isTerminal(errw) {
		spin = newSpinnerWithContext(ctx, errw, "Searching "+query.Build(filters).Describe())
		spin.Start()
	}
	prog := newProgress(logger)
	result, err := s.runner.Search(ctx, filters)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Found %d courses", len(result.Rows)))

	return writeResult(out, errw, result, format, flags.debug)
}

// writeResult prints the banner and warnings to errw and the rows to out.
// JSON output always writes an array, empty or not.
func writeResult(out, errw io.Writer, result *pipeline.Result, format render.Format, debug bool) error {
	if result.Error != "" {
		printError(errw, "%s", result.Error)
	}
	for _, w := range result.Warnings {
		printWarning(errw, "%s", w)
	}

	if result.Empty() && format != render.FormatJSON {
		return nil
	}
	if err := render.Write(out, result.Rows, format); err != nil {
		return err
	}
	if debug {
		fmt.Fprintln(out)
		return render.Debug(out, result.Rows)
	}
	return nil
}
