// Package pkg provides the core libraries for coursefinder, a course lookup
// tool for the University of Maryland catalog at api.umd.io.
//
// # Overview
//
// The pkg directory is organized into these areas:
//
//  1. [catalog] - Domain types (courses, sections, professors, result rows)
//  2. [integrations] - The umd.io client with caching and retry
//  3. [query] - Turning search filters into a catalog plan
//  4. [aggregate] - Joining seats and professors onto courses
//  5. [pipeline] - Orchestration (plan → fetch → aggregate)
//  6. [render], [server] - Terminal, export and web presentation
//
// Supporting packages: [cache], [config], [errors], [httputil],
// [observability] and [buildinfo].
//
// # Architecture
//
// The data flow of one search:
//
//	Filters (department, course ids, gen-ed, professor, semester)
//	         ↓
//	    [query] package (classify input, build plan)
//	         ↓
//	    [integrations/umdio] package (courses, sections, professors)
//	         ↓
//	    [aggregate] package (open seats + professor names per course)
//	         ↓
//	    Table / Markdown / CSV / HTML / JSON / web page
//
// # Quick Start
//
//	client := umdio.NewClient(cache.NewMemoryCache(nil), umdio.Options{})
//	runner := pipeline.NewRunner(client, pipeline.Options{}, nil)
//
//	result, err := runner.Search(ctx, query.Filters{
//	    DeptOrCourse:   "CMSC",
//	    Semester:       "202508",
//	    SemesterFilter: true,
//	})
//	if err != nil {
//	    return err
//	}
//	render.Write(os.Stdout, result.Rows, render.FormatTable)
package pkg
