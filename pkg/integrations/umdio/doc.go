// Package umdio provides an HTTP client for the University of Maryland
// course catalog API.
//
// # Overview
//
// This package fetches semesters, courses, sections and professors from
// umd.io (https://api.umd.io/v1) and decodes them into [catalog] types.
//
// # Usage
//
//	client := umdio.NewClient(cache.NewMemoryCache(nil), umdio.Options{})
//
//	courses, err := client.ListCourses(ctx, umdio.ListQuery{
//	    Dept:     "CMSC",
//	    Semester: "202508",
//	    PerPage:  100,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, c := range courses {
//	    sections, _ := client.Sections(ctx, c.ID)
//	    fmt.Println(c.ID, catalog.TotalOpenSeats(sections))
//	}
//
// # Decoding
//
// Responses are decoded into explicit structs at the API boundary. The
// catalog is loose about shapes, so decoding tolerates:
//
//   - a single object where a list is expected (normalized to a list)
//   - credits given as a number or a string
//   - seats given as an object, as counts on the section, or not at all
//   - taught courses given as identifiers or as {course_id} objects
//
// Anything else that does not fit is a PARSE_ERROR. A course without a
// course_id is a PARSE_ERROR too.
//
// # Caching
//
// Every response is cached by its exact URL. The semester list uses
// [cache.TTLSemesters]; everything else uses [cache.TTLResponse]. Both are
// configurable through [Options].
package umdio
