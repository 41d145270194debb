// Package catalog defines the course-catalog data model shared by the
// client, the aggregator and the presenters.
//
// Nothing here is persisted. Courses, sections and professors are decoded
// from the catalog API for one search, joined into [Row] values, rendered,
// and discarded when the next search runs.
//
// # Semesters
//
// A [Semester] is a YYYYMM code whose month encodes the term:
//
//	01 Spring   05 Summer   08 Fall   12 Winter
//
// Codes sort numerically in chronological order, so [SortSemesters] puts
// the newest term first.
//
// # Gen-eds
//
// The API nests general-education tags in lists of arbitrary depth
// ("FSAR or (DSHS and DSHU)" becomes ["FSAR", ["DSHS", ["DSHU"]]]).
// [FlattenGenEds] reduces that to a flat ordered list.
package catalog
