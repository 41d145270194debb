package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/matzehuels/coursefinder/pkg/catalog"
	"github.com/matzehuels/coursefinder/pkg/errors"
	"github.com/matzehuels/coursefinder/pkg/pipeline"
	"github.com/matzehuels/coursefinder/pkg/query"
)

// =============================================================================
// HTML Dashboard
// =============================================================================

type pageData struct {
	Filters         query.Filters
	Semesters       []semesterOption
	SemesterWarning string
	Columns         []string
	Result          *pipeline.Result
	InputError      string
	Debug           []debugEntry
}

type semesterOption struct {
	Code     string
	Label    string
	Selected bool
}

type debugEntry struct {
	CourseID string
	JSON     string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	submitted := q.Get("search") != ""

	f := s.filters(q, submitted)
	sems := s.Runner.Semesters(ctx)
	if f.Semester == "" {
		f.Semester = sems.Default()
	}

	data := pageData{
		Filters:         f,
		SemesterWarning: sems.Warning,
		Columns:         catalog.Columns,
	}
	for _, c := range sems.Codes {
		data.Semesters = append(data.Semesters, semesterOption{
			Code:     string(c),
			Label:    c.Label(),
			Selected: c == f.Semester,
		})
	}

	status := http.StatusOK
	if submitted {
		res, err := s.Runner.Search(ctx, f)
		switch {
		case err == nil:
			data.Result = res
			if f.Debug {
				data.Debug = debugEntries(res.Rows)
			}
		case ctx.Err() != nil:
			return
		default:
			status = statusFor(err)
			data.InputError = errors.UserMessage(err)
		}
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		s.Logger.Error("render page", "err", err, "request_id", RequestID(ctx))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func debugEntries(rows []catalog.Row) []debugEntry {
	var out []debugEntry
	for _, r := range rows {
		if len(r.Raw) == 0 {
			continue
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, r.Raw, "", "  "); err != nil {
			buf.Reset()
			buf.Write(r.Raw)
		}
		out = append(out, debugEntry{CourseID: r.CourseID, JSON: buf.String()})
	}
	return out
}

// =============================================================================
// JSON API
// =============================================================================

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res, err := s.Runner.Search(ctx, s.filters(r.URL.Query(), false))
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type semesterJSON struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

func (s *Server) handleSemesters(w http.ResponseWriter, r *http.Request) {
	list := s.Runner.Semesters(r.Context())
	out := struct {
		Semesters []semesterJSON `json:"semesters"`
		Warning   string         `json:"warning,omitempty"`
	}{
		Semesters: make([]semesterJSON, 0, len(list.Codes)),
		Warning:   list.Warning,
	}
	for _, c := range list.Codes {
		out.Semesters = append(out.Semesters, semesterJSON{Code: string(c), Label: c.Label()})
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}

func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidSemester:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// =============================================================================
// Parameters
// =============================================================================

// filters reads search filters from query parameters. For a submitted HTML
// form an absent checkbox means false; otherwise absent flags take the
// server defaults.
func (s *Server) filters(q url.Values, form bool) query.Filters {
	flag := func(name string, def bool) bool {
		v, ok := q[name]
		if !ok || len(v) == 0 {
			return def && !form
		}
		return parseBool(v[0])
	}
	return query.Filters{
		DeptOrCourse:   q.Get("dept"),
		GenEd:          q.Get("gened"),
		Professor:      q.Get("professor"),
		Semester:       catalog.Semester(strings.TrimSpace(q.Get("semester"))),
		SemesterFilter: flag("semester_filter", s.Defaults.SemesterFilter),
		OpenOnly:       flag("open_only", s.Defaults.OpenOnly),
		Debug:          flag("debug", s.Defaults.Debug),
		DeptFallback:   parseBoolDefault(q.Get("dept_fallback"), s.Defaults.DeptFallback),
	}
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}

func parseBoolDefault(v string, def bool) bool {
	if v == "" {
		return def
	}
	return parseBool(v)
}
