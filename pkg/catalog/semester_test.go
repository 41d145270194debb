package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/coursefinder/pkg/errors"
)

func TestSemesterLabel(t *testing.T) {
	tests := []struct {
		code  Semester
		term  string
		label string
	}{
		{"202501", "Spring", "Spring 2025"},
		{"202505", "Summer", "Summer 2025"},
		{"202508", "Fall", "Fall 2025"},
		{"202412", "Winter", "Winter 2024"},
		{"202503", "Unknown 03", "Unknown 03 2025"},
		{"202500", "Unknown 00", "Unknown 00 2025"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.Term(); got != tt.term {
				t.Errorf("Term() = %q, want %q", got, tt.term)
			}
			if got := tt.code.Label(); got != tt.label {
				t.Errorf("Label() = %q, want %q", got, tt.label)
			}
		})
	}
}

func TestSortSemesters(t *testing.T) {
	tests := []struct {
		name string
		in   []Semester
		want []Semester
	}{
		{
			name: "already descending",
			in:   []Semester{"202508", "202501", "202412"},
			want: []Semester{"202508", "202501", "202412"},
		},
		{
			name: "ascending input",
			in:   []Semester{"202412", "202501", "202508"},
			want: []Semester{"202508", "202501", "202412"},
		},
		{
			name: "mixed",
			in:   []Semester{"202501", "202512", "202408", "202505"},
			want: []Semester{"202512", "202505", "202501", "202408"},
		},
		{
			name: "non-numeric last",
			in:   []Semester{"bogus", "202501"},
			want: []Semester{"202501", "bogus"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := append([]Semester(nil), tt.in...)
			SortSemesters(got)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SortSemesters() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseSemester(t *testing.T) {
	s, err := ParseSemester("202508")
	if err != nil {
		t.Fatalf("ParseSemester error: %v", err)
	}
	if s.Year() != "2025" || s.Month() != "08" {
		t.Errorf("Year/Month = %s/%s", s.Year(), s.Month())
	}

	for _, bad := range []string{"", "2025", "2025-8", "abcdef"} {
		if _, err := ParseSemester(bad); !errors.Is(err, errors.ErrCodeInvalidSemester) {
			t.Errorf("ParseSemester(%q) error = %v, want INVALID_SEMESTER", bad, err)
		}
	}
}
