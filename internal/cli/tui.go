package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/coursefinder/pkg/catalog"
	"github.com/matzehuels/coursefinder/pkg/pipeline"
	"github.com/matzehuels/coursefinder/pkg/query"
	"github.com/matzehuels/coursefinder/pkg/render"
)

// Form styles
var (
	formLabelStyle   = lipgloss.NewStyle().Foreground(colorGray).Width(22)
	formFocusStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	formNormalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	formDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	formSectionStyle = lipgloss.NewStyle().MarginTop(1)
)

// tuiCommand creates the interactive search command.
func (c *CLI) tuiCommand() *cobra.Command {
	var (
		workers int
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Interactive search form",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.newSession(ctx, runnerOpts{noCache: noCache, workers: workers})
			if err != nil {
				return err
			}
			defer s.Close()

			// The form owns the terminal; keep log lines out of it.
			c.SetLogLevel(LogError)

			m := NewSearchModel(ctx, s.runner)
			m.SetDefaults(s.cfg.Search.SemesterFilter, s.cfg.Search.DeptFallback)
			_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "parallel course lookups (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable response caching")

	return cmd
}

// =============================================================================
// SearchModel - Interactive course search
// =============================================================================

// Searcher runs searches for the form. [pipeline.Runner] implements it.
type Searcher interface {
	Semesters(ctx context.Context) pipeline.SemesterList
	Search(ctx context.Context, f query.Filters) (*pipeline.Result, error)
}

var _ Searcher = (*pipeline.Runner)(nil)

// formState is the search lifecycle of the form.
type formState int

const (
	stateIdle formState = iota
	stateFetching
	stateRendered
)

// Focusable form fields, in tab order.
const (
	fieldDept = iota
	fieldGenEd
	fieldProfessor
	fieldSemester
	fieldOpenOnly
	fieldSemesterFilter
	fieldDeptFallback
	fieldDebug
	fieldCount
)

var toggleLabels = map[int]string{
	fieldOpenOnly:       "Open seats only",
	fieldSemesterFilter: "Filter by semester",
	fieldDeptFallback:   "Department fallback",
	fieldDebug:          "Debug mode",
}

type semestersMsg struct{ list pipeline.SemesterList }

type resultMsg struct {
	result *pipeline.Result
	err    error
}

// SearchModel is the bubbletea model for the interactive search form.
type SearchModel struct {
	ctx      context.Context
	searcher Searcher

	inputs    []textinput.Model
	focus     int
	semesters pipeline.SemesterList
	semIdx    int
	toggles   [fieldCount]bool

	state   formState
	spinner spinner.Model
	result  *pipeline.Result
	err     error
	debug   bool // debug toggle at the time of the last search
}

// NewSearchModel creates a form backed by s.
func NewSearchModel(ctx context.Context, s Searcher) SearchModel {
	placeholders := []string{"CMSC or CMSC131,CMSC132", "FSAR", "Professor name"}
	inputs := make([]textinput.Model, len(placeholders))
	for i, p := range placeholders {
		ti := textinput.New()
		ti.Placeholder = p
		ti.CharLimit = 200
		ti.Width = 40
		inputs[i] = ti
	}
	inputs[fieldDept].Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleIconSpinner

	m := SearchModel{
		ctx:      ctx,
		searcher: s,
		inputs:   inputs,
		spinner:  sp,
	}
	m.toggles[fieldSemesterFilter] = true
	return m
}

// SetDefaults sets the initial semester filter and department fallback toggles.
func (m *SearchModel) SetDefaults(semesterFilter, deptFallback bool) {
	m.toggles[fieldSemesterFilter] = semesterFilter
	m.toggles[fieldDeptFallback] = deptFallback
}

func (m SearchModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadSemesters())
}

func (m SearchModel) loadSemesters() tea.Cmd {
	ctx, s := m.ctx, m.searcher
	return func() tea.Msg {
		return semestersMsg{list: s.Semesters(ctx)}
	}
}

func (m SearchModel) runSearch(f query.Filters) tea.Cmd {
	ctx, s := m.ctx, m.searcher
	return func() tea.Msg {
		res, err := s.Search(ctx, f)
		return resultMsg{result: res, err: err}
	}
}

// Filters returns the search filters the form currently describes.
func (m SearchModel) Filters() query.Filters {
	return query.Filters{
		DeptOrCourse:   strings.TrimSpace(m.inputs[fieldDept].Value()),
		GenEd:          strings.TrimSpace(m.inputs[fieldGenEd].Value()),
		Professor:      strings.TrimSpace(m.inputs[fieldProfessor].Value()),
		Semester:       m.semester(),
		SemesterFilter: m.toggles[fieldSemesterFilter],
		OpenOnly:       m.toggles[fieldOpenOnly],
		Debug:          m.toggles[fieldDebug],
		DeptFallback:   m.toggles[fieldDeptFallback],
	}
}

func (m SearchModel) semester() catalog.Semester {
	if m.semIdx < len(m.semesters.Codes) {
		return m.semesters.Codes[m.semIdx]
	}
	return ""
}

func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case semestersMsg:
		m.semesters = msg.list
		m.semIdx = 0
		return m, nil

	case resultMsg:
		m.state = stateRendered
		m.result, m.err = msg.result, msg.err
		return m, nil

	case spinner.TickMsg:
		if m.state != stateFetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateInput(msg)
}

func (m SearchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "enter":
		// One search at a time; the trigger is ignored while fetching.
		if m.state == stateFetching {
			return m, nil
		}
		f := m.Filters()
		m.state = stateFetching
		m.debug = f.Debug
		m.result, m.err = nil, nil
		return m, tea.Batch(m.spinner.Tick, m.runSearch(f))

	case "tab", "down":
		return m.setFocus((m.focus + 1) % fieldCount)

	case "shift+tab", "up":
		return m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	}

	switch {
	case m.focus == fieldSemester:
		if n := len(m.semesters.Codes); n > 0 {
			switch msg.String() {
			case "right", "l":
				m.semIdx = (m.semIdx + 1) % n
			case "left", "h":
				m.semIdx = (m.semIdx + n - 1) % n
			}
		}
		return m, nil

	case m.focus > fieldSemester:
		if msg.String() == " " || msg.String() == "x" {
			m.toggles[m.focus] = !m.toggles[m.focus]
		}
		return m, nil
	}

	return m.updateInput(msg)
}

func (m SearchModel) setFocus(i int) (tea.Model, tea.Cmd) {
	m.focus = i
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == i {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return m, cmd
}

func (m SearchModel) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus >= len(m.inputs) {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m SearchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("UMD Course Finder"))
	b.WriteString("\n")
	b.WriteString(formDimStyle.Render("tab/↑↓ move  ←/→ semester  space toggle  ⏎ search  esc quit"))
	b.WriteString("\n\n")

	labels := []string{"Department / Course(s)", "GenEd", "Professor"}
	for i, ti := range m.inputs {
		b.WriteString(m.label(i, labels[i]))
		b.WriteString(ti.View())
		b.WriteString("\n")
	}

	b.WriteString(m.label(fieldSemester, "Semester"))
	b.WriteString(m.semesterView())
	b.WriteString("\n")

	for f := fieldOpenOnly; f < fieldCount; f++ {
		box := "[ ]"
		if m.toggles[f] {
			box = "[x]"
		}
		line := box + " " + toggleLabels[f]
		if m.focus == f {
			b.WriteString(formFocusStyle.Render("▸ " + line))
		} else {
			b.WriteString(formNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString(formSectionStyle.Render(m.resultView()))
	b.WriteString("\n")

	return b.String()
}

func (m SearchModel) label(field int, text string) string {
	if m.focus == field {
		return formFocusStyle.Inherit(formLabelStyle).Render("▸ " + text)
	}
	return formLabelStyle.Render("  " + text)
}

func (m SearchModel) semesterView() string {
	if len(m.semesters.Codes) == 0 {
		if m.semesters.Warning != "" {
			return StyleWarning.Render(m.semesters.Warning)
		}
		return formDimStyle.Render("loading...")
	}
	sem := m.semester()
	view := fmt.Sprintf("‹ %s ›", sem.Label())
	if m.focus == fieldSemester {
		view = formFocusStyle.Render(view)
	}
	return view + " " + formDimStyle.Render(string(sem))
}

func (m SearchModel) resultView() string {
	switch m.state {
	case stateFetching:
		return m.spinner.View() + " " + StyleDim.Render("Searching...")
	case stateIdle:
		return ""
	}

	var b strings.Builder
	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + StyleError.Render(m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}
	r := m.result
	if r.Error != "" {
		b.WriteString(styleIconError.Render(iconError) + " " + StyleError.Render(r.Error))
		b.WriteString("\n")
	}
	for _, w := range r.Warnings {
		b.WriteString(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(w))
		b.WriteString("\n")
	}
	if r.Empty() {
		return b.String()
	}

	b.WriteString(render.Table(r.Rows))
	b.WriteString("\n")
	b.WriteString(formDimStyle.Render(fmt.Sprintf("  %d courses (%s)", len(r.Rows), r.Stats.Duration.Round(time.Millisecond))))
	b.WriteString("\n")
	if m.debug {
		b.WriteString("\n")
		_ = render.Debug(&b, r.Rows)
	}
	return b.String()
}
