package dashboard

import (
	"log/slog"

	"github.com/KaramelBytes/catalogdash/internal/catalog"
	"github.com/KaramelBytes/catalogdash/internal/filter"
	"github.com/KaramelBytes/catalogdash/internal/metrics"
	"github.com/KaramelBytes/catalogdash/internal/selection"
)

// Result is everything a front end needs to render one interaction.
type Result struct {
	Params   filter.Params   `json:"params" yaml:"params"`
	View     filter.View     `json:"-" yaml:"-"`
	Metrics  metrics.Metrics `json:"metrics" yaml:"metrics"`
	Selected *catalog.Title  `json:"selected,omitempty" yaml:"selected,omitempty"`
	Position int             `json:"-" yaml:"-"` // row of Selected in View, -1 when nothing is selected
	Warnings []string        `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Session evaluates filter changes against one dataset and owns the selection.
// It is not safe for concurrent use; every interaction runs to completion in turn.
type Session struct {
	ds     *catalog.Dataset
	opt    metrics.Options
	logger *slog.Logger

	sel  selection.State
	last Result
}

// NewSession creates a session. A nil dataset is treated as empty and a nil
// logger falls back to slog.Default().
func NewSession(ds *catalog.Dataset, opt metrics.Options, logger *slog.Logger) *Session {
	if ds == nil {
		ds = catalog.Empty("")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{ds: ds, opt: opt, logger: logger}
}

// Dataset returns the session's dataset.
func (s *Session) Dataset() *catalog.Dataset { return s.ds }

// DefaultParams returns the unfiltered selection for the session's dataset.
func (s *Session) DefaultParams() filter.Params { return filter.DefaultParams(s.ds) }

// Last returns the most recent successful evaluation.
func (s *Session) Last() Result { return s.last }

// Evaluate validates p, filters, summarises and reconciles the selection.
// Invalid params leave the previous result and selection untouched.
func (s *Session) Evaluate(p filter.Params) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	view := filter.Apply(s.ds, p)
	m := metrics.Summarize(view, p, s.opt)
	if prev, had := s.sel.Current(); had {
		if _, ok := s.sel.Reconcile(view); !ok {
			s.logger.Debug("selection cleared", "id", prev)
		}
	}

	r := Result{Params: p.Clone(), View: view, Metrics: m, Position: -1}
	for _, w := range view.Warnings {
		r.Warnings = append(r.Warnings, w.Message)
	}
	for _, w := range filter.Suggest(s.ds, p) {
		r.Warnings = append(r.Warnings, w.Message)
	}
	r.Warnings = append(r.Warnings, m.Notes...)
	for _, w := range r.Warnings {
		s.logger.Warn("dashboard", "warning", w)
	}
	r.Selected, r.Position, _ = s.sel.Resolve(view)

	s.logger.Debug("evaluated", "rows", view.Len(), "type", p.Kind, "years", view.Years, "search", p.Search)
	s.last = r
	return r, nil
}

// Select marks row index of the last evaluated view.
func (s *Session) Select(index int) (*catalog.Title, error) {
	if _, err := s.sel.Select(s.last.View, index); err != nil {
		return nil, err
	}
	s.last.Selected, s.last.Position, _ = s.sel.Resolve(s.last.View)
	return s.last.Selected, nil
}

// ClearSelection drops the selection.
func (s *Session) ClearSelection() {
	s.sel.Clear()
	s.last.Selected, s.last.Position = nil, -1
}
