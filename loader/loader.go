// Package loader defines the narrow, format-agnostic contract query.Compile
// consumes to resolve a system expression's component names into compiled
// ta.Components (spec §6). JSON/XML ingestion, a gRPC façade, and a model
// cache are all external collaborators that implement this interface; this
// package never depends on any concrete ingestion format, mirroring the
// teacher's adapter-only pattern for format boundaries (see DESIGN.md).
package loader

import "github.com/tacheck/tacheck/ta"

// ComponentLoader resolves component names to parsed (not yet compiled)
// components, and exposes the two pieces of loader-owned configuration spec
// §6 names: the global clock ordering used for <state> expressions in a
// reachability query, and default settings for query compilation.
type ComponentLoader interface {
	// GetComponent returns the parsed component named by name.
	GetComponent(name string) (ta.ParsedComponent, error)

	// ProjectClocks returns the ordered list of clock names this loader's
	// project declares, used to resolve a reachability <state> expression's
	// "<ident>.<clock>" references against a global ordering.
	ProjectClocks() []string

	// DefaultSettings returns the Settings a query should compile with when
	// the caller supplies none of its own.
	DefaultSettings() Settings
}

// Settings holds query-compilation options spec §6 names as part of the
// loader contract ("default_settings() -> { disable_clock_reduction: bool }").
type Settings struct {
	// DisableClockReduction turns off the two conservative clock-reduction
	// passes (spec §4.6 step 3) that query.Compile otherwise runs by default.
	DisableClockReduction bool
}

// Option configures Settings via functional arguments, mirroring the
// teacher's XxxOption shape used throughout the pack (matrix.Option,
// bfs.Option, builder.BuilderOption).
type Option func(*Settings)

// DefaultSettings returns the zero-value Settings: clock reduction enabled.
func DefaultSettings() Settings { return Settings{} }

// WithClockReductionDisabled turns off query.Compile's clock-reduction
// passes, per spec §9's note that reduction is "optional and
// performance-oriented".
func WithClockReductionDisabled() Option {
	return func(s *Settings) { s.DisableClockReduction = true }
}

// Apply folds opts onto DefaultSettings.
func Apply(opts ...Option) Settings {
	s := DefaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	return s
}

// MapLoader is the simplest possible ComponentLoader: an in-memory map of
// already-parsed components, the shape fixtures.Loader and cmd/tacheckctl
// both use. It carries its own Settings rather than deferring to a format
// loader's DefaultSettings, since there is no format here to defer to.
type MapLoader struct {
	Components map[string]ta.ParsedComponent
	Clocks     []string
	Settings   Settings
}

// NewMapLoader builds a MapLoader over components, keyed by their own Name
// field.
func NewMapLoader(components ...ta.ParsedComponent) *MapLoader {
	m := &MapLoader{Components: make(map[string]ta.ParsedComponent, len(components))}
	for _, c := range components {
		m.Components[c.Name] = c
		m.Clocks = append(m.Clocks, c.Clocks...)
	}

	return m
}

// GetComponent implements ComponentLoader.
func (m *MapLoader) GetComponent(name string) (ta.ParsedComponent, error) {
	c, ok := m.Components[name]
	if !ok {
		return ta.ParsedComponent{}, &UnknownComponentError{Name: name}
	}

	return c, nil
}

// ProjectClocks implements ComponentLoader.
func (m *MapLoader) ProjectClocks() []string { return m.Clocks }

// DefaultSettings implements ComponentLoader.
func (m *MapLoader) DefaultSettings() Settings { return m.Settings }

// UnknownComponentError is returned when a query references a component
// name the loader has never heard of (spec §7's recipe failure: "a
// referenced component does not exist").
type UnknownComponentError struct {
	Name string
}

func (e *UnknownComponentError) Error() string {
	return "loader: unknown component " + e.Name
}
