package runner

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cleared-dev/txaudit/internal/audit"
	"github.com/cleared-dev/txaudit/internal/logger"
	"github.com/cleared-dev/txaudit/internal/model"
	"github.com/cleared-dev/txaudit/internal/report"
)

// Analysis is a Visitor that prints a section header before its pass and a
// summary after it.
type Analysis interface {
	model.Visitor
	Header() string
	WriteSummary() error
}

// Env carries what a Factory needs to build an Analysis.
type Env struct {
	Out    io.Writer
	Policy audit.Policy
}

// Factory builds a fresh Analysis for one pass.
type Factory func(env Env) Analysis

// Registry holds named analysis factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under name. Panics on duplicate name.
func (r *Registry) Register(name string, f Factory) {
	key := strings.ToLower(name)
	if _, ok := r.factories[key]; ok {
		panic("duplicate analysis: " + key)
	}
	r.factories[key] = f
}

// Get returns the factory for name, or nil.
func (r *Registry) Get(name string) Factory {
	return r.factories[strings.ToLower(name)]
}

// Names returns registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Build instantiates the named analyses in order. Names must be known,
// non-empty and unique.
func (r *Registry) Build(names []string, env Env) ([]Analysis, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no visitors selected (available: %s)", strings.Join(r.Names(), ", "))
	}

	out := make([]Analysis, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		key := strings.ToLower(strings.TrimSpace(n))
		if seen[key] {
			return nil, fmt.Errorf("visitor %q selected more than once", n)
		}
		seen[key] = true

		f := r.Get(key)
		if f == nil {
			return nil, fmt.Errorf("unknown visitor %q (available: %s)", n, strings.Join(r.Names(), ", "))
		}
		out = append(out, f(env))
	}
	return out, nil
}

// DefaultRegistry returns a registry with the built-in analyses.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("report", func(env Env) Analysis { return report.New(env.Out) })
	r.Register("suspicious", func(env Env) Analysis { return audit.New(env.Out, env.Policy) })
	return r
}

// Run announces the transaction count, then gives each analysis one full pass
// over txns followed by its summary. Passes run one after another.
func Run(ctx context.Context, w io.Writer, txns []model.Transaction, analyses ...Analysis) error {
	log := logger.FromContext(ctx)

	if _, err := fmt.Fprintf(w, "Processing %d transactions...\n\n", len(txns)); err != nil {
		return fmt.Errorf("writing banner: %w", err)
	}

	for i, a := range analyses {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return fmt.Errorf("writing separator: %w", err)
			}
		}
		if _, err := fmt.Fprintln(w, a.Header()); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}

		log.Debug().Str("pass", a.Header()).Int("transactions", len(txns)).Msg("starting pass")
		model.Walk(txns, a)

		if err := a.WriteSummary(); err != nil {
			return fmt.Errorf("pass %d: %w", i+1, err)
		}
	}
	return nil
}
