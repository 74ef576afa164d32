// Package analyzer compiles batches of methods in parallel.
package analyzer

import (
	"context"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/sigkit/signature"
)

var log = commonlog.GetLogger("sigkit.analyzer")

// Result pairs a method with its compiled signature or the reason it has
// none. Exactly one of Signature and Err is set.
type Result struct {
	Method    signature.RawMethodFacts
	Signature *signature.MethodSignature
	Err       error
}

// Filter selects the methods a run compiles.
type Filter func(m *signature.RawMethodFacts) bool

// PublicAPI keeps public methods a caller could bind to: no synthetic or
// bridge methods and no class initializers.
func PublicAPI(m *signature.RawMethodFacts) bool {
	return m.IsPublic() && !m.IsSynthetic() && !m.IsOverridden() && !m.IsStaticInitializer()
}

// Metrics are the counters a run reports to.
type Metrics struct {
	compiled   *prometheus.CounterVec
	parameters prometheus.Histogram
}

// NewMetrics registers the analyzer metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		compiled: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sigkit_methods_compiled_total",
			Help: "Methods compiled, by result",
		}, []string{"result"}),
		parameters: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "sigkit_method_parameters",
			Help:    "Parameter count of successfully compiled methods",
			Buckets: []float64{0, 1, 2, 3, 4, 6, 8, 12, 16},
		}),
	}
}

func (m *Metrics) observe(r *Result) {
	if m == nil {
		return
	}
	if r.Err != nil {
		m.compiled.WithLabelValues("error").Inc()
		return
	}
	m.compiled.WithLabelValues("ok").Inc()
	m.parameters.Observe(float64(len(r.Signature.Parameters)))
}

type Analyzer struct {
	compiler *signature.Compiler
	workers  int
	filter   Filter
	metrics  *Metrics
}

type Option func(*Analyzer)

// WithWorkers bounds the number of methods compiled at once. Values below
// one fall back to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(a *Analyzer) { a.workers = n }
}

func WithFilter(f Filter) Option {
	return func(a *Analyzer) { a.filter = f }
}

func WithMetrics(m *Metrics) Option {
	return func(a *Analyzer) { a.metrics = m }
}

func New(c *signature.Compiler, opts ...Option) *Analyzer {
	a := &Analyzer{compiler: c}
	for _, opt := range opts {
		opt(a)
	}
	if a.workers < 1 {
		a.workers = runtime.GOMAXPROCS(0)
	}
	return a
}

// Run compiles every selected method. Results follow the input order. A
// method that fails to compile only affects its own Result; the returned
// error is non-nil only when ctx ends the run early, in which case the
// results gathered so far are returned with it.
func (a *Analyzer) Run(ctx context.Context, methods []signature.RawMethodFacts) ([]Result, error) {
	var selected []signature.RawMethodFacts
	for i := range methods {
		if a.filter == nil || a.filter(&methods[i]) {
			selected = append(selected, methods[i])
		}
	}

	results := make([]Result, len(selected))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)

	for i := range selected {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r := &results[i]
			r.Method = selected[i]
			r.Signature, r.Err = a.compiler.Compile(&r.Method)
			if r.Err != nil {
				log.Errorf("%s", r.Err)
			}
			a.metrics.observe(r)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return completed(results), err
	}
	if err := ctx.Err(); err != nil {
		return completed(results), err
	}
	return results, nil
}

// completed drops results a cancelled run never filled in.
func completed(results []Result) []Result {
	out := results[:0:0]
	for _, r := range results {
		if r.Signature != nil || r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
