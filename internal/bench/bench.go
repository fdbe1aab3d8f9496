// Package bench times the same workload across every container so their
// costs can be compared side by side.
package bench

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/FairForge/adtkit/internal/config"
	"github.com/FairForge/adtkit/internal/container"
	"github.com/FairForge/adtkit/internal/list"
	"github.com/FairForge/adtkit/internal/mhvector"
	"github.com/FairForge/adtkit/internal/queue"
	"github.com/FairForge/adtkit/internal/stack"
	"github.com/FairForge/adtkit/internal/vector"
)

// Result is the timing of one operation repeated Iterations times.
type Result struct {
	Container  string
	Op         string
	Iterations int
	Elapsed    time.Duration
}

// Average returns the mean time per operation
func (r Result) Average() time.Duration {
	if r.Iterations == 0 {
		return 0
	}
	return r.Elapsed / time.Duration(r.Iterations)
}

// cancelEvery is how many operations run between context checks.
const cancelEvery = 1024

type subject struct {
	insert   func([]byte) error
	extract  func() ([]byte, error)
	destroy  func() error
	resize   func(int) error
	capacity func() int
	isFull   func() bool
}

func sequence(s container.Sequence) subject {
	return subject{
		insert:   s.InsertFirst,
		extract:  s.ExtractFirst,
		destroy:  s.Destroy,
		resize:   s.Resize,
		capacity: s.Capacity,
		isFull:   s.IsFull,
	}
}

// grow doubles the capacity of a full subject.
func (s subject) grow() error {
	return s.resize(min(2*s.capacity(), container.MaxCapacity))
}

// Target is one container under measurement.
type Target struct {
	Name      string
	InsertOp  string
	ExtractOp string
	open      func(capacity int, opts *container.Options) (subject, error)
}

// Targets returns every container. Positional containers are measured on
// insert_first and extract_first, the adapters on their native operations.
func Targets() []Target {
	return []Target{
		{
			Name: "vector", InsertOp: container.OpInsertFirst, ExtractOp: container.OpExtractFirst,
			open: func(capacity int, opts *container.Options) (subject, error) {
				v, err := vector.New(capacity, opts)
				if err != nil {
					return subject{}, err
				}
				return sequence(v), nil
			},
		},
		{
			Name: "mhvector", InsertOp: container.OpInsertFirst, ExtractOp: container.OpExtractFirst,
			open: func(capacity int, opts *container.Options) (subject, error) {
				v, err := mhvector.New(capacity, opts)
				if err != nil {
					return subject{}, err
				}
				return sequence(v), nil
			},
		},
		{
			Name: "list", InsertOp: container.OpInsertFirst, ExtractOp: container.OpExtractFirst,
			open: func(capacity int, opts *container.Options) (subject, error) {
				l, err := list.New(capacity, opts)
				if err != nil {
					return subject{}, err
				}
				return sequence(l), nil
			},
		},
		{
			Name: "dllist", InsertOp: container.OpInsertFirst, ExtractOp: container.OpExtractFirst,
			open: func(capacity int, opts *container.Options) (subject, error) {
				d, err := list.NewDoubly(capacity, opts)
				if err != nil {
					return subject{}, err
				}
				return sequence(d), nil
			},
		},
		{
			Name: "stack", InsertOp: "push", ExtractOp: "pop",
			open: func(capacity int, opts *container.Options) (subject, error) {
				s, err := stack.New(capacity, opts)
				if err != nil {
					return subject{}, err
				}
				return subject{
					insert: s.Push, extract: s.Pop, destroy: s.Destroy,
					resize: s.Resize, capacity: s.Capacity, isFull: s.IsFull,
				}, nil
			},
		},
		{
			Name: "queue", InsertOp: "enqueue", ExtractOp: "dequeue",
			open: func(capacity int, opts *container.Options) (subject, error) {
				q, err := queue.New(&queue.QueueConfig{Name: "bench", Capacity: capacity}, opts)
				if err != nil {
					return subject{}, err
				}
				return subject{
					insert: q.Enqueue, extract: q.Dequeue, destroy: q.Destroy,
					resize: q.Resize, capacity: q.Capacity, isFull: q.IsFull,
				}, nil
			},
		},
	}
}

// Runner executes the workload described by a BenchConfig
type Runner struct {
	config   config.BenchConfig
	opts     *container.Options
	logger   *zap.Logger
	capacity int
}

// NewRunner creates a runner. opts is handed to every container.
func NewRunner(cfg config.BenchConfig, opts *container.Options, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{config: cfg, opts: opts, logger: logger}
}

// WithCapacity makes every container start at capacity and double whenever
// an insert finds it full. Zero sizes containers to the iteration count.
func (r *Runner) WithCapacity(capacity int) *Runner {
	r.capacity = capacity
	return r
}

// Payloads returns Iterations random payloads of PayloadSize bytes. The
// same seed always yields the same payloads.
func (r *Runner) Payloads() [][]byte {
	rng := rand.New(rand.NewSource(r.config.Seed))
	out := make([][]byte, r.config.Iterations)
	for i := range out {
		out[i] = make([]byte, r.config.PayloadSize)
		rng.Read(out[i])
	}
	return out
}

// Run measures every target in order and stops early when ctx is done.
func (r *Runner) Run(ctx context.Context, targets []Target) ([]Result, error) {
	payloads := r.Payloads()
	results := make([]Result, 0, 2*len(targets))

	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := r.runTarget(ctx, t, payloads)
		if err != nil {
			return results, fmt.Errorf("bench %s: %w", t.Name, err)
		}
		for _, rr := range res {
			r.logger.Info("measured",
				zap.String("container", rr.Container),
				zap.String("op", rr.Op),
				zap.Int("iterations", rr.Iterations),
				zap.Duration("elapsed", rr.Elapsed),
				zap.Duration("average", rr.Average()))
		}
		results = append(results, res...)
	}
	return results, nil
}

func (r *Runner) runTarget(ctx context.Context, t Target, payloads [][]byte) ([]Result, error) {
	capacity := r.capacity
	if capacity <= 0 {
		capacity = max(len(payloads), 1)
	}
	s, err := t.open(capacity, r.opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.destroy() }()

	grows := 0
	start := time.Now()
	for i, p := range payloads {
		if i%cancelEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if s.isFull() {
			if err := s.grow(); err != nil {
				return nil, err
			}
			grows++
		}
		if err := s.insert(p); err != nil {
			return nil, err
		}
	}
	inserted := time.Since(start)
	if grows > 0 {
		r.logger.Debug("grew container",
			zap.String("container", t.Name),
			zap.Int("from", capacity),
			zap.Int("to", s.capacity()),
			zap.Int("grows", grows))
	}

	// extracted buffers belong to the caller, so hand them back
	alloc := container.Resolve(r.opts).Allocator
	start = time.Now()
	for i := range payloads {
		if i%cancelEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		data, err := s.extract()
		if err != nil {
			return nil, err
		}
		alloc.Free(data)
	}
	extracted := time.Since(start)

	return []Result{
		{Container: t.Name, Op: t.InsertOp, Iterations: len(payloads), Elapsed: inserted},
		{Container: t.Name, Op: t.ExtractOp, Iterations: len(payloads), Elapsed: extracted},
	}, nil
}

// Report writes results as an aligned table
func Report(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "CONTAINER\tOP\tITERATIONS\tELAPSED\tAVERAGE")
	for _, r := range results {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			r.Container, r.Op, r.Iterations, r.Elapsed, r.Average())
	}
	return tw.Flush()
}
