// internal/container/options.go
package container

import (
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/FairForge/adtkit/internal/memory"
	"github.com/FairForge/adtkit/internal/metrics"
)

const (
	// MaxCapacity is the largest logical capacity any container accepts.
	MaxCapacity = math.MaxUint16
	// MaxPayload is the largest element size in bytes.
	MaxPayload = math.MaxUint16
)

// Options configures the collaborators shared by every container
type Options struct {
	Allocator memory.Allocator
	Logger    *zap.Logger
	Metrics   *metrics.Collector
}

// DefaultOptions returns heap allocation, no logging and no metrics
func DefaultOptions() *Options {
	return &Options{
		Allocator: memory.Heap,
		Logger:    zap.NewNop(),
	}
}

// ApplyDefaults fills in default values
func (o *Options) ApplyDefaults() {
	if o.Allocator == nil {
		o.Allocator = memory.Heap
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

// Resolve returns a defaulted copy of opts, which may be nil.
func Resolve(opts *Options) Options {
	if opts == nil {
		return *DefaultOptions()
	}
	o := *opts
	o.ApplyDefaults()
	return o
}

// Observer funnels the outcome of every operation of one container
// instance through logging, metrics and error wrapping.
type Observer struct {
	Kind    string
	ID      uuid.UUID
	logger  *zap.Logger
	metrics *metrics.Collector
}

// NewObserver builds the observer for a new container instance
func NewObserver(kind string, o Options) Observer {
	id := uuid.New()
	return Observer{
		Kind:    kind,
		ID:      id,
		logger:  o.Logger.With(zap.String("container", kind), zap.Stringer("id", id)),
		metrics: o.Metrics,
	}
}

// Done records op and returns err wrapped in an *OpError.
func (ob Observer) Done(op string, err error) error {
	ob.metrics.RecordOp(ob.Kind, op, CodeOf(err).String())
	if err == nil {
		return nil
	}
	if ob.logger != nil {
		ob.logger.Debug("operation rejected", zap.String("op", op), zap.Error(err))
	}
	return WrapError(ob.Kind, op, err)
}

// Recentered records a headroom redistribution pass
func (ob Observer) Recentered(head, tail, physical int) {
	ob.metrics.RecordRecenter(ob.Kind)
	if ob.logger != nil {
		ob.logger.Debug("recentered",
			zap.Int("head", head),
			zap.Int("tail", tail),
			zap.Int("physical", physical))
	}
}

// Logger returns the instance logger
func (ob Observer) Logger() *zap.Logger {
	if ob.logger == nil {
		return zap.NewNop()
	}
	return ob.logger
}
