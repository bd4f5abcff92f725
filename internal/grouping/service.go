package grouping

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/pairgroups/internal/homgroups"
)

const tracerName = "github.com/linnemanlabs/pairgroups/internal/grouping"

const (
	DefaultMaxItems         = 64
	DefaultMaxBatchSize     = 32
	DefaultBatchConcurrency = 4
)

var (
	ErrTooManyItems  = errors.New("too many items")
	ErrBatchTooLarge = errors.New("batch too large")
)

// Limits bounds the work a single call may request. Maximal clique
// enumeration is exponential in the worst case, so item counts are capped
// before the core runs.
type Limits struct {
	MaxItems         int
	MaxBatchSize     int
	BatchConcurrency int
}

// withDefaults fills zero or negative fields with the package defaults.
func (l Limits) withDefaults() Limits {
	if l.MaxItems <= 0 {
		l.MaxItems = DefaultMaxItems
	}
	if l.MaxBatchSize <= 0 {
		l.MaxBatchSize = DefaultMaxBatchSize
	}
	if l.BatchConcurrency <= 0 {
		l.BatchConcurrency = DefaultBatchConcurrency
	}
	return l
}

// Hooks receives computation events, wired to Prometheus by Metrics.Hooks.
type Hooks struct {
	OnCompute func(e *ComputeEvent)
	OnBatch   func(size int)
}

// ComputeEvent describes a finished computation.
type ComputeEvent struct {
	Outcome        Outcome
	Items          int
	Groups         int
	MaximalCliques int
	Duration       float64
}

// Service is the business boundary for grouping operations.
type Service struct {
	logger log.Logger
	hooks  Hooks
	limits Limits
}

// NewService creates a grouping service. A nil logger is replaced by a no-op
// logger and zero limits by the defaults.
func NewService(logger log.Logger, hooks Hooks, limits Limits) *Service {
	if logger == nil {
		logger = log.Nop()
	}
	return &Service{
		logger: logger,
		hooks:  hooks,
		limits: limits.withDefaults(),
	}
}

// Limits returns the effective limits.
func (s *Service) Limits() Limits { return s.limits }

// Compute validates req against the limits, finds and labels its homogeneous
// groups, and returns the result under a fresh ID.
func (s *Service) Compute(ctx context.Context, req *Request) (*Result, error) {
	start := time.Now()

	var items int
	if req != nil {
		items = len(req.Items)
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "grouping.compute", trace.WithAttributes(
		attribute.Int("pairgroups.items", items),
	))
	defer span.End()

	res, err := s.compute(ctx, req)
	dur := time.Since(start).Seconds()

	ev := &ComputeEvent{Outcome: OutcomeOf(err), Items: items, Duration: dur}
	if err != nil {
		s.emit(ev)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Warn(ctx, "grouping rejected",
			"items", items,
			"outcome", ev.Outcome,
			"error", err,
		)
		return nil, err
	}

	res.DurationSeconds = dur
	ev.Groups = len(res.Groups)
	ev.MaximalCliques = res.MaximalCliques
	s.emit(ev)

	span.SetAttributes(
		attribute.String("pairgroups.result.id", res.ID),
		attribute.Int("pairgroups.groups", len(res.Groups)),
		attribute.Int("pairgroups.maximal_cliques", res.MaximalCliques),
	)

	s.logger.Info(ctx, "grouping computed",
		"result_id", res.ID,
		"items", items,
		"groups", len(res.Groups),
		"maximal_cliques", res.MaximalCliques,
		"duration", dur,
	)
	return res, nil
}

func (s *Service) compute(ctx context.Context, req *Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, &homgroups.InvalidInputError{Reason: "request is nil"}
	}
	if len(req.Items) > s.limits.MaxItems {
		return nil, fmt.Errorf("%w: %w", ErrTooManyItems, &homgroups.InvalidInputError{
			Reason: fmt.Sprintf("%d items exceeds the limit of %d", len(req.Items), s.limits.MaxItems),
		})
	}

	rel, err := req.relation()
	if err != nil {
		return nil, err
	}

	cover, err := homgroups.FindHomogeneousGroups(req.Items, rel)
	if err != nil {
		return nil, err
	}
	labeling := homgroups.LabelCover(cover)

	groups := make([][]string, len(cover.Groups))
	for k, g := range cover.Groups {
		groups[k] = g.Members
	}

	return &Result{
		ID:             ulid.Make().String(),
		Items:          cover.Items,
		Groups:         groups,
		Labels:         labeling.Labels,
		MaximalCliques: cover.MaximalCliques,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

// ComputeBatch runs every request with at most Limits.BatchConcurrency in
// flight. Entries line up with reqs; one failing request does not affect the
// others. Requests not yet started when ctx ends carry ctx's error.
func (s *Service) ComputeBatch(ctx context.Context, reqs []*Request) ([]BatchEntry, error) {
	if len(reqs) == 0 {
		return nil, &homgroups.InvalidInputError{Reason: "batch is empty"}
	}
	if len(reqs) > s.limits.MaxBatchSize {
		return nil, fmt.Errorf("%w: %w", ErrBatchTooLarge, &homgroups.InvalidInputError{
			Reason: fmt.Sprintf("%d requests exceeds the limit of %d", len(reqs), s.limits.MaxBatchSize),
		})
	}
	if s.hooks.OnBatch != nil {
		s.hooks.OnBatch(len(reqs))
	}

	entries := make([]BatchEntry, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limits.BatchConcurrency)
	for i, req := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				entries[i].Err = err
				return nil
			}
			entries[i].Result, entries[i].Err = s.Compute(gctx, req)
			return nil
		})
	}
	// workers record failures per entry and never return an error
	_ = g.Wait()

	return entries, nil
}

func (s *Service) emit(ev *ComputeEvent) {
	if s.hooks.OnCompute != nil {
		s.hooks.OnCompute(ev)
	}
}

// OutcomeOf classifies err the way metrics and the HTTP API report it.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrTooManyItems):
		return OutcomeTooLarge
	case errors.Is(err, ErrBatchTooLarge):
		return OutcomeBatchTooLarge
	case errors.Is(err, homgroups.ErrInconsistentRelation):
		return OutcomeInconsistent
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeInvalid
	}
}
