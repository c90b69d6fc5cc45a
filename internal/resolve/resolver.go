package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"scenelink/internal/logging"
	"scenelink/internal/tabular"
)

// MatchTable is the tabular store table a resolution pass writes its matched
// pairs to.
const MatchTable = "FuzzyMatchResults"

// DefaultThreshold is the minimum fuzzy score accepted as a match.
const DefaultThreshold = 80

// Outcome partitions a resolution pass into its matched and unmatched sets.
// Within each set, matches appear in candidate input order.
type Outcome struct {
	Matched   []Match
	Unmatched []Match
}

// Total returns the number of candidates resolved.
func (o Outcome) Total() int { return len(o.Matched) + len(o.Unmatched) }

// Resolver scores candidates against a broadcast reference set.
type Resolver struct {
	threshold int
	workers   int
	score     ScoreFunc
	logger    *slog.Logger
}

// Option configures optional Resolver behavior.
type Option func(*Resolver)

// WithThreshold overrides the default acceptance threshold.
func WithThreshold(threshold int) Option {
	return func(r *Resolver) { r.threshold = threshold }
}

// WithWorkers bounds the number of candidate partitions resolved in
// parallel. Values below one select one partition per CPU.
func WithWorkers(workers int) Option {
	return func(r *Resolver) { r.workers = workers }
}

// WithScorer replaces the token-sort scorer, e.g. with ExactScore.
func WithScorer(score ScoreFunc) Option {
	return func(r *Resolver) { r.score = score }
}

// NewResolver constructs a Resolver with the token-sort scorer and default
// threshold.
func NewResolver(logger *slog.Logger, opts ...Option) *Resolver {
	resolver := &Resolver{
		threshold: DefaultThreshold,
		score:     TokenSortRatio,
		logger:    logging.NewComponentLogger(logger, "resolver"),
	}
	for _, opt := range opts {
		opt(resolver)
	}
	return resolver
}

// Resolve scores every candidate against every reference and partitions the
// results. Candidates are split into contiguous partitions processed by
// independent goroutines; the canonicalized reference slice is shared
// read-only across all of them. Resolve returns only once every partition has
// finished, so callers always observe the complete outcome. An empty
// reference set yields an all-unmatched outcome; an empty candidate set
// yields an empty one. Neither is an error.
func (r *Resolver) Resolve(ctx context.Context, candidates []string, references []string) (Outcome, error) {
	results := make([]Match, len(candidates))
	if len(candidates) == 0 {
		return Outcome{}, nil
	}

	broadcast := CanonicalReferences(references)
	workers := r.workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > len(candidates) {
		workers = len(candidates)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	chunk := (len(candidates) + workers - 1) / workers
	for start := 0; start < len(candidates); start += chunk {
		start := start
		end := min(start+chunk, len(candidates))
		group.Go(func() error {
			for i := start; i < end; i++ {
				if err := groupCtx.Err(); err != nil {
					return err
				}
				results[i] = BestMatch(candidates[i], broadcast, r.threshold, r.score)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return Outcome{}, fmt.Errorf("resolve candidates: %w", err)
	}

	var outcome Outcome
	for _, match := range results {
		if match.Matched {
			outcome.Matched = append(outcome.Matched, match)
		} else {
			outcome.Unmatched = append(outcome.Unmatched, match)
		}
	}

	r.logger.Info("resolution pass complete",
		logging.Args(
			logging.Int("candidates", len(candidates)),
			logging.Int("references", len(broadcast)),
			logging.Int("matched", len(outcome.Matched)),
			logging.Int("unmatched", len(outcome.Unmatched)),
			logging.Int("threshold", r.threshold),
		)...)
	return outcome, nil
}

// WriteMatchTable persists the matched pairs to the tabular store, replacing
// any previous resolution result.
func WriteMatchTable(ctx context.Context, store *tabular.Store, outcome Outcome) error {
	rows := make([][]string, len(outcome.Matched))
	for i, match := range outcome.Matched {
		rows[i] = []string{match.CandidateID, match.MatchedID}
	}
	return store.WriteTable(ctx, MatchTable, []string{"candidateId", "matchedId"}, rows)
}
