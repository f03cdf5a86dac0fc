package matching

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/talent-matcher/internal/observability"
	"github.com/jonathan/talent-matcher/internal/types"
)

// scoreFunc scores one opportunity. ok=false means the opportunity does not apply.
type scoreFunc func(opp types.Opportunity) (result types.MatchResult, ok bool)

// rankOpportunities scores opportunities on a bounded worker pool, drops
// anything at or below ScoreFloor, sorts by score descending (ties keep
// catalog order) and truncates to limit
func rankOpportunities(ctx context.Context, kind types.OpportunityKind, opps []types.Opportunity, workers, limit int, score scoreFunc) ([]types.MatchResult, error) {
	logger := observability.LoggerFromContext(ctx)

	if workers <= 0 {
		workers = defaultWorkers
	}

	scored := make([]*types.MatchResult, len(opps))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range opps {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			result, ok := score(opps[i])
			if !ok {
				return nil
			}
			result.Score = clamp01(result.Score)
			scored[i] = &result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s matching interrupted: %w", kind, err)
	}

	results := make([]types.MatchResult, 0, len(opps))
	for _, r := range scored {
		if r == nil {
			continue
		}
		if r.Score <= ScoreFloor {
			logger.Debug("opportunity below score floor", "id", r.OpportunityID, "score", r.Score)
			continue
		}
		results = append(results, *r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	observability.MatchesReturnedTotal.WithLabelValues(string(kind)).Add(float64(len(results)))
	for _, r := range results {
		observability.MatchScoreHistogram.WithLabelValues(string(kind)).Observe(r.Score)
	}
	logger.Info("opportunities ranked", "kind", kind, "considered", len(opps), "returned", len(results))
	return results, nil
}
