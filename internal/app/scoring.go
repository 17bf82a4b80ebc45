package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"hoteai/internal/adapters/observability"
	"hoteai/internal/domain"
)

type SweepResult struct {
	Scored int
	Failed int
}

// ScoringService runs the reply-quality pipeline: pull unscored candidates,
// judge each against the rubric, persist insights. Candidates are processed
// sequentially, one oracle call in flight at a time.
type ScoringService struct {
	repo    domain.ReviewRepository
	oracle  domain.Oracle
	streams observability.Streams
}

func NewScoringService(r domain.ReviewRepository, o domain.Oracle, streams observability.Streams) *ScoringService {
	return &ScoringService{repo: r, oracle: o, streams: streams}
}

// RunOnce executes one sweep. Per-item failures (oracle, parse, insight
// write) are contained and tallied; the review stays unscored and the next
// sweep retries it. Only a failure to fetch the candidate list propagates.
func (s *ScoringService) RunOnce(ctx context.Context) (SweepResult, error) {
	start := time.Now()

	candidates, err := s.repo.ListUnscored(ctx)
	if err != nil {
		return SweepResult{}, fmt.Errorf("list unscored: %w", err)
	}

	var res SweepResult
	for _, c := range candidates {
		if _, err := s.scoreOne(ctx, c); err != nil {
			res.Failed++
			continue
		}
		res.Scored++
	}

	observability.ObserveSweep(res.Scored, res.Failed, time.Since(start))
	s.streams.System.Info().
		Int("candidates", len(candidates)).
		Int("scored", res.Scored).
		Int("failed", res.Failed).
		Dur("duration", time.Since(start)).
		Msg("scoring sweep finished")
	return res, nil
}

// ScoreReview scores a single review on demand and returns the stored
// insight. Unlike the sweep, its failures surface to the caller.
func (s *ScoringService) ScoreReview(ctx context.Context, reviewID int64) (domain.Insight, error) {
	c, err := s.repo.GetCandidate(ctx, reviewID)
	if err != nil {
		return domain.Insight{}, err
	}
	return s.scoreOne(ctx, c)
}

func (s *ScoringService) scoreOne(ctx context.Context, c domain.ScoringCandidate) (domain.Insight, error) {
	rubric, err := s.oracle.Judge(ctx, c)
	if err != nil {
		s.logScoringFailure(c.ReviewID, err)
		return domain.Insight{}, err
	}

	ins := domain.Insight{ReviewID: c.ReviewID, Rubric: rubric, Score: rubric.Score()}
	if err := s.repo.UpsertInsight(ctx, ins); err != nil {
		log.Error().Int64("review_id", c.ReviewID).Err(err).Msg("insight upsert failed")
		return domain.Insight{}, err
	}

	log.Info().Int64("review_id", c.ReviewID).Float64("score", ins.Score).Msg("review scored")
	return ins, nil
}

// logScoringFailure routes the failure to the right stream: parse failures
// carry the raw oracle text for diagnosis, transport failures do not.
func (s *ScoringService) logScoringFailure(reviewID int64, err error) {
	var pf domain.ParseFailure
	if errors.As(err, &pf) {
		s.streams.Analysis.Error().
			Int64("review_id", reviewID).
			Str("raw", truncate(pf.RawOutput(), 4096)).
			Err(err).
			Msg("rubric parse failed")
		return
	}
	s.streams.Analysis.Error().Int64("review_id", reviewID).Err(err).Msg("oracle call failed")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
