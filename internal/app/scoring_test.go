package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"hoteai/internal/adapters/observability"
	"hoteai/internal/domain"
)

// memRepo is an in-memory ReviewRepository shared by the app-layer tests.
type memRepo struct {
	hotels     map[string]int64
	nextHotel  int64
	reviews    map[string]domain.ReviewRecord
	reviewIDs  map[string]int64
	nextReview int64
	insights   map[int64]domain.Insight

	listUnscoredErr error
	upsertReviewErr func(rec domain.ReviewRecord) error
}

func newMemRepo() *memRepo {
	return &memRepo{
		hotels:    map[string]int64{},
		reviews:   map[string]domain.ReviewRecord{},
		reviewIDs: map[string]int64{},
		insights:  map[int64]domain.Insight{},
	}
}

func (m *memRepo) FindOrCreateHotel(_ context.Context, name, _ string, _ int64) (int64, error) {
	if id, ok := m.hotels[name]; ok {
		return id, nil
	}
	m.nextHotel++
	m.hotels[name] = m.nextHotel
	return m.nextHotel, nil
}

func (m *memRepo) UpsertReview(_ context.Context, rec domain.ReviewRecord, hotelID int64) (int64, error) {
	if m.upsertReviewErr != nil {
		if err := m.upsertReviewErr(rec); err != nil {
			return 0, err
		}
	}
	key := fmt.Sprintf("%s|%d|%d", rec.ReviewerName, rec.CreatedAt.Unix(), hotelID)
	if id, ok := m.reviewIDs[key]; ok {
		m.reviews[key] = rec
		return id, nil
	}
	m.nextReview++
	m.reviewIDs[key] = m.nextReview
	m.reviews[key] = rec
	return m.nextReview, nil
}

func (m *memRepo) UpsertInsight(_ context.Context, ins domain.Insight) error {
	m.insights[ins.ReviewID] = ins
	return nil
}

func (m *memRepo) ListUnscored(_ context.Context) ([]domain.ScoringCandidate, error) {
	if m.listUnscoredErr != nil {
		return nil, m.listUnscoredErr
	}
	var out []domain.ScoringCandidate
	for key, rec := range m.reviews {
		id := m.reviewIDs[key]
		if rec.HotelReply == nil {
			continue
		}
		if _, scored := m.insights[id]; scored {
			continue
		}
		out = append(out, candidateOf(id, rec))
	}
	return out, nil
}

func (m *memRepo) GetCandidate(_ context.Context, reviewID int64) (domain.ScoringCandidate, error) {
	for key, rec := range m.reviews {
		if m.reviewIDs[key] == reviewID {
			return candidateOf(reviewID, rec), nil
		}
	}
	return domain.ScoringCandidate{}, domain.ErrNotFound
}

func (m *memRepo) ListReviews(_ context.Context, _ domain.ReviewsQuery) ([]domain.ReviewView, error) {
	return nil, nil
}

func (m *memRepo) QualityOverTime(_ context.Context, _ domain.ReviewsQuery) ([]domain.QualityPoint, error) {
	return nil, nil
}

func candidateOf(id int64, rec domain.ReviewRecord) domain.ScoringCandidate {
	reply := ""
	if rec.HotelReply != nil {
		reply = *rec.HotelReply
	}
	return domain.ScoringCandidate{
		ReviewID:     id,
		Headline:     rec.Headline,
		PositiveText: rec.PositiveText,
		NegativeText: rec.NegativeText,
		HotelReply:   reply,
		Lang:         rec.Lang,
	}
}

// fakeOracle delegates to a per-test judge function.
type fakeOracle struct {
	judge func(c domain.ScoringCandidate) (domain.Rubric, error)
}

func (f *fakeOracle) Judge(_ context.Context, c domain.ScoringCandidate) (domain.Rubric, error) {
	return f.judge(c)
}

// fakeParseErr satisfies domain.ParseFailure the way the gpt adapter does.
type fakeParseErr struct{ raw string }

func (e *fakeParseErr) Error() string     { return "rubric parse failed" }
func (e *fakeParseErr) RawOutput() string { return e.raw }

func nopStreams() observability.Streams {
	return observability.Streams{System: zerolog.Nop(), Analysis: zerolog.Nop()}
}

func allTrueRubric() domain.Rubric {
	return domain.Rubric{
		ProfessionalTone: true, LanguageAppropriate: true, AddressedPositive: true,
		AddressedNegative: true, NamedGuest: true, NamedHotelier: true,
		Kind: true, Concise: true, Grateful: true,
		InvitesReturn: true, CorrectSyntax: true, Personal: true,
	}
}

func seedCandidate(t *testing.T, repo *memRepo, reviewer, reply string) int64 {
	t.Helper()
	r := reply
	id, err := repo.UpsertReview(context.Background(), domain.ReviewRecord{
		ReviewerName: reviewer,
		Headline:     "Nice stay",
		PositiveText: "Great pool",
		HotelReply:   &r,
		Lang:         "en",
	}, 1)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return id
}

func TestRunOnce_ParseFailureIsIsolated(t *testing.T) {
	repo := newMemRepo()
	a := seedCandidate(t, repo, "Alice", "Thanks Alice!")
	b := seedCandidate(t, repo, "Bob", "Thanks Bob!")
	c := seedCandidate(t, repo, "Carol", "Thanks Carol!")

	oracle := &fakeOracle{judge: func(cand domain.ScoringCandidate) (domain.Rubric, error) {
		if cand.ReviewID == b {
			return domain.Rubric{}, &fakeParseErr{raw: "I'd give it an 85."}
		}
		return allTrueRubric(), nil
	}}

	svc := NewScoringService(repo, oracle, nopStreams())
	res, err := svc.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("sweep err: %v", err)
	}
	if res.Scored != 2 || res.Failed != 1 {
		t.Fatalf("result = %+v", res)
	}
	if _, ok := repo.insights[a]; !ok {
		t.Fatal("first candidate should be scored")
	}
	if _, ok := repo.insights[c]; !ok {
		t.Fatal("third candidate should be scored despite the middle failure")
	}
	if _, ok := repo.insights[b]; ok {
		t.Fatal("failed candidate must stay unscored for the next sweep")
	}

	// Next sweep only sees the leftover.
	left, err := repo.ListUnscored(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(left) != 1 || left[0].ReviewID != b {
		t.Fatalf("leftover = %+v", left)
	}
}

func TestRunOnce_ListErrorPropagates(t *testing.T) {
	repo := newMemRepo()
	repo.listUnscoredErr = errors.New("db gone")

	svc := NewScoringService(repo, &fakeOracle{}, nopStreams())
	if _, err := svc.RunOnce(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestRunOnce_EmptyBatch(t *testing.T) {
	svc := NewScoringService(newMemRepo(), &fakeOracle{}, nopStreams())
	res, err := svc.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if res.Scored != 0 || res.Failed != 0 {
		t.Fatalf("result = %+v", res)
	}
}

func TestScoreReview(t *testing.T) {
	repo := newMemRepo()
	id := seedCandidate(t, repo, "Dana", "Thank you Dana!")

	svc := NewScoringService(repo, &fakeOracle{judge: func(domain.ScoringCandidate) (domain.Rubric, error) {
		return allTrueRubric(), nil
	}}, nopStreams())

	ins, err := svc.ScoreReview(context.Background(), id)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if ins.ReviewID != id || ins.Score != 100 {
		t.Fatalf("insight = %+v", ins)
	}
}

func TestScoreReview_NotFound(t *testing.T) {
	svc := NewScoringService(newMemRepo(), &fakeOracle{}, nopStreams())
	if _, err := svc.ScoreReview(context.Background(), 42); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
