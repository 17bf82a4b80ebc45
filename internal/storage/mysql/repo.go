package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hoteai/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// FindOrCreateHotel resolves a hotel id by trimmed, case-insensitive name,
// creating the row on first sight with the caller's location and chain.
func (r *Repo) FindOrCreateHotel(ctx context.Context, name, location string, chainID int64) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, domain.ValidationError{Field: "hotel name", Reason: "empty"}
	}
	if chainID <= 0 {
		return 0, domain.ValidationError{Field: "chain id", Reason: fmt.Sprintf("%d is not a valid chain", chainID)}
	}

	var id int64
	err := r.db.QueryRowContext(ctx, findHotelSQL, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, insertHotelSQL, name, location, chainID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpsertReview inserts the record or updates the row with the same
// (reviewer_name, created_at, hotel_id) and returns the surviving row id.
func (r *Repo) UpsertReview(ctx context.Context, rec domain.ReviewRecord, hotelID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, upsertReviewSQL,
		rec.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		rec.ReviewerName,
		rec.Country,
		valInt(rec.Rating),
		rec.Headline,
		rec.PositiveText,
		rec.NegativeText,
		valStr(rec.HotelReply),
		hotelID,
		rec.SourceID,
		rec.Lang,
		rec.IsGenius,
		valStr(rec.ReservationID),
		valStr(rec.ReplyModified),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) UpsertInsight(ctx context.Context, ins domain.Insight) error {
	rb := ins.Rubric
	_, err := r.db.ExecContext(ctx, upsertInsightSQL,
		ins.ReviewID,
		rb.ProfessionalTone, rb.LanguageAppropriate, rb.AddressedPositive,
		rb.AddressedNegative, rb.NamedGuest, rb.NamedHotelier,
		rb.Kind, rb.Concise, rb.Grateful,
		rb.InvitesReturn, rb.CorrectSyntax, rb.Personal,
		ins.Score,
	)
	return err
}

func (r *Repo) ListUnscored(ctx context.Context) ([]domain.ScoringCandidate, error) {
	rows, err := r.db.QueryContext(ctx, listUnscoredSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ScoringCandidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) GetCandidate(ctx context.Context, reviewID int64) (domain.ScoringCandidate, error) {
	row := r.db.QueryRowContext(ctx, getCandidateSQL, reviewID)
	c, err := scanCandidate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ScoringCandidate{}, domain.ErrNotFound
	}
	return c, err
}

type scanner interface{ Scan(dest ...any) error }

func scanCandidate(s scanner) (domain.ScoringCandidate, error) {
	var c domain.ScoringCandidate
	var headline, positive, negative, lang sql.NullString
	if err := s.Scan(&c.ReviewID, &headline, &positive, &negative, &c.HotelReply, &lang); err != nil {
		return domain.ScoringCandidate{}, err
	}
	c.Headline = headline.String
	c.PositiveText = positive.String
	c.NegativeText = negative.String
	c.Lang = lang.String
	return c, nil
}

func (r *Repo) ListReviews(ctx context.Context, q domain.ReviewsQuery) ([]domain.ReviewView, error) {
	where, args := reviewFilters(q)
	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, listReviewsPrefix+where+listReviewsSuffix, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ReviewView
	for rows.Next() {
		var rv domain.ReviewView
		var country, reply, lang sql.NullString
		var rating sql.NullInt64
		var score sql.NullFloat64
		if err := rows.Scan(
			&rv.ReviewID, &rv.HotelID, &rv.HotelName, &rv.ChainName,
			&rv.SourceID, &rv.CreatedAt, &rv.ReviewerName, &country,
			&rating, &rv.ReviewText, &reply, &lang, &score,
		); err != nil {
			return nil, err
		}
		rv.Country = country.String
		rv.Lang = lang.String
		if rating.Valid {
			n := int(rating.Int64)
			rv.Rating = &n
		}
		if reply.Valid {
			s := reply.String
			rv.HotelReply = &s
		}
		if score.Valid {
			f := score.Float64
			rv.Score = &f
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *Repo) QualityOverTime(ctx context.Context, q domain.ReviewsQuery) ([]domain.QualityPoint, error) {
	where, args := reviewFilters(q)

	rows, err := r.db.QueryContext(ctx, qualityOverTimePrefix+where+qualityOverTimeSuffix, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.QualityPoint
	for rows.Next() {
		var p domain.QualityPoint
		if err := rows.Scan(&p.Date, &p.AvgQuality); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// reviewFilters renders the shared WHERE clause for the read queries.
func reviewFilters(q domain.ReviewsQuery) (string, []any) {
	var conds []string
	var args []any
	if q.HotelID != nil {
		conds = append(conds, "gr.hotel_id = ?")
		args = append(args, *q.HotelID)
	}
	if q.ChainID != nil {
		conds = append(conds, "h.chain_id = ?")
		args = append(args, *q.ChainID)
	}
	if q.From != nil {
		conds = append(conds, "gr.created_at >= ?")
		args = append(args, q.From.UTC())
	}
	if q.To != nil {
		conds = append(conds, "gr.created_at <= ?")
		args = append(args, q.To.UTC())
	}
	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND ") + "\n", args
}
