package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

type feedbackRepo struct {
	s *Store
}

func (r *feedbackRepo) Create(ctx context.Context, f *Feedback) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	_, err := r.s.exec(ctx, r.s.db, r.s.builder().Insert(tableFeedback).
		Columns("id", "user_id", "question_id", "rating", "comment", "created_at").
		Values(f.ID, f.UserID, f.QuestionID, f.Rating, f.Comment, f.CreatedAt))
	if err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}
	return nil
}

func (r *feedbackRepo) ListByQuestion(ctx context.Context, questionID string) ([]Feedback, error) {
	return r.list(ctx, r.selectAll().Where(entsql.EQ("question_id", questionID)))
}

func (r *feedbackRepo) List(ctx context.Context, limit int) ([]Feedback, error) {
	sel := r.selectAll()
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	return r.list(ctx, sel)
}

func (r *feedbackRepo) selectAll() *entsql.Selector {
	return r.s.builder().
		Select("id", "user_id", "question_id", "rating", "comment", "created_at").
		From(r.s.builder().Table(tableFeedback)).
		OrderBy(entsql.Desc("created_at"))
}

func (r *feedbackRepo) list(ctx context.Context, sel *entsql.Selector) ([]Feedback, error) {
	rows, err := r.s.query(ctx, r.s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	var out []Feedback
	for rows.Next() {
		var f Feedback
		if err := rows.Scan(&f.ID, &f.UserID, &f.QuestionID, &f.Rating, &f.Comment, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
