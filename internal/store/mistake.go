package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

type mistakeRepo struct {
	s *Store
}

func (r *mistakeRepo) Add(ctx context.Context, m *Mistake) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.AddedAt.IsZero() {
		m.AddedAt = time.Now().UTC()
	}
	_, err := r.s.exec(ctx, r.s.db, r.s.builder().Insert(tableMistakes).
		Columns("id", "user_id", "question_id", "user_answer", "topic", "added_at").
		Values(m.ID, m.UserID, m.QuestionID, m.UserAnswer, m.Topic, m.AddedAt))
	if errors.Is(err, ErrConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("add mistake: %w", err)
	}
	return nil
}

func (r *mistakeRepo) List(ctx context.Context, userID string, limit int) ([]Mistake, error) {
	sel := r.s.builder().Select("id", "user_id", "question_id", "user_answer", "topic", "added_at").
		From(r.s.builder().Table(tableMistakes)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("added_at"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	rows, err := r.s.query(ctx, r.s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("list mistakes: %w", err)
	}

	var (
		out []Mistake
		ids []string
	)
	for rows.Next() {
		var m Mistake
		if err := rows.Scan(&m.ID, &m.UserID, &m.QuestionID, &m.UserAnswer, &m.Topic, &m.AddedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan mistake: %w", err)
		}
		out = append(out, m)
		ids = append(ids, m.QuestionID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	questions, err := r.s.Questions().GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Question = questions[out[i].QuestionID]
	}
	return out, nil
}

func (r *mistakeRepo) Remove(ctx context.Context, userID, questionID string) error {
	_, err := r.s.exec(ctx, r.s.db, r.s.builder().Delete(tableMistakes).
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.EQ("question_id", questionID))))
	if err != nil {
		return fmt.Errorf("remove mistake: %w", err)
	}
	return nil
}
