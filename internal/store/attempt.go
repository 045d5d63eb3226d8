package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

var attemptColumns = []string{
	"id", "user_id", "content_id", "kind", "difficulty", "total_questions",
	"correct_count", "score_percent", "time_taken_seconds", "started_at", "completed_at",
}

type attemptRepo struct {
	s *Store
}

func (r *attemptRepo) Create(ctx context.Context, a *Attempt, questions []Question) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.StartedAt.IsZero() {
		a.StartedAt = time.Now().UTC()
	}
	if a.Kind == "" {
		a.Kind = AttemptQuiz
	}
	a.TotalQuestions = len(questions)

	return r.s.withTx(ctx, func(tx *sql.Tx) error {
		if err := r.s.insertQuestions(ctx, tx, questions); err != nil {
			return err
		}
		_, err := r.s.exec(ctx, tx, r.s.builder().Insert(tableAttempts).
			Columns(attemptColumns...).
			Values(a.ID, a.UserID, nullString(a.ContentID), a.Kind, a.Difficulty, a.TotalQuestions,
				a.CorrectCount, a.ScorePercent, a.TimeTakenSeconds, a.StartedAt, nullTime(a.CompletedAt)))
		if err != nil {
			return fmt.Errorf("insert attempt: %w", err)
		}
		if len(questions) == 0 {
			return nil
		}
		ins := r.s.builder().Insert(tableAttemptItems).Columns("attempt_id", "question_id", "position")
		for i, q := range questions {
			ins.Values(a.ID, q.ID, i)
		}
		if _, err := r.s.exec(ctx, tx, ins); err != nil {
			return fmt.Errorf("link attempt questions: %w", err)
		}
		return nil
	})
}

func (r *attemptRepo) Get(ctx context.Context, id string) (*Attempt, error) {
	row := r.s.queryRow(ctx, r.s.db, r.s.builder().Select(attemptColumns...).
		From(r.s.builder().Table(tableAttempts)).
		Where(entsql.EQ("id", id)))
	a, err := scanAttempt(row)
	if err != nil {
		return nil, notFound(err, "attempt")
	}
	return a, nil
}

func (r *attemptRepo) Questions(ctx context.Context, attemptID string) ([]Question, error) {
	rows, err := r.s.query(ctx, r.s.db, r.s.builder().Select("question_id").
		From(r.s.builder().Table(tableAttemptItems)).
		Where(entsql.EQ("attempt_id", attemptID)).
		OrderBy("position"))
	if err != nil {
		return nil, fmt.Errorf("list attempt questions: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan attempt question: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	byID, err := r.s.Questions().GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *attemptRepo) Responses(ctx context.Context, attemptID string) ([]Response, error) {
	rows, err := r.s.query(ctx, r.s.db, r.s.builder().
		Select("id", "attempt_id", "question_id", "user_answer", "is_correct", "time_spent_seconds").
		From(r.s.builder().Table(tableResponses)).
		Where(entsql.EQ("attempt_id", attemptID)))
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()

	var out []Response
	for rows.Next() {
		var resp Response
		if err := rows.Scan(&resp.ID, &resp.AttemptID, &resp.QuestionID, &resp.UserAnswer,
			&resp.IsCorrect, &resp.TimeSpentSeconds); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		out = append(out, resp)
	}
	return out, rows.Err()
}

func (r *attemptRepo) Complete(ctx context.Context, attemptID string, c Completion) error {
	if c.CompletedAt.IsZero() {
		c.CompletedAt = time.Now().UTC()
	}
	return r.s.withTx(ctx, func(tx *sql.Tx) error {
		var completed sql.NullTime
		err := r.s.queryRow(ctx, tx, r.s.builder().Select("completed_at").
			From(r.s.builder().Table(tableAttempts)).
			Where(entsql.EQ("id", attemptID))).Scan(&completed)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("attempt: %w", ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("load attempt: %w", err)
		}
		if completed.Valid {
			return fmt.Errorf("attempt already submitted: %w", ErrConflict)
		}

		if len(c.Responses) > 0 {
			ins := r.s.builder().Insert(tableResponses).
				Columns("id", "attempt_id", "question_id", "user_answer", "is_correct", "time_spent_seconds")
			for i := range c.Responses {
				resp := &c.Responses[i]
				if resp.ID == "" {
					resp.ID = uuid.NewString()
				}
				resp.AttemptID = attemptID
				ins.Values(resp.ID, attemptID, resp.QuestionID, resp.UserAnswer, resp.IsCorrect, resp.TimeSpentSeconds)
			}
			if _, err := r.s.exec(ctx, tx, ins); err != nil {
				return fmt.Errorf("insert responses: %w", err)
			}
		}

		_, err = r.s.exec(ctx, tx, r.s.builder().Update(tableAttempts).
			Set("correct_count", c.CorrectCount).
			Set("score_percent", c.ScorePercent).
			Set("time_taken_seconds", c.TimeTakenSeconds).
			Set("completed_at", c.CompletedAt).
			Where(entsql.EQ("id", attemptID)))
		if err != nil {
			return fmt.Errorf("complete attempt: %w", err)
		}
		return nil
	})
}

func (r *attemptRepo) RecentCompleted(ctx context.Context, userID string, limit int) ([]Attempt, error) {
	sel := r.s.builder().Select(attemptColumns...).
		From(r.s.builder().Table(tableAttempts)).
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.NotNull("completed_at"))).
		OrderBy(entsql.Desc("completed_at"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	return r.list(ctx, sel)
}

func (r *attemptRepo) History(ctx context.Context, userID string, limit int) ([]Attempt, error) {
	sel := r.s.builder().Select(attemptColumns...).
		From(r.s.builder().Table(tableAttempts)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("started_at"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	return r.list(ctx, sel)
}

func (r *attemptRepo) list(ctx context.Context, sel *entsql.Selector) ([]Attempt, error) {
	rows, err := r.s.query(ctx, r.s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func scanAttempt(sc scanner) (*Attempt, error) {
	var (
		a         Attempt
		contentID sql.NullString
		completed sql.NullTime
	)
	err := sc.Scan(&a.ID, &a.UserID, &contentID, &a.Kind, &a.Difficulty, &a.TotalQuestions,
		&a.CorrectCount, &a.ScorePercent, &a.TimeTakenSeconds, &a.StartedAt, &completed)
	if err != nil {
		return nil, err
	}
	a.ContentID = contentID.String
	if completed.Valid {
		t := completed.Time
		a.CompletedAt = &t
	}
	return &a, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
