package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

var questionColumns = []string{
	"id", "content_id", "question_text", "question_type", "options", "correct_answer",
	"difficulty", "explanation", "topic", "source", "is_flagged", "created_at",
}

// DefaultQuestionLimit caps admin question listings.
const DefaultQuestionLimit = 100

type questionRepo struct {
	s *Store
}

func (r *questionRepo) Get(ctx context.Context, id string) (*Question, error) {
	row := r.s.queryRow(ctx, r.s.db, r.s.builder().Select(questionColumns...).
		From(r.s.builder().Table(tableQuestions)).
		Where(entsql.EQ("id", id)))
	q, err := scanQuestion(row)
	if err != nil {
		return nil, notFound(err, "question")
	}
	return q, nil
}

func (r *questionRepo) GetMany(ctx context.Context, ids []string) (map[string]Question, error) {
	out := make(map[string]Question, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := r.s.query(ctx, r.s.db, r.s.builder().Select(questionColumns...).
		From(r.s.builder().Table(tableQuestions)).
		Where(entsql.In("id", args...)))
	if err != nil {
		return nil, fmt.Errorf("get questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		out[q.ID] = *q
	}
	return out, rows.Err()
}

func (r *questionRepo) List(ctx context.Context, f QuestionFilter) ([]Question, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultQuestionLimit
	}
	sel := r.s.builder().Select(questionColumns...).
		From(r.s.builder().Table(tableQuestions)).
		OrderBy(entsql.Desc("created_at")).
		Limit(limit)
	if f.FlaggedOnly {
		sel = sel.Where(entsql.EQ("is_flagged", true))
	}
	rows, err := r.s.query(ctx, r.s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var out []Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		out = append(out, *q)
	}
	return out, rows.Err()
}

func (r *questionRepo) SetFlagged(ctx context.Context, id string, flagged bool) error {
	res, err := r.s.exec(ctx, r.s.db, r.s.builder().Update(tableQuestions).
		Set("is_flagged", flagged).
		Where(entsql.EQ("id", id)))
	if err != nil {
		return fmt.Errorf("flag question: %w", err)
	}
	return expectAffected(res, "question")
}

func (r *questionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.s.exec(ctx, r.s.db, r.s.builder().Delete(tableQuestions).Where(entsql.EQ("id", id)))
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	return expectAffected(res, "question")
}

// insertQuestions assigns IDs to new questions and inserts them.
func (s *Store) insertQuestions(ctx context.Context, q querier, questions []Question) error {
	ins := s.builder().Insert(tableQuestions).Columns(questionColumns...)
	n := 0
	now := time.Now().UTC()
	for i := range questions {
		qu := &questions[i]
		if qu.ID != "" {
			continue
		}
		qu.ID = uuid.NewString()
		if qu.CreatedAt.IsZero() {
			qu.CreatedAt = now
		}
		if qu.Source == "" {
			qu.Source = "rule"
		}
		opts, err := encodeStrings(qu.Options)
		if err != nil {
			return err
		}
		ins.Values(qu.ID, nullString(qu.ContentID), qu.Text, qu.Type, opts, qu.CorrectAnswer,
			qu.Difficulty, qu.Explanation, qu.Topic, qu.Source, qu.IsFlagged, qu.CreatedAt)
		n++
	}
	if n == 0 {
		return nil
	}
	if _, err := s.exec(ctx, q, ins); err != nil {
		return fmt.Errorf("insert questions: %w", err)
	}
	return nil
}

func scanQuestion(sc scanner) (*Question, error) {
	var (
		q    Question
		cid  sql.NullString
		opts string
	)
	err := sc.Scan(&q.ID, &cid, &q.Text, &q.Type, &opts, &q.CorrectAnswer,
		&q.Difficulty, &q.Explanation, &q.Topic, &q.Source, &q.IsFlagged, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	q.ContentID = cid.String
	q.Options = decodeStrings(opts)
	return &q, nil
}
