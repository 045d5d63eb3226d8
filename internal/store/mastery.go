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

type masteryRepo struct {
	s *Store
}

// Record adds correct and total to the user's counters for topic.
func (r *masteryRepo) Record(ctx context.Context, userID, topic string, correct, total int) error {
	now := time.Now().UTC()
	return r.s.withTx(ctx, func(tx *sql.Tx) error {
		var id string
		err := r.s.queryRow(ctx, tx, r.s.builder().Select("id").
			From(r.s.builder().Table(tableMastery)).
			Where(entsql.And(entsql.EQ("user_id", userID), entsql.EQ("topic", topic)))).Scan(&id)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			_, err = r.s.exec(ctx, tx, r.s.builder().Insert(tableMastery).
				Columns("id", "user_id", "topic", "correct_count", "total_count", "updated_at").
				Values(uuid.NewString(), userID, topic, correct, total, now))
			if err != nil {
				return fmt.Errorf("insert mastery: %w", err)
			}
			return nil
		case err != nil:
			return fmt.Errorf("load mastery: %w", err)
		}

		_, err = r.s.exec(ctx, tx, r.s.builder().Update(tableMastery).
			Add("correct_count", correct).
			Add("total_count", total).
			Set("updated_at", now).
			Where(entsql.EQ("id", id)))
		if err != nil {
			return fmt.Errorf("update mastery: %w", err)
		}
		return nil
	})
}

func (r *masteryRepo) List(ctx context.Context, userID string) ([]TopicMastery, error) {
	rows, err := r.s.query(ctx, r.s.db, r.s.builder().
		Select("user_id", "topic", "correct_count", "total_count", "updated_at").
		From(r.s.builder().Table(tableMastery)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy("topic"))
	if err != nil {
		return nil, fmt.Errorf("list mastery: %w", err)
	}
	defer rows.Close()

	var out []TopicMastery
	for rows.Next() {
		var m TopicMastery
		if err := rows.Scan(&m.UserID, &m.Topic, &m.CorrectCount, &m.TotalCount, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan mastery: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
