package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

var userColumns = []string{
	"id", "email", "name", "password_hash", "preferred_difficulty",
	"subjects", "is_admin", "streak", "last_quiz_date", "created_at",
}

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if u.PreferredDifficulty == "" {
		u.PreferredDifficulty = "medium"
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	subjects, err := encodeStrings(u.Subjects)
	if err != nil {
		return err
	}
	_, err = r.s.exec(ctx, r.s.db, r.s.builder().Insert(tableUsers).
		Columns(userColumns...).
		Values(u.ID, u.Email, u.Name, u.PasswordHash, u.PreferredDifficulty,
			subjects, u.IsAdmin, u.Streak, nullString(u.LastQuizDate), u.CreatedAt))
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepo) Get(ctx context.Context, id string) (*User, error) {
	row := r.s.queryRow(ctx, r.s.db, r.s.builder().Select(userColumns...).
		From(r.s.builder().Table(tableUsers)).
		Where(entsql.EQ("id", id)))
	u, err := scanUser(row)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	row := r.s.queryRow(ctx, r.s.db, r.s.builder().Select(userColumns...).
		From(r.s.builder().Table(tableUsers)).
		Where(entsql.EQ("email", strings.ToLower(strings.TrimSpace(email)))))
	u, err := scanUser(row)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return u, nil
}

func (r *userRepo) List(ctx context.Context) ([]User, error) {
	rows, err := r.s.query(ctx, r.s.db, r.s.builder().Select(userColumns...).
		From(r.s.builder().Table(tableUsers)).
		OrderBy("created_at"))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *userRepo) Update(ctx context.Context, u *User) error {
	subjects, err := encodeStrings(u.Subjects)
	if err != nil {
		return err
	}
	res, err := r.s.exec(ctx, r.s.db, r.s.builder().Update(tableUsers).
		Set("name", u.Name).
		Set("password_hash", u.PasswordHash).
		Set("preferred_difficulty", u.PreferredDifficulty).
		Set("subjects", subjects).
		Set("is_admin", u.IsAdmin).
		Set("streak", u.Streak).
		Set("last_quiz_date", nullString(u.LastQuizDate)).
		Where(entsql.EQ("id", u.ID)))
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return expectAffected(res, "user")
}

func (r *userRepo) SetAdmin(ctx context.Context, id string, admin bool) error {
	res, err := r.s.exec(ctx, r.s.db, r.s.builder().Update(tableUsers).
		Set("is_admin", admin).
		Where(entsql.EQ("id", id)))
	if err != nil {
		return fmt.Errorf("set admin: %w", err)
	}
	return expectAffected(res, "user")
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(sc scanner) (*User, error) {
	var (
		u        User
		subjects string
		lastQuiz sql.NullString
	)
	err := sc.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.PreferredDifficulty,
		&subjects, &u.IsAdmin, &u.Streak, &lastQuiz, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	u.Subjects = decodeStrings(subjects)
	u.LastQuizDate = lastQuiz.String
	return &u, nil
}

// Stats counts rows for the admin dashboard.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	counts := []struct {
		table string
		pred  *entsql.Predicate
		dst   *int
	}{
		{tableUsers, nil, &st.Users},
		{tableContents, nil, &st.Contents},
		{tableQuestions, nil, &st.Questions},
		{tableAttempts, nil, &st.Attempts},
		{tableQuestions, entsql.EQ("is_flagged", true), &st.Flagged},
		{tableFeedback, nil, &st.Feedback},
	}
	for _, c := range counts {
		sel := s.builder().Select(entsql.Count("*")).From(s.builder().Table(c.table))
		if c.pred != nil {
			sel = sel.Where(c.pred)
		}
		if err := s.queryRow(ctx, s.db, sel).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("count %s: %w", c.table, err)
		}
	}
	return &st, nil
}

func encodeStrings(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(b), nil
}

func decodeStrings(s string) []string {
	var v []string
	if err := json.Unmarshal([]byte(s), &v); err != nil || v == nil {
		return []string{}
	}
	return v
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func expectAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
