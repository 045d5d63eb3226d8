package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

var contentColumns = []string{"id", "user_id", "title", "source_type", "source_ref", "raw_text", "created_at"}

type contentRepo struct {
	s *Store
}

func (r *contentRepo) Create(ctx context.Context, c *Content, chunks []string) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := r.s.exec(ctx, tx, r.s.builder().Insert(tableContents).
			Columns(contentColumns...).
			Values(c.ID, c.UserID, c.Title, c.SourceType, c.SourceRef, c.RawText, c.CreatedAt))
		if err != nil {
			return fmt.Errorf("insert content: %w", err)
		}
		if len(chunks) == 0 {
			return nil
		}
		ins := r.s.builder().Insert(tableChunks).Columns("id", "content_id", "chunk_index", "chunk_text")
		for i, text := range chunks {
			ins.Values(uuid.NewString(), c.ID, i, text)
		}
		if _, err := r.s.exec(ctx, tx, ins); err != nil {
			return fmt.Errorf("insert chunks: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	c.ChunkCount = len(chunks)
	return nil
}

func (r *contentRepo) Get(ctx context.Context, id string) (*Content, error) {
	row := r.s.queryRow(ctx, r.s.db, r.s.builder().Select(contentColumns...).
		From(r.s.builder().Table(tableContents)).
		Where(entsql.EQ("id", id)))
	c, err := scanContent(row)
	if err != nil {
		return nil, notFound(err, "content")
	}
	counts, err := r.chunkCounts(ctx, []string{c.ID})
	if err != nil {
		return nil, err
	}
	c.ChunkCount = counts[c.ID]
	return c, nil
}

func (r *contentRepo) ListByUser(ctx context.Context, userID string) ([]Content, error) {
	rows, err := r.s.query(ctx, r.s.db, r.s.builder().Select(contentColumns...).
		From(r.s.builder().Table(tableContents)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("created_at")))
	if err != nil {
		return nil, fmt.Errorf("list contents: %w", err)
	}

	var (
		out []Content
		ids []string
	)
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan content: %w", err)
		}
		out = append(out, *c)
		ids = append(ids, c.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return out, nil
	}

	counts, err := r.chunkCounts(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].ChunkCount = counts[out[i].ID]
	}
	return out, nil
}

func (r *contentRepo) chunkCounts(ctx context.Context, ids []string) (map[string]int, error) {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := r.s.query(ctx, r.s.db, r.s.builder().
		Select("content_id", entsql.Count("*")).
		From(r.s.builder().Table(tableChunks)).
		Where(entsql.In("content_id", args...)).
		GroupBy("content_id"))
	if err != nil {
		return nil, fmt.Errorf("count chunks: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int, len(ids))
	for rows.Next() {
		var (
			id string
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan chunk count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

func scanContent(sc scanner) (*Content, error) {
	var c Content
	err := sc.Scan(&c.ID, &c.UserID, &c.Title, &c.SourceType, &c.SourceRef, &c.RawText, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *contentRepo) Chunks(ctx context.Context, contentID string) ([]Chunk, error) {
	rows, err := r.s.query(ctx, r.s.db, r.s.builder().
		Select("id", "content_id", "chunk_index", "chunk_text").
		From(r.s.builder().Table(tableChunks)).
		Where(entsql.EQ("content_id", contentID)).
		OrderBy("chunk_index"))
	if err != nil {
		return nil, fmt.Errorf("list chunks: %w", err)
	}
	defer rows.Close()

	var out []Chunk
	for rows.Next() {
		var ch Chunk
		if err := rows.Scan(&ch.ID, &ch.ContentID, &ch.Index, &ch.Text); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		out = append(out, ch)
	}
	return out, rows.Err()
}

func (r *contentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.s.exec(ctx, r.s.db, r.s.builder().Delete(tableContents).Where(entsql.EQ("id", id)))
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	return expectAffected(res, "content")
}
