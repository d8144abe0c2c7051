package store

import (
	"context"
	"fmt"

	"github.com/lambdalog/lambdalog/internal/blog"
)

// UpsertEntry inserts an entry or, if the slug already exists, updates
// its title, body and posting date. Sets e.ID on return. Tag
// associations are managed separately via SetEntryTags.
func (s *Store) UpsertEntry(ctx context.Context, e *blog.Entry) error {
	var postedAt any
	if e.PostedAt != nil {
		postedAt = formatTime(*e.PostedAt)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (slug, title, body, posted_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (slug) DO UPDATE SET
			title = excluded.title,
			body = excluded.body,
			posted_at = excluded.posted_at
	`, e.Slug, e.Title, e.Body, postedAt)
	if err != nil {
		return fmt.Errorf("upsert entry %q: %w", e.Slug, err)
	}

	// Read the id back rather than trusting LastInsertId, which reports
	// the original rowid on the conflict path only in newer SQLite.
	if err := s.db.QueryRowContext(ctx,
		"SELECT id FROM entries WHERE slug = ?", e.Slug,
	).Scan(&e.ID); err != nil {
		return fmt.Errorf("read back entry id for %q: %w", e.Slug, err)
	}
	return nil
}

// EnsureTag creates a tag if it does not exist and returns it. An
// existing tag's description is updated only when the given description
// is non-empty.
func (s *Store) EnsureTag(ctx context.Context, kind blog.TagKind, name, description string) (blog.Tag, error) {
	if !blog.ValidTagKinds[kind] {
		return blog.Tag{}, fmt.Errorf("ensure tag %q: invalid kind %q", name, kind)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (name, kind, description)
		VALUES (?, ?, ?)
		ON CONFLICT (name, kind) DO UPDATE SET
			description = CASE
				WHEN excluded.description != '' THEN excluded.description
				ELSE tags.description
			END
	`, name, string(kind), description)
	if err != nil {
		return blog.Tag{}, fmt.Errorf("ensure tag %q: %w", name, err)
	}

	return s.TagByName(ctx, kind, name)
}

// SetEntryTags replaces an entry's tag associations with the given tag
// ids, preserving their order as the display order.
func (s *Store) SetEntryTags(ctx context.Context, entryID int64, tagIDs []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin set entry tags: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM entry_tags WHERE entry_id = ?", entryID,
	); err != nil {
		return fmt.Errorf("clear entry tags: %w", err)
	}

	for pos, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO entry_tags (entry_id, tag_id, position)
			VALUES (?, ?, ?)
		`, entryID, tagID, pos); err != nil {
			return fmt.Errorf("insert entry tag: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit set entry tags: %w", err)
	}
	return nil
}

// DeleteEntry removes an entry and its tag associations.
// Returns ErrNotFound if no such slug exists.
func (s *Store) DeleteEntry(ctx context.Context, slug string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM entries WHERE slug = ?", slug)
	if err != nil {
		return fmt.Errorf("delete entry %q: %w", slug, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete entry %q: %w", slug, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
