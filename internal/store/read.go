package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lambdalog/lambdalog/internal/blog"
)

// entryColumns is the select list every entry scan expects.
const entryColumns = "id, slug, title, body, posted_at"

// listingOrder is the deterministic ordering for every listing query.
// The explicit id tie-break makes entries sharing a posted_at render
// newest-id first.
const listingOrder = "ORDER BY posted_at DESC, id DESC"

// ListArchive returns every published entry matching the archive view,
// newest first, with tag lists attached.
func (s *Store) ListArchive(ctx context.Context, view blog.ViewArchive) ([]blog.Entry, error) {
	where, args := viewFilter(view)
	query := fmt.Sprintf(`
		SELECT %s FROM entries
		WHERE posted_at IS NOT NULL%s
		%s
	`, entryColumns, where, listingOrder)

	entries, err := s.queryEntries(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query archive: %w", err)
	}
	if err := s.attachTags(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ListPublished returns one page of published entries, newest first,
// with tag lists attached. Used by the home listing.
func (s *Store) ListPublished(ctx context.Context, limit, offset int) ([]blog.Entry, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM entries
		WHERE posted_at IS NOT NULL
		%s
		LIMIT ? OFFSET ?
	`, entryColumns, listingOrder)

	entries, err := s.queryEntries(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query published page: %w", err)
	}
	if err := s.attachTags(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CountPublished returns the number of published entries.
func (s *Store) CountPublished(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM entries WHERE posted_at IS NOT NULL",
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count published: %w", err)
	}
	return n, nil
}

// Recent returns the n most recently posted entries, without bodies or
// tag lists. Used by the sidebar on every request.
func (s *Store) Recent(ctx context.Context, n int) ([]blog.Entry, error) {
	query := fmt.Sprintf(`
		SELECT id, slug, title, '', posted_at FROM entries
		WHERE posted_at IS NOT NULL
		%s
		LIMIT ?
	`, listingOrder)

	entries, err := s.queryEntries(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("query recent: %w", err)
	}
	return entries, nil
}

// EntryByID retrieves a single entry by numeric id, drafts included.
// Returns ErrNotFound if no such entry exists.
func (s *Store) EntryByID(ctx context.Context, id int64) (blog.Entry, error) {
	return s.entryWhere(ctx, "id = ?", id)
}

// EntryBySlug retrieves a single entry by slug, drafts included.
// Returns ErrNotFound if no such entry exists.
func (s *Store) EntryBySlug(ctx context.Context, slug string) (blog.Entry, error) {
	return s.entryWhere(ctx, "slug = ?", slug)
}

func (s *Store) entryWhere(ctx context.Context, where string, arg any) (blog.Entry, error) {
	query := fmt.Sprintf("SELECT %s FROM entries WHERE %s", entryColumns, where)
	row := s.db.QueryRowContext(ctx, query, arg)

	e, err := scanEntryRow(row)
	if err == sql.ErrNoRows {
		return blog.Entry{}, ErrNotFound
	}
	if err != nil {
		return blog.Entry{}, fmt.Errorf("query entry: %w", err)
	}

	entries := []blog.Entry{e}
	if err := s.attachTags(ctx, entries); err != nil {
		return blog.Entry{}, err
	}
	return entries[0], nil
}

// TagByName retrieves a tag by kind and name.
// Returns ErrNotFound if no such tag exists.
func (s *Store) TagByName(ctx context.Context, kind blog.TagKind, name string) (blog.Tag, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, kind, description FROM tags
		WHERE kind = ? AND name = ?
	`, string(kind), name)

	var t blog.Tag
	var k string
	err := row.Scan(&t.ID, &t.Name, &k, &t.Description)
	if err == sql.ErrNoRows {
		return blog.Tag{}, ErrNotFound
	}
	if err != nil {
		return blog.Tag{}, fmt.Errorf("query tag: %w", err)
	}
	t.Kind = blog.TagKind(k)
	return t, nil
}

// TagCount pairs a tag with its published-entry count for index pages.
type TagCount struct {
	blog.Tag
	EntryCount int
}

// ListTags returns every tag of a kind together with its published-entry
// count. Tags with only draft entries appear with a zero count. Ordering
// here is by name byte order; the renderer re-sorts with a collator.
func (s *Store) ListTags(ctx context.Context, kind blog.TagKind) ([]TagCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.kind, t.description,
		       COUNT(e.id)
		FROM tags t
		LEFT JOIN entry_tags et ON et.tag_id = t.id
		LEFT JOIN entries e ON e.id = et.entry_id AND e.posted_at IS NOT NULL
		WHERE t.kind = ?
		GROUP BY t.id
		ORDER BY t.name ASC
	`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	tags := []TagCount{}
	for rows.Next() {
		var tc TagCount
		var k string
		if err := rows.Scan(&tc.ID, &tc.Name, &k, &tc.Description, &tc.EntryCount); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tc.Kind = blog.TagKind(k)
		tags = append(tags, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}
	return tags, nil
}

// viewFilter returns the extra WHERE conjunct (prefixed with " AND ")
// and its arguments for an archive view. The exhaustive switch keeps a
// new view variant from silently matching everything.
func viewFilter(view blog.ViewArchive) (string, []any) {
	switch view.Kind {
	case blog.ViewAll:
		return "", nil
	case blog.ViewYear:
		lo, hi := yearBounds(view.Year)
		return " AND posted_at >= ? AND posted_at < ?", []any{lo, hi}
	case blog.ViewMonth:
		lo, hi := monthBounds(view.Year, view.Month)
		return " AND posted_at >= ? AND posted_at < ?", []any{lo, hi}
	case blog.ViewTag, blog.ViewCategory, blog.ViewSeries:
		kind, _ := view.TagKind()
		return ` AND EXISTS (
			SELECT 1 FROM entry_tags et
			JOIN tags t ON t.id = et.tag_id
			WHERE et.entry_id = entries.id AND t.kind = ? AND t.name = ?
		)`, []any{string(kind), view.Tag}
	}
	panic(fmt.Sprintf("store: unknown view kind %q", view.Kind))
}

// yearBounds returns the half-open [start, end) RFC 3339 range of a
// calendar year in UTC. Uniform formatting makes the strings compare
// like the instants they encode.
func yearBounds(year int) (string, string) {
	lo := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return formatTime(lo), formatTime(lo.AddDate(1, 0, 0))
}

// monthBounds returns the half-open [start, end) range of a calendar
// month in UTC.
func monthBounds(year int, month time.Month) (string, string) {
	lo := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return formatTime(lo), formatTime(lo.AddDate(0, 1, 0))
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// queryEntries runs an entry query and scans all rows.
// Returns an empty slice instead of nil when nothing matches.
func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]blog.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []blog.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(rows *sql.Rows) (blog.Entry, error) {
	return scanEntryFrom(rows)
}

func scanEntryRow(row *sql.Row) (blog.Entry, error) {
	return scanEntryFrom(row)
}

func scanEntryFrom(r rowScanner) (blog.Entry, error) {
	var e blog.Entry
	var postedAt sql.NullString
	if err := r.Scan(&e.ID, &e.Slug, &e.Title, &e.Body, &postedAt); err != nil {
		return blog.Entry{}, err
	}
	if postedAt.Valid {
		at, err := parseTime(postedAt.String)
		if err != nil {
			return blog.Entry{}, fmt.Errorf("parse posted_at %q: %w", postedAt.String, err)
		}
		e.PostedAt = &at
	}
	return e, nil
}

// attachTags loads the tag lists for a set of entries in one query,
// preserving each entry's authoring order.
func (s *Store) attachTags(ctx context.Context, entries []blog.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	index := make(map[int64]*blog.Entry, len(entries))
	ids := make([]any, 0, len(entries))
	for i := range entries {
		index[entries[i].ID] = &entries[i]
		ids = append(ids, entries[i].ID)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT et.entry_id, t.id, t.name, t.kind, t.description
		FROM entry_tags et
		JOIN tags t ON t.id = et.tag_id
		WHERE et.entry_id IN (%s)
		ORDER BY et.entry_id, et.position
	`, placeholders), ids...)
	if err != nil {
		return fmt.Errorf("query entry tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entryID int64
		var t blog.Tag
		var kind string
		if err := rows.Scan(&entryID, &t.ID, &t.Name, &kind, &t.Description); err != nil {
			return fmt.Errorf("scan entry tag: %w", err)
		}
		t.Kind = blog.TagKind(kind)
		if e, ok := index[entryID]; ok {
			e.Tags = append(e.Tags, t)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate entry tags: %w", err)
	}
	return nil
}
