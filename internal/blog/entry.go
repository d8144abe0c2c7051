package blog

import "time"

// Entry is a single blog post record. Immutable once published: the engine
// reads entries for the duration of one request and never mutates them.
type Entry struct {
	ID       int64      `json:"id"`
	Slug     string     `json:"slug"`
	Title    string     `json:"title"`
	Body     string     `json:"body,omitempty"` // pre-rendered HTML from the authoring side
	PostedAt *time.Time `json:"posted_at,omitempty"`

	// Tags is the entry's ordered tag set (plain tags, categories and
	// series alike), preserving authoring order.
	Tags []Tag `json:"tags,omitempty"`
}

// Published reports whether the entry has a posting date.
// Drafts (nil PostedAt) are excluded from all listings.
func (e Entry) Published() bool {
	return e.PostedAt != nil
}

// URL returns the entry's canonical path.
func (e Entry) URL() string {
	return "/entry/" + e.Slug
}
