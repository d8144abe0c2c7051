// Package store provides durable storage for blog entries and tags.
//
// Entries and their tag associations live in a single SQLite database.
// The engine only reads; the importer is the sole writer. Every listing
// query excludes drafts (NULL posted_at) and orders by posted_at DESC,
// id DESC so that entries sharing a timestamp render deterministically,
// newest id first.
package store
