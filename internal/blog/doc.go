// Package blog provides the domain types for the lambdalog engine.
//
// This package contains type definitions only. All other internal packages
// import blog; blog imports nothing internal. This keeps the domain model
// the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Entries are read-only to the rendering layer; only the importer writes
//   - A nil PostedAt means "draft": excluded from every listing
//   - ViewArchive is a closed six-variant set; switches over it must be
//     exhaustive and never fall through to a default rendering shape
package blog
