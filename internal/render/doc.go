// Package render turns query results into HTML fragments and wraps them
// in the site layout.
//
// Rendering is stateless: a Renderer holds only parsed templates and a
// collator, both read-only, so one instance serves all requests. The
// archive renderer dispatches on the closed ViewArchive variant set; the
// switches there are exhaustive so a new view kind cannot silently fall
// back to the wrong shape.
//
// Preconditions: every bucket in a grouped listing is non-empty, as the
// grouper guarantees by construction. The renderer does not re-check.
package render
