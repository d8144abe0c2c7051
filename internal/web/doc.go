// Package web maps URL paths to rendered pages.
//
// Every handler produces either a redirect target or a (body, page
// metadata) pair; dispatch converts the former into an HTTP redirect and
// wraps the latter in the site layout with a freshly built sidebar.
// Requests are fully independent: no shared mutable state, no caching,
// every page is recomputed from the store.
package web
