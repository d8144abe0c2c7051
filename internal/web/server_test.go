package web

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambdalog/lambdalog/internal/blog"
	"github.com/lambdalog/lambdalog/internal/config"
	"github.com/lambdalog/lambdalog/internal/render"
	"github.com/lambdalog/lambdalog/internal/store"
)

// testServer builds a server over a seeded temp store:
// three published entries (Feb 2020, Jan 2020, Dec 2019), one draft,
// and a haskell tag on the newest entry. Page size is 2.
func testServer(t *testing.T) http.Handler {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "web.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	seed := func(slug, title string, at time.Time) int64 {
		e := blog.Entry{Slug: slug, Title: title, Body: "<p>" + title + "</p>", PostedAt: &at}
		require.NoError(t, st.UpsertEntry(ctx, &e))
		return e.ID
	}
	newest := seed("e2", "Entry Two", time.Date(2020, time.February, 10, 12, 0, 0, 0, time.UTC))
	seed("e1", "Entry One", time.Date(2020, time.January, 5, 12, 0, 0, 0, time.UTC))
	seed("e3", "Entry Three", time.Date(2019, time.December, 25, 12, 0, 0, 0, time.UTC))

	draft := blog.Entry{Slug: "wip", Title: "Work in Progress"}
	require.NoError(t, st.UpsertEntry(ctx, &draft))

	tag, err := st.EnsureTag(ctx, blog.KindTag, "haskell", "Posts about Haskell")
	require.NoError(t, err)
	require.NoError(t, st.SetEntryTags(ctx, newest, []int64{tag.ID}))

	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Site.PageSize = 2

	r, err := render.New("testlog")
	require.NoError(t, err)

	return New(cfg, st, r, log.New(io.Discard, "", 0)).Handler()
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, target string) {
	t.Helper()
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, target, rec.Header().Get("Location"))
}

func TestHome_FirstPage(t *testing.T) {
	h := testServer(t)

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	// Assert on entry rows, not bare titles: the sidebar's recent list
	// carries every title on every page.
	body := rec.Body.String()
	assert.Contains(t, body, `class="entry-title" href="/entry/e2"`)
	assert.Contains(t, body, `class="entry-title" href="/entry/e1"`)
	assert.NotContains(t, body, `class="entry-title" href="/entry/e3"`) // page size 2
	assert.NotContains(t, body, "Work in Progress")
	assert.Contains(t, body, `href="/home/2"`)
}

func TestHome_SecondPage(t *testing.T) {
	h := testServer(t)

	rec := get(t, h, "/home/2")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `class="entry-title" href="/entry/e3"`)
	assert.NotContains(t, body, `class="entry-title" href="/entry/e2"`)
	assert.Contains(t, body, `class="newer" href="/"`)
}

func TestHome_BadPageNumbers(t *testing.T) {
	h := testServer(t)

	assertRedirect(t, get(t, h, "/home/0"), "/not-found")
	assertRedirect(t, get(t, h, "/home/banana"), "/not-found")
	assertRedirect(t, get(t, h, "/home/99"), "/not-found")
}

func TestEntry_BySlugAndByID(t *testing.T) {
	h := testServer(t)

	rec := get(t, h, "/entry/e2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Entry Two</h1>")
	assert.Contains(t, rec.Body.String(), "<title>Entry Two | testlog</title>")

	rec = get(t, h, "/entry/id/1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Entry Two</h1>")
}

func TestEntry_DraftReachableDirectly(t *testing.T) {
	h := testServer(t)

	rec := get(t, h, "/entry/wip")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Draft, not yet published.")
}

func TestEntry_Missing(t *testing.T) {
	h := testServer(t)

	assertRedirect(t, get(t, h, "/entry/nope"), "/not-found")
	assertRedirect(t, get(t, h, "/entry/id/999"), "/not-found")
	assertRedirect(t, get(t, h, "/entry/id/banana"), "/not-found")
}

func TestLegacyRedirects(t *testing.T) {
	h := testServer(t)

	assertRedirect(t, get(t, h, "/e/e2"), "/entry/e2")
	assertRedirect(t, get(t, h, "/id/e/e2"), "/entry/e2")
}

func TestArchive_All(t *testing.T) {
	h := testServer(t)

	rec := get(t, h, "/entries")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `<h2 class="year">2020</h2>`)
	assert.Contains(t, body, `<h2 class="year">2019</h2>`)
	assert.Contains(t, body, "Entry Three")
	// History is the active sidebar index here.
	assert.Contains(t, body, `<span class="current">History</span>`)
}

func TestArchive_YearAndMonth(t *testing.T) {
	h := testServer(t)

	rec := get(t, h, "/entries/in/2020")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `class="entry-title" href="/entry/e2"`)
	assert.NotContains(t, body, `class="entry-title" href="/entry/e3"`)
	assert.Contains(t, body, `<p class="back"><a href="/entries">All entries</a></p>`)

	rec = get(t, h, "/entries/in/2020/01")
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.String()
	assert.Contains(t, body, `class="entry-title" href="/entry/e1"`)
	assert.NotContains(t, body, `class="entry-title" href="/entry/e2"`)
	assert.Contains(t, body, `href="/entries/in/2020"`)
}

func TestArchive_BadDateParams(t *testing.T) {
	h := testServer(t)

	assertRedirect(t, get(t, h, "/entries/in/banana"), "/not-found")
	assertRedirect(t, get(t, h, "/entries/in/2020/13"), "/not-found")
	assertRedirect(t, get(t, h, "/entries/in/2020/zero"), "/not-found")
}

func TestArchive_TagView(t *testing.T) {
	h := testServer(t)

	rec := get(t, h, "/tags/haskell")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `class="entry-title" href="/entry/e2"`)
	assert.NotContains(t, body, `class="entry-title" href="/entry/e1"`)
	// Subtitle from the tag description.
	assert.Contains(t, body, "Posts about Haskell")
}

func TestArchive_UnknownTag(t *testing.T) {
	h := testServer(t)

	assertRedirect(t, get(t, h, "/tags/nonexistent"), "/not-found")
	assertRedirect(t, get(t, h, "/categories/haskell"), "/not-found") // wrong kind
}

func TestTagIndex(t *testing.T) {
	h := testServer(t)

	rec := get(t, h, "/tags")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `href="/tags/haskell"`)
	assert.Contains(t, body, `<span class="current">Tags</span>`)

	rec = get(t, h, "/series")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nothing here yet.")
}

func TestNotFoundPage(t *testing.T) {
	h := testServer(t)

	rec := get(t, h, "/not-found")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "The page you were looking for does not exist.")
}

func TestUnmatchedPathRedirects(t *testing.T) {
	h := testServer(t)

	assertRedirect(t, get(t, h, "/completely/bogus"), "/not-found")
}

func TestSidebar_RecentOnEveryPage(t *testing.T) {
	h := testServer(t)

	rec := get(t, h, "/entry/e3")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `<section class="recent">`)
	assert.Contains(t, body, `<li><a href="/entry/e2">Entry Two</a></li>`)
}

func TestStaticCSS(t *testing.T) {
	h := testServer(t)

	rec := get(t, h, "/static/site.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/css; charset=utf-8", rec.Header().Get("Content-Type"))
}
