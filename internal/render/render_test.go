package render

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambdalog/lambdalog/internal/blog"
)

func TestSidebar_ActiveHistoryGolden(t *testing.T) {
	r := testRenderer(t)

	html, err := r.Sidebar(blog.IndexHistory, fixtureEntries())
	require.NoError(t, err)

	golden(t).Assert(t, "sidebar_history", []byte(html))
}

func TestSidebar_NoActiveIndexRendersAllLinks(t *testing.T) {
	r := testRenderer(t)

	html, err := r.Sidebar("", nil)
	require.NoError(t, err)

	s := string(html)
	for _, href := range []string{"/entries", "/tags", "/categories", "/series"} {
		assert.Contains(t, s, `<a href="`+href+`"`)
	}
	assert.NotContains(t, s, "current")
}

func TestSidebar_ActiveIndexIsNotALink(t *testing.T) {
	r := testRenderer(t)

	html, err := r.Sidebar(blog.IndexTags, nil)
	require.NoError(t, err)

	s := string(html)
	assert.Contains(t, s, `<span class="current">Tags</span>`)
	assert.NotContains(t, s, `<a href="/tags">Tags</a>`)
	assert.Contains(t, s, `<a href="/categories">Categories</a>`)
}

func TestSidebar_RecentLinksToEntryPages(t *testing.T) {
	r := testRenderer(t)

	html, err := r.Sidebar("", fixtureEntries())
	require.NoError(t, err)

	assert.Contains(t, string(html), `<a href="/entry/e2">Entry Two</a>`)
	assert.Contains(t, string(html), `<a href="/entry/e3">Entry Three</a>`)
}

func TestSidebar_RecentListsTitlesNewestFirst(t *testing.T) {
	r := testRenderer(t)

	html, err := r.Sidebar("", fixtureEntries())
	require.NoError(t, err)

	s := string(html)
	two := strings.Index(s, "Entry Two")
	one := strings.Index(s, "Entry One")
	three := strings.Index(s, "Entry Three")
	require.True(t, two >= 0 && one >= 0 && three >= 0)
	assert.Less(t, two, one)
	assert.Less(t, one, three)
}

func TestEntry_Golden(t *testing.T) {
	r := testRenderer(t)
	e := fixtureEntries()[0]
	e.Body = "<p>Hello <em>world</em></p>"

	html, err := r.Entry(e)
	require.NoError(t, err)

	golden(t).Assert(t, "entry_page", []byte(html))
}

func TestEntry_BodyNotEscaped(t *testing.T) {
	r := testRenderer(t)
	e := fixtureEntries()[1]
	e.Body = "<p>code: <code>fmap id</code></p>"

	html, err := r.Entry(e)
	require.NoError(t, err)

	assert.Contains(t, string(html), "<code>fmap id</code>")
}

func TestEntry_DraftNotice(t *testing.T) {
	r := testRenderer(t)

	html, err := r.Entry(blog.Entry{Slug: "wip", Title: "WIP"})
	require.NoError(t, err)

	s := string(html)
	assert.Contains(t, s, "Draft, not yet published.")
	assert.NotContains(t, s, "<time")
}

func TestHome_MiddlePageGolden(t *testing.T) {
	r := testRenderer(t)

	html, err := r.Home(fixtureEntries()[1:2], 2, 3)
	require.NoError(t, err)

	golden(t).Assert(t, "home_middle_page", []byte(html))
}

func TestHome_Pagination(t *testing.T) {
	r := testRenderer(t)

	first, err := r.Home(fixtureEntries(), 1, 3)
	require.NoError(t, err)
	assert.NotContains(t, string(first), "Newer entries")
	assert.Contains(t, string(first), `href="/home/2"`)

	third, err := r.Home(fixtureEntries(), 3, 3)
	require.NoError(t, err)
	assert.Contains(t, string(third), `href="/home/2"`)
	assert.NotContains(t, string(third), "Older entries")

	only, err := r.Home(nil, 1, 1)
	require.NoError(t, err)
	assert.Contains(t, string(only), "No entries found.")
}

func TestTagIndex_CollatedOrder(t *testing.T) {
	r := testRenderer(t)
	items := []IndexItem{
		{Tag: blog.Tag{Name: "zebra", Kind: blog.KindTag}, Count: 1},
		{Tag: blog.Tag{Name: "Église", Kind: blog.KindTag}, Count: 2},
		{Tag: blog.Tag{Name: "apple", Kind: blog.KindTag}, Count: 3},
	}

	html, err := r.TagIndex(blog.KindTag, items)
	require.NoError(t, err)

	s := string(html)
	apple := strings.Index(s, "apple")
	eglise := strings.Index(s, "Église")
	zebra := strings.Index(s, "zebra")
	require.True(t, apple >= 0 && eglise >= 0 && zebra >= 0)
	assert.Less(t, apple, eglise, "collation should sort Église before zebra")
	assert.Less(t, eglise, zebra)
}

func TestTagIndex_ConcurrentCalls(t *testing.T) {
	r := testRenderer(t)
	items := []IndexItem{
		{Tag: blog.Tag{Name: "zebra", Kind: blog.KindTag}, Count: 1},
		{Tag: blog.Tag{Name: "Église", Kind: blog.KindTag}, Count: 2},
		{Tag: blog.Tag{Name: "apple", Kind: blog.KindTag}, Count: 3},
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.TagIndex(blog.KindTag, items)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestTagIndex_RejectsUnknownKind(t *testing.T) {
	r := testRenderer(t)

	_, err := r.TagIndex(blog.TagKind("bogus"), nil)
	assert.Error(t, err)
}

func TestPage_WrapsBodyAndSidebar(t *testing.T) {
	r := testRenderer(t)

	page, err := r.Page("All entries", "<p>body</p>", "<aside>side</aside>")
	require.NoError(t, err)

	s := string(page)
	assert.Contains(t, s, "<title>All entries | lambdalog</title>")
	assert.Contains(t, s, "<p>body</p>")
	assert.Contains(t, s, "<aside>side</aside>")
}

func TestPage_EmptyTitleUsesSiteNameOnly(t *testing.T) {
	r := testRenderer(t)

	page, err := r.Page("", "", "")
	require.NoError(t, err)

	assert.Contains(t, string(page), "<title>lambdalog</title>")
}

func TestEntryItem_TimeAttributeIsUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	at := time.Date(2020, time.June, 1, 1, 0, 0, 0, loc)
	e := blog.Entry{Slug: "tz", Title: "TZ", PostedAt: &at}

	item := entryItem(e, e.URL(), nil, nil)
	assert.Equal(t, "2020-05-31T23:00:00Z", item.PostedAttr)
}
