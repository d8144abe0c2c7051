package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/lambdalog/lambdalog/internal/archive"
	"github.com/lambdalog/lambdalog/internal/blog"
	"github.com/lambdalog/lambdalog/internal/render"
)

// handleHome renders one page of the home listing. The page number comes
// from the path ("/home/{page}") and defaults to 1 on "/".
func (s *Server) handleHome(r *http.Request) (*response, error) {
	page := 1
	if raw := r.PathValue("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return redirectTo("/not-found")
		}
		page = n
	}

	size := s.cfg.Site.PageSize
	entries, err := s.store.ListPublished(r.Context(), size, (page-1)*size)
	if err != nil {
		return nil, err
	}
	total, err := s.store.CountPublished(r.Context())
	if err != nil {
		return nil, err
	}
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		return redirectTo("/not-found")
	}

	body, err := s.render.Home(entries, page, totalPages)
	if err != nil {
		return nil, err
	}
	return &response{body: body}, nil
}

// handleEntryByID serves /entry/id/{id}.
func (s *Server) handleEntryByID(r *http.Request) (*response, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return redirectTo("/not-found")
	}
	e, err := s.store.EntryByID(r.Context(), id)
	if err != nil {
		return nil, err
	}
	return s.entryResponse(e)
}

// handleEntryBySlug serves /entry/{slug}.
func (s *Server) handleEntryBySlug(r *http.Request) (*response, error) {
	e, err := s.store.EntryBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		return nil, err
	}
	return s.entryResponse(e)
}

func (s *Server) entryResponse(e blog.Entry) (*response, error) {
	body, err := s.render.Entry(e)
	if err != nil {
		return nil, err
	}
	return &response{title: e.Title, body: body}, nil
}

// handleLegacyEntry redirects the short-link forms /e/{slug} and
// /id/e/{slug} to the canonical entry path.
func (s *Server) handleLegacyEntry(r *http.Request) (*response, error) {
	return redirectTo("/entry/" + r.PathValue("slug"))
}

func (s *Server) handleArchiveAll(r *http.Request) (*response, error) {
	return s.archiveResponse(r, blog.ArchiveAll())
}

func (s *Server) handleArchiveYear(r *http.Request) (*response, error) {
	year, ok := parseYear(r.PathValue("year"))
	if !ok {
		return redirectTo("/not-found")
	}
	return s.archiveResponse(r, blog.ArchiveYear(year))
}

func (s *Server) handleArchiveMonth(r *http.Request) (*response, error) {
	year, ok := parseYear(r.PathValue("year"))
	if !ok {
		return redirectTo("/not-found")
	}
	month, ok := parseMonth(r.PathValue("month"))
	if !ok {
		return redirectTo("/not-found")
	}
	return s.archiveResponse(r, blog.ArchiveMonth(year, month))
}

// handleArchiveTagged builds the handler for one of the three
// tag-filtered views; view is the matching ViewArchive constructor.
func (s *Server) handleArchiveTagged(view func(string) blog.ViewArchive) handlerFunc {
	return func(r *http.Request) (*response, error) {
		return s.archiveResponse(r, view(r.PathValue("tag")))
	}
}

// archiveResponse fetches, groups and renders one archive view.
func (s *Server) archiveResponse(r *http.Request, view blog.ViewArchive) (*response, error) {
	var active *blog.Tag
	if kind, ok := view.TagKind(); ok {
		// Unknown tag names are not-found, not an empty listing.
		tag, err := s.store.TagByName(r.Context(), kind, view.Tag)
		if err != nil {
			return nil, err
		}
		active = &tag
	}

	entries, err := s.store.ListArchive(r.Context(), view)
	if err != nil {
		return nil, err
	}
	items := make([]archive.Item, len(entries))
	for i, e := range entries {
		items[i] = archive.NewItem(e)
	}
	listing, err := archive.Group(items)
	if err != nil {
		return nil, err
	}

	body, err := s.render.Archive(view, listing, active)
	if err != nil {
		return nil, err
	}
	return &response{
		title: render.ViewTitle(view),
		body:  body,
		index: blog.IndexFor(view),
	}, nil
}

// handleTagIndex builds the handler for one tag kind's index page.
func (s *Server) handleTagIndex(kind blog.TagKind) handlerFunc {
	indexes := map[blog.TagKind]blog.ViewIndex{
		blog.KindTag:      blog.IndexTags,
		blog.KindCategory: blog.IndexCategories,
		blog.KindSeries:   blog.IndexSeries,
	}
	titles := map[blog.TagKind]string{
		blog.KindTag:      "Tags",
		blog.KindCategory: "Categories",
		blog.KindSeries:   "Series",
	}
	return func(r *http.Request) (*response, error) {
		counts, err := s.store.ListTags(r.Context(), kind)
		if err != nil {
			return nil, err
		}
		items := make([]render.IndexItem, len(counts))
		for i, tc := range counts {
			items[i] = render.IndexItem{Tag: tc.Tag, Count: tc.EntryCount}
		}
		body, err := s.render.TagIndex(kind, items)
		if err != nil {
			return nil, err
		}
		return &response{title: titles[kind], body: body, index: indexes[kind]}, nil
	}
}

// handleNotFound renders the dedicated not-found page with 404 status.
func (s *Server) handleNotFound(r *http.Request) (*response, error) {
	body, err := s.render.NotFound()
	if err != nil {
		return nil, err
	}
	return &response{title: "Not found", body: body, status: http.StatusNotFound}, nil
}

func parseYear(raw string) (int, bool) {
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1 {
		return 0, false
	}
	return year, true
}

func parseMonth(raw string) (time.Month, bool) {
	m, err := strconv.Atoi(raw)
	if err != nil || m < 1 || m > 12 {
		return 0, false
	}
	return time.Month(m), true
}
