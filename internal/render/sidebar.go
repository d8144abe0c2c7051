package render

import (
	"html/template"

	"github.com/lambdalog/lambdalog/internal/blog"
)

type sidebarData struct {
	Nav    []navItem
	Recent []Link
}

type navItem struct {
	Href   string
	Text   string
	Active bool
}

// sidebarNav is the fixed four-item index navigation.
var sidebarNav = []struct {
	Index blog.ViewIndex
	Href  string
	Text  string
}{
	{blog.IndexHistory, "/entries", "History"},
	{blog.IndexTags, "/tags", "Tags"},
	{blog.IndexCategories, "/categories", "Categories"},
	{blog.IndexSeries, "/series", "Series"},
}

// Sidebar renders the navigation panel. active marks the index page the
// current view belongs under, rendered as disabled text instead of a
// link; pass the empty string on pages outside every index. recent is
// the most-recent-entries list, fetched fresh on every request.
func (r *Renderer) Sidebar(active blog.ViewIndex, recent []blog.Entry) (template.HTML, error) {
	data := sidebarData{}
	for _, item := range sidebarNav {
		data.Nav = append(data.Nav, navItem{
			Href:   item.Href,
			Text:   item.Text,
			Active: item.Index == active && active != "",
		})
	}
	for _, e := range recent {
		data.Recent = append(data.Recent, Link{Href: e.URL(), Text: e.Title})
	}
	return r.exec("sidebar", data)
}
