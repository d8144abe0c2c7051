package render

import (
	"fmt"
	"html/template"
	"time"

	"github.com/lambdalog/lambdalog/internal/blog"
)

type entryData struct {
	Title      string
	Draft      bool
	Posted     string
	PostedAttr string
	Tags       []tagData
	Body       template.HTML
}

// Entry renders a single entry page. The body arrives as pre-rendered
// HTML from the authoring side and is embedded unescaped.
func (r *Renderer) Entry(e blog.Entry) (template.HTML, error) {
	data := entryData{
		Title: e.Title,
		Draft: !e.Published(),
		Body:  template.HTML(e.Body),
	}
	if e.PostedAt != nil {
		data.Posted = e.PostedAt.Format(humanTime)
		data.PostedAttr = e.PostedAt.UTC().Format(time.RFC3339)
	}
	for _, t := range e.Tags {
		data.Tags = append(data.Tags, tagData{Name: t.Name, Kind: string(t.Kind), URL: t.URL()})
	}
	return r.exec("entry", data)
}

type homeData struct {
	Items []itemData
	Newer string
	Older string
}

// Home renders one page of the home listing with pagination links.
// page is 1-based; totalPages comes from the published-entry count.
func (r *Renderer) Home(entries []blog.Entry, page, totalPages int) (template.HTML, error) {
	data := homeData{}
	for _, e := range entries {
		data.Items = append(data.Items, entryItem(e, e.URL(), e.Tags, nil))
	}
	if page > 1 {
		if page == 2 {
			data.Newer = "/"
		} else {
			data.Newer = fmt.Sprintf("/home/%d", page-1)
		}
	}
	if page < totalPages {
		data.Older = fmt.Sprintf("/home/%d", page+1)
	}
	return r.exec("home", data)
}

// NotFound renders the not-found page body.
func (r *Renderer) NotFound() (template.HTML, error) {
	return r.exec("notfound", nil)
}
