package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/lambdalog/lambdalog/internal/blog"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// Renderer renders site pages. Holds parsed templates only; safe for
// concurrent use.
type Renderer struct {
	site string
	tmpl *template.Template
}

// New parses the embedded templates and returns a Renderer for a site
// with the given title.
func New(site string) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{site: site, tmpl: tmpl}, nil
}

// Link is an href/text pair.
type Link struct {
	Href string
	Text string
}

type layoutData struct {
	Site    string
	Title   string
	Body    template.HTML
	Sidebar template.HTML
	Footer  string
}

// Page wraps a rendered body and sidebar in the site layout.
// title may be empty for the home page.
func (r *Renderer) Page(title string, body, sidebar template.HTML) (template.HTML, error) {
	return r.exec("layout", layoutData{
		Site:    r.site,
		Title:   title,
		Body:    body,
		Sidebar: sidebar,
		Footer:  r.site,
	})
}

// exec runs a named template into a fragment.
func (r *Renderer) exec(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// itemData is one rendered entry row.
type itemData struct {
	Posted      string
	PostedAttr  string
	CommentsURL string
	URL         string
	Title       string
	Tags        []tagData
}

type tagData struct {
	Name string
	Kind string
	URL  string
}

// humanTime is the display format for posting times. The machine-readable
// RFC 3339 form goes in the datetime attribute.
const humanTime = "January 2, 2006"

// entryItem builds the row data for one entry, omitting omit from the
// inline tag list when non-nil (the active tag of a filtered view).
func entryItem(e blog.Entry, url string, tags []blog.Tag, omit *blog.Tag) itemData {
	item := itemData{
		URL:         url,
		Title:       e.Title,
		CommentsURL: url + "#comments",
	}
	if e.PostedAt != nil {
		item.Posted = e.PostedAt.Format(humanTime)
		item.PostedAttr = e.PostedAt.UTC().Format(time.RFC3339)
	}
	for _, t := range tags {
		if omit != nil && t.Name == omit.Name && t.Kind == omit.Kind {
			continue
		}
		item.Tags = append(item.Tags, tagData{
			Name: t.Name,
			Kind: string(t.Kind),
			URL:  t.URL(),
		})
	}
	return item
}
