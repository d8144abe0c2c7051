package render

import (
	"fmt"
	"html/template"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/lambdalog/lambdalog/internal/blog"
)

// IndexItem is one row of a tag/category/series index page.
type IndexItem struct {
	Tag   blog.Tag
	Count int
}

type indexData struct {
	Title string
	Items []indexItemData
}

type indexItemData struct {
	Name        string
	Kind        string
	URL         string
	Count       int
	Description string
}

// indexTitles maps a tag kind to its index page title.
var indexTitles = map[blog.TagKind]string{
	blog.KindTag:      "Tags",
	blog.KindCategory: "Categories",
	blog.KindSeries:   "Series",
}

// TagIndex renders the index page for one tag kind. Items are sorted
// with an English collator so case and diacritics don't scatter the
// listing the way byte order would.
func (r *Renderer) TagIndex(kind blog.TagKind, items []IndexItem) (template.HTML, error) {
	title, ok := indexTitles[kind]
	if !ok {
		return "", fmt.Errorf("render: no index page for tag kind %q", kind)
	}

	// A Collator buffers state across comparisons and is not safe for
	// concurrent use, so each call gets its own.
	coll := collate.New(language.English, collate.IgnoreCase)

	sorted := make([]IndexItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return coll.CompareString(sorted[i].Tag.Name, sorted[j].Tag.Name) < 0
	})

	data := indexData{Title: title}
	for _, item := range sorted {
		data.Items = append(data.Items, indexItemData{
			Name:        item.Tag.Name,
			Kind:        string(item.Tag.Kind),
			URL:         item.Tag.URL(),
			Count:       item.Count,
			Description: item.Tag.Description,
		})
	}
	return r.exec("index", data)
}
