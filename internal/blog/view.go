package blog

import "time"

// ViewKind identifies one of the six archive view variants.
type ViewKind string

const (
	ViewAll      ViewKind = "all"
	ViewYear     ViewKind = "year"
	ViewMonth    ViewKind = "month"
	ViewTag      ViewKind = "tag"
	ViewCategory ViewKind = "category"
	ViewSeries   ViewKind = "series"
)

// ViewArchive describes which slice of the archive is being rendered.
// It drives both the store's query filter and the renderer's shape.
// Only the fields relevant to Kind are set; use the constructors.
type ViewArchive struct {
	Kind  ViewKind
	Year  int        // ViewYear, ViewMonth
	Month time.Month // ViewMonth
	Tag   string     // ViewTag, ViewCategory, ViewSeries
}

// ArchiveAll is the full archive view.
func ArchiveAll() ViewArchive {
	return ViewArchive{Kind: ViewAll}
}

// ArchiveYear views one calendar year.
func ArchiveYear(year int) ViewArchive {
	return ViewArchive{Kind: ViewYear, Year: year}
}

// ArchiveMonth views one calendar month.
func ArchiveMonth(year int, month time.Month) ViewArchive {
	return ViewArchive{Kind: ViewMonth, Year: year, Month: month}
}

// ArchiveTag views entries carrying a plain tag.
func ArchiveTag(name string) ViewArchive {
	return ViewArchive{Kind: ViewTag, Tag: name}
}

// ArchiveCategory views entries in a category.
func ArchiveCategory(name string) ViewArchive {
	return ViewArchive{Kind: ViewCategory, Tag: name}
}

// ArchiveSeries views entries in a series.
func ArchiveSeries(name string) ViewArchive {
	return ViewArchive{Kind: ViewSeries, Tag: name}
}

// TagKind returns the tag kind a tag-filtered view selects on,
// and false for the date-based views.
func (v ViewArchive) TagKind() (TagKind, bool) {
	switch v.Kind {
	case ViewTag:
		return KindTag, true
	case ViewCategory:
		return KindCategory, true
	case ViewSeries:
		return KindSeries, true
	case ViewAll, ViewYear, ViewMonth:
		return "", false
	}
	return "", false
}

// ViewIndex identifies one of the four archive index pages the sidebar
// links to. The sidebar renders the active index as disabled text.
type ViewIndex string

const (
	IndexHistory    ViewIndex = "history"
	IndexTags       ViewIndex = "tags"
	IndexCategories ViewIndex = "categories"
	IndexSeries     ViewIndex = "series"
)

// IndexFor returns the index page an archive view belongs under.
func IndexFor(v ViewArchive) ViewIndex {
	switch v.Kind {
	case ViewAll, ViewYear, ViewMonth:
		return IndexHistory
	case ViewTag:
		return IndexTags
	case ViewCategory:
		return IndexCategories
	case ViewSeries:
		return IndexSeries
	}
	return IndexHistory
}
