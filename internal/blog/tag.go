package blog

// TagKind classifies a tag label. Plain tags, categories and series share
// one association table; the kind decides which archive index lists them.
type TagKind string

const (
	KindTag      TagKind = "tag"
	KindCategory TagKind = "category"
	KindSeries   TagKind = "series"
)

// ValidTagKinds defines the allowed tag kinds.
var ValidTagKinds = map[TagKind]bool{
	KindTag:      true,
	KindCategory: true,
	KindSeries:   true,
}

// Tag is a label attached to entries, many-to-many.
type Tag struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Kind        TagKind `json:"kind"`
	Description string  `json:"description,omitempty"`
}

// URL returns the tag's archive view path.
func (t Tag) URL() string {
	switch t.Kind {
	case KindCategory:
		return "/categories/" + t.Name
	case KindSeries:
		return "/series/" + t.Name
	default:
		return "/tags/" + t.Name
	}
}
