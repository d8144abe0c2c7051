// Package importer ingests entry source files into the store. It is the
// authoring-side write path: the engine itself only reads.
//
// An entry file is a YAML front matter block between "---" fences
// followed by the pre-rendered HTML body. A directory may also carry a
// tags.yaml file with descriptions for tags, categories and series.
package importer

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lambdalog/lambdalog/internal/blog"
	"github.com/lambdalog/lambdalog/internal/store"
)

// Mode controls how errors are handled while importing a directory.
type Mode int

const (
	// FailFast stops on the first error encountered.
	FailFast Mode = iota
	// CollectAll collects all errors before returning.
	CollectAll
)

// ParseError reports a problem with one source file.
type ParseError struct {
	Code    string
	File    string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.File, e.Code, e.Message)
}

// Parse error codes.
const (
	ErrCodeNoFrontMatter = "NO_FRONT_MATTER"
	ErrCodeBadYAML       = "BAD_YAML"
	ErrCodeBadDate       = "BAD_DATE"
	ErrCodeMissingTitle  = "MISSING_TITLE"
)

// frontMatter is the YAML header of an entry file.
type frontMatter struct {
	Title      string   `yaml:"title"`
	Slug       string   `yaml:"slug,omitempty"`
	Date       string   `yaml:"date,omitempty"`
	Draft      bool     `yaml:"draft,omitempty"`
	Tags       []string `yaml:"tags,omitempty"`
	Categories []string `yaml:"categories,omitempty"`
	Series     []string `yaml:"series,omitempty"`
}

// tagsFile is the optional tags.yaml of an import directory.
type tagsFile struct {
	Tags       map[string]string `yaml:"tags,omitempty"`
	Categories map[string]string `yaml:"categories,omitempty"`
	Series     map[string]string `yaml:"series,omitempty"`
}

// Result summarizes an import run.
type Result struct {
	Files    int // entry files seen
	Imported int // entries upserted
	Drafts   int // of those, drafts
}

// Importer writes parsed entries into a store.
type Importer struct {
	store *store.Store
}

// New returns an Importer over the given store.
func New(s *store.Store) *Importer {
	return &Importer{store: s}
}

// ImportDir imports every *.html entry file under dir. With FailFast the
// first error aborts the run; with CollectAll all files are attempted
// and every error is returned. Already-imported slugs are updated in
// place, so re-running an import is idempotent.
func (im *Importer) ImportDir(ctx context.Context, dir string, mode Mode) (*Result, []error) {
	var errs []error
	result := &Result{}

	descriptions, err := loadTagsFile(dir)
	if err != nil {
		return nil, []error{err}
	}

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}
		result.Files++

		draft, err := im.importFile(ctx, path, descriptions)
		if err != nil {
			if mode == FailFast {
				return err
			}
			errs = append(errs, err)
			return nil
		}
		result.Imported++
		if draft {
			result.Drafts++
		}
		return nil
	})
	if walkErr != nil {
		errs = append(errs, walkErr)
	}

	if len(errs) > 0 {
		return result, errs
	}
	return result, nil
}

// importFile parses and upserts one entry file, reporting whether the
// entry is a draft.
func (im *Importer) importFile(ctx context.Context, path string, descriptions *tagsFile) (bool, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	fm, body, err := splitFrontMatter(path, src)
	if err != nil {
		return false, err
	}

	entry, err := entryFromFile(path, fm, body)
	if err != nil {
		return false, err
	}

	if err := im.store.UpsertEntry(ctx, &entry); err != nil {
		return false, err
	}

	tagIDs, err := im.ensureTags(ctx, fm, descriptions)
	if err != nil {
		return false, err
	}
	if err := im.store.SetEntryTags(ctx, entry.ID, tagIDs); err != nil {
		return false, err
	}
	return !entry.Published(), nil
}

// ensureTags creates the entry's labels in front-matter order: tags,
// then categories, then series.
func (im *Importer) ensureTags(ctx context.Context, fm frontMatter, descriptions *tagsFile) ([]int64, error) {
	var ids []int64
	lists := []struct {
		kind  blog.TagKind
		names []string
		descs map[string]string
	}{
		{blog.KindTag, fm.Tags, descriptions.Tags},
		{blog.KindCategory, fm.Categories, descriptions.Categories},
		{blog.KindSeries, fm.Series, descriptions.Series},
	}
	for _, l := range lists {
		for _, name := range l.names {
			tag, err := im.store.EnsureTag(ctx, l.kind, name, l.descs[name])
			if err != nil {
				return nil, err
			}
			ids = append(ids, tag.ID)
		}
	}
	return ids, nil
}

// entryFromFile builds the Entry for a parsed file. The slug defaults to
// the file name without extension.
func entryFromFile(path string, fm frontMatter, body string) (blog.Entry, error) {
	if strings.TrimSpace(fm.Title) == "" {
		return blog.Entry{}, &ParseError{Code: ErrCodeMissingTitle, File: path, Message: "front matter has no title"}
	}

	slug := fm.Slug
	if slug == "" {
		slug = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	entry := blog.Entry{Slug: slug, Title: fm.Title, Body: strings.TrimSpace(body)}

	if fm.Draft || fm.Date == "" {
		return entry, nil
	}

	at, err := parseDate(fm.Date)
	if err != nil {
		return blog.Entry{}, &ParseError{Code: ErrCodeBadDate, File: path, Message: err.Error()}
	}
	entry.PostedAt = &at
	return entry, nil
}

// parseDate accepts RFC 3339 or a bare date, taken as midnight UTC.
func parseDate(s string) (time.Time, error) {
	if at, err := time.Parse(time.RFC3339, s); err == nil {
		return at.UTC(), nil
	}
	at, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q is neither RFC 3339 nor YYYY-MM-DD", s)
	}
	return at, nil
}

var fence = []byte("---\n")

// splitFrontMatter separates the YAML header from the HTML body.
func splitFrontMatter(path string, src []byte) (frontMatter, string, error) {
	var fm frontMatter

	if !bytes.HasPrefix(src, fence) {
		return fm, "", &ParseError{Code: ErrCodeNoFrontMatter, File: path, Message: "file does not start with a --- fence"}
	}
	rest := src[len(fence):]
	end := bytes.Index(rest, fence)
	if end < 0 {
		return fm, "", &ParseError{Code: ErrCodeNoFrontMatter, File: path, Message: "front matter fence is not closed"}
	}

	if err := yaml.Unmarshal(rest[:end], &fm); err != nil {
		return fm, "", &ParseError{Code: ErrCodeBadYAML, File: path, Message: err.Error()}
	}
	return fm, string(rest[end+len(fence):]), nil
}

// loadTagsFile reads dir/tags.yaml if present; a missing file is fine.
func loadTagsFile(dir string) (*tagsFile, error) {
	var tf tagsFile
	src, err := os.ReadFile(filepath.Join(dir, "tags.yaml"))
	if os.IsNotExist(err) {
		return &tf, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tags.yaml: %w", err)
	}
	if err := yaml.Unmarshal(src, &tf); err != nil {
		return nil, &ParseError{Code: ErrCodeBadYAML, File: filepath.Join(dir, "tags.yaml"), Message: err.Error()}
	}
	return &tf, nil
}
