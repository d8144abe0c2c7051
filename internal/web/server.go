package web

import (
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/lambdalog/lambdalog/internal/blog"
	"github.com/lambdalog/lambdalog/internal/config"
	"github.com/lambdalog/lambdalog/internal/render"
	"github.com/lambdalog/lambdalog/internal/store"
)

//go:embed static/site.css
var siteCSS []byte

// recentCount is the length of the sidebar's recent-entries list.
const recentCount = 5

// Server handles HTTP requests for the blog.
type Server struct {
	cfg    *config.Config
	store  *store.Store
	render *render.Renderer
	log    *log.Logger
}

// New creates a web server over the given store and renderer.
func New(cfg *config.Config, st *store.Store, r *render.Renderer, logger *log.Logger) *Server {
	return &Server{cfg: cfg, store: st, render: r, log: logger}
}

// Run starts the HTTP server on the configured address.
func (s *Server) Run() error {
	s.log.Printf("serving on %s", s.cfg.Server.Addr)
	return http.ListenAndServe(s.cfg.Server.Addr, s.Handler())
}

// Handler builds the route table wrapped in the middleware stack.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Home listing
	mux.HandleFunc("GET /{$}", s.dispatch(s.handleHome))
	mux.HandleFunc("GET /home/{page}", s.dispatch(s.handleHome))

	// Single entries, with legacy short-link redirects
	mux.HandleFunc("GET /entry/id/{id}", s.dispatch(s.handleEntryByID))
	mux.HandleFunc("GET /entry/{slug}", s.dispatch(s.handleEntryBySlug))
	mux.HandleFunc("GET /e/{slug}", s.dispatch(s.handleLegacyEntry))
	mux.HandleFunc("GET /id/e/{slug}", s.dispatch(s.handleLegacyEntry))

	// Archive views
	mux.HandleFunc("GET /entries", s.dispatch(s.handleArchiveAll))
	mux.HandleFunc("GET /entries/in/{year}", s.dispatch(s.handleArchiveYear))
	mux.HandleFunc("GET /entries/in/{year}/{month}", s.dispatch(s.handleArchiveMonth))
	mux.HandleFunc("GET /tags/{tag}", s.dispatch(s.handleArchiveTagged(blog.ArchiveTag)))
	mux.HandleFunc("GET /categories/{tag}", s.dispatch(s.handleArchiveTagged(blog.ArchiveCategory)))
	mux.HandleFunc("GET /series/{tag}", s.dispatch(s.handleArchiveTagged(blog.ArchiveSeries)))

	// Index pages
	mux.HandleFunc("GET /tags", s.dispatch(s.handleTagIndex(blog.KindTag)))
	mux.HandleFunc("GET /categories", s.dispatch(s.handleTagIndex(blog.KindCategory)))
	mux.HandleFunc("GET /series", s.dispatch(s.handleTagIndex(blog.KindSeries)))

	// Not-found page and the unmatched-path catch-all
	mux.HandleFunc("GET /not-found", s.dispatch(s.handleNotFound))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/not-found", http.StatusFound)
	})

	mux.HandleFunc("GET /static/site.css", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Write(siteCSS)
	})

	return s.withRecovery(s.withRequestLog(mux))
}

// response is what every page handler returns: either a redirect target
// or a rendered body with its page metadata.
type response struct {
	redirect string
	status   int // 0 means 200
	title    string
	body     template.HTML
	index    blog.ViewIndex // active sidebar index, "" for none
}

func redirectTo(target string) (*response, error) {
	return &response{redirect: target}, nil
}

type handlerFunc func(r *http.Request) (*response, error)

// dispatch converts a handler's response uniformly: redirects become 302s,
// pages get a sidebar and the site layout. A store.ErrNotFound redirects
// to the not-found page; anything else is a server fault.
func (s *Server) dispatch(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h(r)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				http.Redirect(w, r, "/not-found", http.StatusFound)
				return
			}
			s.fail(w, r, err)
			return
		}
		if resp.redirect != "" {
			http.Redirect(w, r, resp.redirect, http.StatusFound)
			return
		}

		recent, err := s.store.Recent(r.Context(), recentCount)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		sidebar, err := s.render.Sidebar(resp.index, recent)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		page, err := s.render.Page(resp.title, resp.body, sidebar)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		status := resp.status
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		fmt.Fprint(w, page)
	}
}

// fail logs the error and answers 500. Contract violations from the
// grouper land here too: broken grouping input must never render.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Printf("ERROR %s %s: %v", r.Method, r.URL.Path, err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
