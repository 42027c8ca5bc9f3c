package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"time"

	"expenditure/internal/api"
	"expenditure/internal/core"
	"expenditure/internal/log"
	"expenditure/internal/middleware/security"
	"expenditure/internal/middleware/trace"
	appweb "expenditure/web"
)

// Page template names.
const (
	pageDashboard    = "dashboard"
	pageTransactions = "transactions"
	pageTransaction  = "transaction"
	pageExpenditure  = "expenditure"
	pageError        = "error"
)

var pageNames = []string{pageDashboard, pageTransactions, pageTransaction, pageExpenditure, pageError}

// Backend is the set of API calls the pages need. *api.Client satisfies it.
type Backend interface {
	MonthlySummary(ctx context.Context, year, month int) (*core.Envelope[core.MonthlySummary], error)
	WeeklySummary(ctx context.Context) (*core.Envelope[core.WeeklySummary], error)
	Projection(ctx context.Context, year, month int) (*core.Envelope[core.ProjectionSummary], error)
	CategoryBreakdown(ctx context.Context, year, month int) (*core.Envelope[core.CategoryBreakdown], error)
	Transactions(ctx context.Context, page api.PageRequest) (*core.Envelope[core.PaginatedData[core.Transaction]], error)
	Transaction(ctx context.Context, id int64) (*core.Envelope[core.Transaction], error)
	CreateTransaction(ctx context.Context, payload core.TransactionCreatePayload) (*core.Envelope[core.Transaction], error)
}

// Options configures optional server collaborators.
type Options struct {
	Logger *log.Logger

	// ProxyTarget enables the /api/ development proxy when non-empty.
	ProxyTarget string

	// Now overrides the clock used for default periods.
	Now func() time.Time
}

type Server struct {
	http.Server
	backend Backend
	logger  *log.Logger
	pages   map[string]*template.Template
	now     func() time.Time
	started time.Time
	tracer  *trace.Middleware
}

// NewServer builds the web front end around a backend client.
func NewServer(addr string, backend Backend, opts Options) (*Server, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	pages, err := parsePages(appweb.TemplatesFS)
	if err != nil {
		return nil, err
	}

	s := &Server{
		backend: backend,
		logger:  logger.WithComponent(log.ComponentHTTP),
		pages:   pages,
		now:     now,
		started: time.Now(),
		tracer:  trace.NewMiddleware(logger),
	}

	mux := http.NewServeMux()

	static, err := appweb.Static()
	if err != nil {
		return nil, fmt.Errorf("mount static assets: %w", err)
	}
	mux.Handle("GET /static/", security.StaticAssets(3600)(http.StripPrefix("/static/", http.FileServer(http.FS(static)))))

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /dashboard", s.handleDashboard)
	mux.HandleFunc("GET /transactions", s.handleTransactions)
	mux.HandleFunc("POST /transactions", s.handleCreateTransaction)
	mux.HandleFunc("GET /transactions/{id}", s.handleTransaction)
	mux.HandleFunc("GET /expenditure", s.handleExpenditure)
	mux.HandleFunc("/", s.handleNotFound)

	// Page headers apply to rendered pages only; proxied API responses keep
	// the backend's headers.
	root := http.NewServeMux()
	root.Handle("/", security.Headers(security.DefaultHeadersConfig())(mux))

	if opts.ProxyTarget != "" {
		target, err := url.Parse(opts.ProxyTarget)
		if err != nil || target.Scheme == "" || target.Host == "" {
			return nil, fmt.Errorf("invalid proxy target %q", opts.ProxyTarget)
		}
		root.Handle(api.BasePath+"/", newAPIProxy(target, logger))
		s.logger.Info("API proxy enabled", log.FieldTarget, target.String())
	}

	s.Handler = s.tracer.Middleware(root)
	s.Addr = addr
	return s, nil
}

// parsePages parses each page together with the shared layout.
func parsePages(fsys fs.FS) (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(templateFuncs).ParseFS(fsys, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

var templateFuncs = template.FuncMap{
	"money": core.FormatMoney,
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}

// render writes a page, falling back to a plain 500 when the template fails.
func (s *Server) render(w http.ResponseWriter, r *http.Request, b *ResponseBuilder) {
	if err := b.Write(w, s.pages); err != nil {
		log.FromContext(r.Context()).WithComponent(log.ComponentTemplate).ErrorContext(r.Context(), "Template execution failed",
			log.NewFields().WithOperation(log.OpRender).WithError(err).ToSlice()...)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// layout carries values every page template reads.
type layout struct {
	Title  string
	Active string
	Notice string
	Flash  string
}
