package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/leeforge/webresult/http/binding"
	"github.com/leeforge/webresult/http/middleware"
	"github.com/leeforge/webresult/logging"
	"github.com/leeforge/webresult/metrics"
	"github.com/leeforge/webresult/pagination"
	"github.com/leeforge/webresult/render/httpresult"
	"github.com/leeforge/webresult/response"
)

type createItemRequest struct {
	Name  string   `json:"name" validate:"required,max=64"`
	Price *float64 `json:"price" validate:"required,gte=0"`
}

type app struct {
	items     *store
	paginator *pagination.Parser
	writer    *httpresult.Writer
	metrics   *metrics.Collector
	logger    logging.Logger

	maxBodyBytes int64
}

func newApp(cfg Config, logger logging.Logger, items *store) *app {
	collector := metrics.NewCollector()
	return &app{
		items: items,
		paginator: pagination.NewParser(
			pagination.WithDefaultLimit(cfg.Pagination.DefaultLimit),
			pagination.WithMaxLimit(cfg.Pagination.MaxLimit),
		),
		writer: httpresult.New(
			httpresult.WithTraceIDs(),
			httpresult.WithObserver(collector),
		),
		metrics:      collector,
		logger:       logger,
		maxBodyBytes: cfg.Server.MaxBodyBytes,
	}
}

func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.TraceID())
	r.Use(logging.HTTPMiddleware(a.logger))
	r.Use(a.metrics.Middleware)
	r.Use(middleware.Recover(a.writer))

	r.NotFound(a.writer.Handler(func(r *http.Request) response.Result {
		return response.FailWith(response.ErrorObjectf(http.StatusNotFound, "no route for %s %s", r.Method, r.URL.Path).
			With(response.WithStatusTitle()))
	}).ServeHTTP)
	r.MethodNotAllowed(a.writer.Handler(func(r *http.Request) response.Result {
		return response.FailWith(response.ErrorObjectf(http.StatusMethodNotAllowed, "method %s not allowed", r.Method).
			With(response.WithStatusTitle()))
	}).ServeHTTP)

	r.Get("/healthz", a.writer.Handler(func(*http.Request) response.Result {
		return response.Ok(map[string]string{"status": "ok"})
	}).ServeHTTP)

	r.Method(http.MethodGet, "/metrics", a.metrics.Handler())

	r.Route("/items", func(r chi.Router) {
		r.Get("/", a.writer.Handler(a.listItems).ServeHTTP)
		r.Post("/", a.writer.Handler(a.createItem).ServeHTTP)
		r.Get("/{id}", a.writer.Handler(a.getItem).ServeHTTP)
	})
	return r
}

func (a *app) listItems(r *http.Request) response.Result {
	opts, err := a.paginator.FromRequest(r)
	if err != nil {
		return response.Fail(response.FromError(err))
	}
	if opts.Sort != nil {
		if _, ok := sortKeys[*opts.Sort]; !ok {
			return response.FailWith(response.ErrorObjectf(http.StatusBadRequest, "cannot sort by %q", *opts.Sort).
				With(response.WithStatusTitle(), response.WithSourceParameter("sort")))
		}
	}
	return response.Ok(a.items.list(opts))
}

func (a *app) getItem(r *http.Request) response.Result {
	id := chi.URLParam(r, "id")
	it, ok := a.items.get(id)
	if !ok {
		return response.FailWith(response.ErrorObjectf(http.StatusNotFound, "item %s not found", id).
			With(response.WithStatusTitle(), response.WithCode("item_not_found")))
	}
	return response.Ok(it)
}

func (a *app) createItem(r *http.Request) response.Result {
	var req createItemRequest
	if err := binding.JSONLimit(r, &req, a.maxBodyBytes); err != nil {
		return response.Fail(response.FromError(err))
	}
	it := a.items.add(req.Name, *req.Price)
	logging.FromContext(r.Context()).Info("item.created", zap.String("id", it.ID))
	return response.Ok(it)
}
