package catalog

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ProductAPI/pkg/kit"
)

const (
	welcomeText = "Welcome to the Product API! Go to /api/products to see all products."

	msgProductNotFound = "Product not found"
	msgProductDeleted  = "Product deleted"
	msgRouteNotFound   = "Route not found"
	msgMethodNotAllow  = "Method not allowed"

	readyTimeout = 1 * time.Second
)

type Server struct {
	Store Store
	Log   *zap.Logger
}

type deleteResp struct {
	Message string    `json:"message"`
	Deleted []Product `json:"deleted"`
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(s.handle(func(http.ResponseWriter, *http.Request) error {
		return kit.NotFound(msgRouteNotFound)
	}))
	r.MethodNotAllowed(s.handle(func(http.ResponseWriter, *http.Request) error {
		return kit.MethodNotAllowed(msgMethodNotAllow)
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) { kit.WriteText(w, http.StatusOK, welcomeText) })
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", s.handle(s.ready))

	// The static stats route always wins over {id} in chi's tree, so "stats"
	// is never looked up as a product id.
	r.Get("/api/products", s.handle(s.list))
	r.Post("/api/products", s.handle(s.create))
	r.Get("/api/products/stats", s.handle(s.stats))
	r.Get("/api/products/{id}", s.handle(s.get))
	r.Put("/api/products/{id}", s.handle(s.update))
	r.Delete("/api/products/{id}", s.handle(s.delete))

	return r
}

func (s *Server) handle(fn kit.HandlerFunc) http.HandlerFunc {
	return kit.Handle(s.logger(), fn)
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.Store.Ping(ctx); err != nil {
		return kit.Unavailable("not ready", err)
	}
	w.WriteHeader(http.StatusOK)
	return nil
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) error {
	q, err := ParseListQuery(r.URL.Query())
	if err != nil {
		return err
	}

	page, err := s.Store.List(r.Context(), q)
	if err != nil {
		return storeError(err)
	}
	kit.WriteJSON(w, http.StatusOK, page)
	return nil
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) error {
	p, err := s.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return storeError(err)
	}
	kit.WriteJSON(w, http.StatusOK, p)
	return nil
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) error {
	in, err := decodeAndValidate(r)
	if err != nil {
		return err
	}

	p, err := s.Store.Create(r.Context(), in)
	if err != nil {
		return storeError(err)
	}

	s.logger().Info("product created", zap.String("id", p.ID), zap.String("category", p.Category))
	kit.WriteJSON(w, http.StatusCreated, p)
	return nil
}

// update validates the incoming body before looking the product up; the body
// must carry every required field, so the merged record stays valid.
func (s *Server) update(w http.ResponseWriter, r *http.Request) error {
	in, err := decodeAndValidate(r)
	if err != nil {
		return err
	}

	p, err := s.Store.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		return storeError(err)
	}
	kit.WriteJSON(w, http.StatusOK, p)
	return nil
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) error {
	p, err := s.Store.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return storeError(err)
	}

	s.logger().Info("product deleted", zap.String("id", p.ID))
	kit.WriteJSON(w, http.StatusOK, deleteResp{
		Message: msgProductDeleted,
		Deleted: []Product{p},
	})
	return nil
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) error {
	st, err := s.Store.Stats(r.Context())
	if err != nil {
		return storeError(err)
	}
	kit.WriteJSON(w, http.StatusOK, st)
	return nil
}

func decodeAndValidate(r *http.Request) (ProductInput, error) {
	req, err := DecodeProductRequest(r)
	if err != nil {
		return ProductInput{}, err
	}
	return ValidateProduct(req)
}

func storeError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return kit.NotFound(msgProductNotFound)
	}
	return kit.Internal(err)
}
