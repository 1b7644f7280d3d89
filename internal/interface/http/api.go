package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"golang.org/x/time/rate"

	domproduct "example.com/shopping-list/internal/domain/product"
	domlist "example.com/shopping-list/internal/domain/shoppinglist"
	productuc "example.com/shopping-list/internal/usecase/product"
	listuc "example.com/shopping-list/internal/usecase/shoppinglist"
)

type API struct {
	listSvc    *listuc.Service
	productSvc *productuc.Service
	validator  *validator.Validate
	limiter    *rate.Limiter
}

type Dependencies struct {
	ListService    *listuc.Service
	ProductService *productuc.Service
	// Limiter throttles every request; nil disables throttling.
	Limiter *rate.Limiter
}

func NewAPI(deps Dependencies) *API {
	validate := validator.New()
	_ = validate.RegisterValidation("notblank", validators.NotBlank)
	return &API{
		listSvc:    deps.ListService,
		productSvc: deps.ProductService,
		limiter:    deps.Limiter,
		validator:  validate,
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(a.rateLimit)
	r.Use(chimw.AllowContentType("application/json", "text/plain"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/autocomplete", a.handleAutoComplete)

		r.Route("/products", func(rr chi.Router) {
			rr.Get("/{id}", a.handleGetProduct)
			rr.Delete("/{id}", a.handleDeleteProduct)
		})

		r.Route("/lists", func(rr chi.Router) {
			rr.Get("/", a.handleListLists)
			rr.Post("/", a.handleCreateList)

			rr.Route("/{listID}", func(lr chi.Router) {
				lr.Get("/", a.handleGetList)
				lr.Put("/", a.handleUpdateList)
				lr.Delete("/", a.handleDeleteList)

				lr.Get("/totals", a.handleListTotals)
				lr.Get("/info", a.handleListInfo)

				lr.Route("/products", func(pr chi.Router) {
					pr.Get("/", a.handleListProducts)
					pr.Post("/", a.handleCreateProduct)
					pr.Delete("/", a.handleDeleteAllProducts)
					pr.Post("/delete-selected", a.handleDeleteSelected)
					pr.Put("/{id}", a.handleUpdateProduct)
				})
			})
		})
	})

	return r
}

func (a *API) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return a.validator.Struct(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func respondError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func parseIDParam(r *http.Request, key string) (int64, error) {
	idStr := chi.URLParam(r, key)
	return strconv.ParseInt(idStr, 10, 64)
}

func mapList(l *domlist.List) map[string]any {
	return map[string]any{
		"id":    l.ID,
		"name":  l.Name,
		"notes": l.Notes,
	}
}

func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domproduct.ErrProductNotFound),
		errors.Is(err, domlist.ErrListNotFound):
		respondError(w, http.StatusNotFound, err)
	case errors.Is(err, domproduct.ErrMalformedID),
		errors.Is(err, domproduct.ErrMalformedQuantity),
		errors.Is(err, domproduct.ErrMalformedPrice),
		errors.Is(err, domlist.ErrInvalidListID):
		respondError(w, http.StatusBadRequest, err)
	case errors.Is(err, domlist.ErrListInvalidName),
		errors.Is(err, domproduct.ErrProductInvalidName):
		respondError(w, http.StatusUnprocessableEntity, err)
	default:
		respondError(w, http.StatusInternalServerError, err)
	}
}
