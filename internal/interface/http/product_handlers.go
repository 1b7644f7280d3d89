package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	domproduct "example.com/shopping-list/internal/domain/product"
)

type productRequest struct {
	Name     string `json:"name" validate:"required,notblank"`
	Quantity string `json:"quantity"`
	Price    string `json:"price"`
	Store    string `json:"store"`
	Category string `json:"category"`
	Notes    string `json:"notes"`
	Checked  bool   `json:"checked"`
}

func (req productRequest) toItem() domproduct.Item {
	return domproduct.Item{
		Name:     req.Name,
		Quantity: req.Quantity,
		Price:    req.Price,
		Store:    req.Store,
		Category: req.Category,
		Notes:    req.Notes,
		Checked:  req.Checked,
	}
}

type deleteSelectedRequest struct {
	Items []domproduct.Item `json:"items" validate:"required"`
}

func (a *API) handleListProducts(w http.ResponseWriter, r *http.Request) {
	items, err := a.productSvc.GetAllProducts(r.Context(), chi.URLParam(r, "listID"))
	if err != nil {
		handleDomainError(w, err)
		return
	}

	q := r.URL.Query()
	if criterion := q.Get("sort"); criterion != "" {
		a.productSvc.SortProducts(items, criterion, q.Get("order") != "desc")
	}
	if checkedLast := q.Get("checked_last"); checkedLast == "1" || checkedLast == "true" {
		items = a.productSvc.MoveSelectedToEnd(items)
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": items})
}

func (a *API) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	item := req.toItem()
	if err := a.productSvc.SaveOrUpdate(r.Context(), &item, chi.URLParam(r, "listID")); err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (a *API) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	item := req.toItem()
	item.ID = chi.URLParam(r, "id")
	if err := a.productSvc.SaveOrUpdate(r.Context(), &item, chi.URLParam(r, "listID")); err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (a *API) handleDeleteAllProducts(w http.ResponseWriter, r *http.Request) {
	if err := a.productSvc.DeleteAllFromList(r.Context(), chi.URLParam(r, "listID")); err != nil {
		handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleDeleteSelected(w http.ResponseWriter, r *http.Request) {
	var req deleteSelectedRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	a.productSvc.DeleteSelected(r.Context(), req.Items)
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleListTotals(w http.ResponseWriter, r *http.Request) {
	items, err := a.productSvc.GetAllProducts(r.Context(), chi.URLParam(r, "listID"))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	total, err := a.productSvc.ComputeTotals(items)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, total)
}

func (a *API) handleListInfo(w http.ResponseWriter, r *http.Request) {
	info, err := a.productSvc.GetInfo(r.Context(), chi.URLParam(r, "listID"), r.URL.Query().Get("currency"))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(info))
}

func (a *API) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	item, err := a.productSvc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	if item == nil {
		respondError(w, http.StatusNotFound, domproduct.ErrProductNotFound)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (a *API) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := a.productSvc.DeleteByID(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleAutoComplete(w http.ResponseWriter, r *http.Request) {
	lists, err := a.productSvc.GetAutoCompleteLists(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lists)
}
