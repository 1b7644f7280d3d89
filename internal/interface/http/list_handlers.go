package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	domlist "example.com/shopping-list/internal/domain/shoppinglist"
)

type createListRequest struct {
	Name  string `json:"name" validate:"required"`
	Notes string `json:"notes"`
}

type updateListRequest struct {
	Name  string `json:"name"`
	Notes string `json:"notes"`
}

func (a *API) handleListLists(w http.ResponseWriter, r *http.Request) {
	lists, err := a.listSvc.List(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}

	resp := make([]map[string]any, 0, len(lists))
	for _, l := range lists {
		resp = append(resp, mapList(l))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": resp})
}

func (a *API) handleCreateList(w http.ResponseWriter, r *http.Request) {
	var req createListRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	list, err := a.listSvc.Create(r.Context(), &domlist.List{
		Name:  req.Name,
		Notes: req.Notes,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapList(list))
}

func (a *API) handleGetList(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "listID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	list, err := a.listSvc.GetByID(r.Context(), id)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapList(list))
}

func (a *API) handleUpdateList(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "listID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	var req updateListRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	list, err := a.listSvc.Update(r.Context(), &domlist.List{
		ID:    id,
		Name:  req.Name,
		Notes: req.Notes,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapList(list))
}

// handleDeleteList removes the list's products before the list itself.
func (a *API) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "listID")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if _, err := a.listSvc.GetByID(r.Context(), id); err != nil {
		handleDomainError(w, err)
		return
	}
	if err := a.productSvc.DeleteAllFromList(r.Context(), chi.URLParam(r, "listID")); err != nil {
		handleDomainError(w, err)
		return
	}
	if err := a.listSvc.Delete(r.Context(), id); err != nil {
		handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
