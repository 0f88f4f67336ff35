package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goliatone/go-billing-console/components/console"
	"github.com/goliatone/go-billing-console/components/console/commands"
	"github.com/goliatone/go-billing-console/components/console/queries"
)

// ViewerResolver extracts the viewer from a request.
type ViewerResolver func(*http.Request) console.ViewerContext

// Handlers exposes HTTP endpoints backed by shared commands.
type Handlers struct {
	Executor Executor
	Viewer   ViewerResolver
}

// FilterRequest is the body of a set filter call.
type FilterRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ModalRequest is the body of an open modal call.
type ModalRequest struct {
	ID string `json:"id,omitempty"`
}

// NavigateRequest is the body of a navigation call.
type NavigateRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (h *Handlers) HandlePage(w http.ResponseWriter, r *http.Request, page string) {
	view, err := h.Executor.Page(r.Context(), queries.PageInput{Viewer: h.viewer(r), Page: page})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handlers) HandleMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.Executor.Menu(r.Context(), h.viewer(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) HandleSetFilter(w http.ResponseWriter, r *http.Request, page string) {
	var payload FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	state, err := h.Executor.SetFilter(r.Context(), commands.SetFilterInput{
		Viewer: h.viewer(r), Page: page, Key: payload.Key, Value: payload.Value,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handlers) HandleResetFilters(w http.ResponseWriter, r *http.Request, page string) {
	state, err := h.Executor.ResetFilters(r.Context(), commands.ResetFiltersInput{Viewer: h.viewer(r), Page: page})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handlers) HandleUpdateListing(w http.ResponseWriter, r *http.Request, page string) {
	var payload console.ListingUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	state, err := h.Executor.UpdateListing(r.Context(), commands.UpdateListingInput{
		Viewer: h.viewer(r), Page: page, Update: payload,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handlers) HandleOpenModal(w http.ResponseWriter, r *http.Request, page, modal string) {
	var payload ModalRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	state, err := h.Executor.OpenModal(r.Context(), commands.OpenModalInput{
		Viewer: h.viewer(r), Page: page, Modal: modal, ID: payload.ID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handlers) HandleCloseModal(w http.ResponseWriter, r *http.Request, page, modal string) {
	state, err := h.Executor.CloseModal(r.Context(), commands.CloseModalInput{
		Viewer: h.viewer(r), Page: page, Modal: modal,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handlers) HandleNavigate(w http.ResponseWriter, r *http.Request) {
	var payload NavigateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if payload.To == "" {
		writeJSON(w, http.StatusBadRequest, ErrorBody{Error: "navigation target is required"})
		return
	}
	state, err := h.Executor.Navigate(r.Context(), commands.NavigateInput{
		Viewer: h.viewer(r), From: payload.From, To: payload.To,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handlers) HandleMutate(w http.ResponseWriter, r *http.Request, page string) {
	var payload console.MutationRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := h.Executor.Mutate(r.Context(), commands.MutateInput{
		Viewer:          h.viewer(r),
		Page:            page,
		MutationRequest: payload,
		RequestID:       r.Header.Get("X-Request-ID"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	status := http.StatusOK
	if payload.Action == console.MutationCreate {
		status = http.StatusCreated
	}
	writeJSON(w, status, result)
}

func (h *Handlers) viewer(r *http.Request) console.ViewerContext {
	if h.Viewer == nil {
		return console.ViewerContext{}
	}
	return h.Viewer(r)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}
	writeJSON(w, StatusFor(err), ErrorBody{Error: err.Error()})
}
