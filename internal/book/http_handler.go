package book

import (
	"net/http"

	"bookshelf/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Register mounts the book routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /books", h.Create)
	mux.HandleFunc("GET /books", h.List)
	mux.HandleFunc("GET /books/{bookId}", h.Get)
	mux.HandleFunc("PUT /books/{bookId}", h.Update)
	mux.HandleFunc("DELETE /books/{bookId}", h.Delete)
}

// Create handles POST /books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p Payload
	if err := httpx.DecodeJSON(r, &p); err != nil {
		httpx.BadPayload(w, err)
		return
	}

	bookID, books, err := h.service.Create(r.Context(), p)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.Success(w, http.StatusCreated, "book added", map[string]any{
		"bookId": bookID,
		"books":  books,
	})
}

// List handles GET /books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	books, err := h.service.List(r.Context(), Query{
		Name:     query.Get("name"),
		Reading:  ParseFlag(query.Get("reading")),
		Finished: ParseFlag(query.Get("finished")),
	})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.Success(w, http.StatusOK, "", map[string]any{"books": books})
}

// Get handles GET /books/{bookId}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Get(r.Context(), r.PathValue("bookId"))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.Success(w, http.StatusOK, "", map[string]any{"book": b})
}

// Update handles PUT /books/{bookId}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	var p Payload
	if err := httpx.DecodeJSON(r, &p); err != nil {
		httpx.BadPayload(w, err)
		return
	}

	if err := h.service.Update(r.Context(), r.PathValue("bookId"), p); err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.Success(w, http.StatusOK, "book updated", nil)
}

// Delete handles DELETE /books/{bookId}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("bookId")); err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.Success(w, http.StatusOK, "book deleted", nil)
}
