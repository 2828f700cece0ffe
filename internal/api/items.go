package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/xmkt/marketplace/internal/captcha"
	"github.com/xmkt/marketplace/internal/model"
	"github.com/xmkt/marketplace/internal/service"
	"github.com/xmkt/marketplace/internal/store"
)

// maxCreateBody bounds the multipart body: up to five images plus form
// fields.
const maxCreateBody = (model.MaxImages + 1) * service.MaxImageBytes

// ItemsHandler handles the item lifecycle endpoints.
type ItemsHandler struct {
	Items   *service.ItemService
	Captcha *captcha.Verifier
}

type deleteItemRequest struct {
	DeleteKey string `json:"deleteKey"`
}

type editItemRequest struct {
	DeleteKey           string `json:"deleteKey"`
	Mode                string `json:"mode,omitempty"`
	Title               string `json:"title"`
	Price               string `json:"price"`
	Category            string `json:"category"`
	CategoryDescription string `json:"categoryDescription"`
}

type updateItemRequest struct {
	Title               string `json:"title"`
	Price               string `json:"price"`
	Category            string `json:"category"`
	CategoryDescription string `json:"categoryDescription"`
}

// List handles GET /items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := store.ListOptions{
		Category: q.Get("category"),
		Query:    q.Get("q"),
		Order:    q.Get("_order"),
	}
	if start := q.Get("_start"); start != "" {
		n, err := strconv.Atoi(start)
		if err != nil || n < 0 {
			jsonError(w, http.StatusBadRequest, "invalid _start")
			return
		}
		opts.Start = n
	}
	if limit := q.Get("_limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			jsonError(w, http.StatusBadRequest, "invalid _limit")
			return
		}
		opts.Limit = n
	}

	items, err := h.Items.List(r.Context(), opts)
	if err != nil {
		serviceError(w, err)
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Get handles GET /items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	item, err := h.Items.Get(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Create handles POST /items (multipart form).
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCreateBody)
	if err := r.ParseMultipartForm(maxCreateBody); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid or oversized multipart form")
		return
	}

	if h.Captcha.Enabled() {
		ok, err := h.Captcha.Verify(r.Context(), r.FormValue("captchaToken"))
		if err != nil {
			serviceError(w, err)
			return
		}
		if !ok {
			jsonError(w, http.StatusBadRequest, "captcha verification failed")
			return
		}
	}

	input := service.ItemInput{
		Title:               r.FormValue("title"),
		Price:               r.FormValue("price"),
		Contact:             r.FormValue("contact"),
		Category:            r.FormValue("category"),
		CategoryDescription: r.FormValue("categoryDescription"),
		ApronSize:           r.FormValue("apronSize"),
		ApronColor:          r.FormValue("apronColor"),
		DeleteKey:           r.FormValue("deleteKey"),
	}
	if ts := r.FormValue("timestamp"); ts != "" {
		n, err := strconv.ParseInt(ts, 10, 64)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid timestamp")
			return
		}
		input.Timestamp = n
	}

	var files []service.ImageFile
	for _, header := range r.MultipartForm.File["images"] {
		f, err := header.Open()
		if err != nil {
			jsonError(w, http.StatusBadRequest, "unreadable image upload")
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			jsonError(w, http.StatusBadRequest, "unreadable image upload")
			return
		}
		files = append(files, service.ImageFile{Name: header.Filename, Data: data})
	}

	item, err := h.Items.Create(r.Context(), input, files)
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, item)
}

// Delete handles DELETE /items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	var req deleteItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.Items.Delete(r.Context(), id, req.DeleteKey); err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// Edit handles PUT /items/{id}/edit: key-guarded metadata update, with
// mode "verify" as a dry run for client-side key checks.
func (h *ItemsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	var req editItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Mode != "" && req.Mode != "verify" {
		jsonError(w, http.StatusBadRequest, "invalid mode")
		return
	}

	item, _, err := h.Items.Edit(r.Context(), id, req.DeleteKey, req.Mode == "verify", service.EditInput{
		Title:               req.Title,
		Price:               req.Price,
		Category:            req.Category,
		CategoryDescription: req.CategoryDescription,
	})
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT /items/{id}: the master-gated admin update. The route
// is wrapped by RequireMaster, so the guard decision is always a master
// override here.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, _, err := h.Items.Edit(r.Context(), id, h.Items.MasterKey, false, service.EditInput{
		Title:               req.Title,
		Price:               req.Price,
		Category:            req.Category,
		CategoryDescription: req.CategoryDescription,
	})
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// itemID parses the {id} path value, writing a 400 on failure.
func itemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return 0, false
	}
	return id, true
}
