package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/you-humble/jewelry-pricing/internal/model"
	"github.com/you-humble/jewelry-pricing/platform/logger"
)

type ProductService interface {
	Calculate(ctx context.Context, in model.PriceInput) (model.Pricing, error)
	Create(ctx context.Context, params model.ProductParams) (*model.Product, error)
	Update(ctx context.Context, id string, params model.ProductParams) (*model.Product, error)
	Product(ctx context.Context, id string) (*model.Product, error)
}

type MaterialService interface {
	Material(ctx context.Context, t model.EntityType, id string) (*model.Material, error)
	ListMaterials(ctx context.Context, t model.EntityType) ([]*model.Material, error)
}

type PriceSyncService interface {
	Synchronize(ctx context.Context, params model.SyncParams) (*model.SyncResult, error)
	Preview(ctx context.Context, params model.SyncParams) (*model.SyncPreview, error)
	History(ctx context.Context, filter model.HistoryFilter) ([]model.PriceHistoryEntry, error)
}

type handler struct {
	products  ProductService
	materials MaterialService
	sync      PriceSyncService
}

func NewPricingHandler(products ProductService, materials MaterialService, sync PriceSyncService) *handler {
	return &handler{products: products, materials: materials, sync: sync}
}

// Routes mounts the v1 API under r. Paths are relative to /api/v1.
func (h *handler) Routes(r chi.Router) {
	r.Post("/pricing/calculate", h.Calculate)

	r.Route("/products", func(r chi.Router) {
		r.Post("/", h.CreateProduct)
		r.Get("/{id}", h.GetProduct)
		r.Put("/{id}", h.UpdateProduct)
	})

	r.Route("/materials/{entityType}", func(r chi.Router) {
		r.Get("/", h.ListMaterials)
		r.Get("/{id}", h.GetMaterial)
	})

	r.Post("/price-sync/preview", h.PreviewSync)
	r.Post("/price-sync", h.Synchronize)
	r.Get("/price-history", h.History)
}

func (h *handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := h.products.Calculate(r.Context(), calculateRequestToInput(req))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, pricingToDTO(res))
}

func (h *handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !decode(w, r, &req) {
		return
	}

	p, err := h.products.Create(r.Context(), productRequestToParams(req))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, productToResponse(p))
}

func (h *handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.Product(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, productToResponse(p))
}

func (h *handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !decode(w, r, &req) {
		return
	}

	p, err := h.products.Update(r.Context(), chi.URLParam(r, "id"), productRequestToParams(req))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, productToResponse(p))
}

func (h *handler) ListMaterials(w http.ResponseWriter, r *http.Request) {
	list, err := h.materials.ListMaterials(r.Context(), entityTypeParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]materialResponse, 0, len(list))
	for _, m := range list {
		out = append(out, materialToResponse(m))
	}
	render.JSON(w, r, out)
}

func (h *handler) GetMaterial(w http.ResponseWriter, r *http.Request) {
	m, err := h.materials.Material(r.Context(), entityTypeParam(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, materialToResponse(m))
}

func (h *handler) PreviewSync(w http.ResponseWriter, r *http.Request) {
	params, ok := decodeSyncParams(w, r)
	if !ok {
		return
	}

	res, err := h.sync.Preview(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, previewToResponse(res))
}

// Synchronize answers 200 even when some products failed; they are listed in failed_products.
func (h *handler) Synchronize(w http.ResponseWriter, r *http.Request) {
	params, ok := decodeSyncParams(w, r)
	if !ok {
		return
	}

	res, err := h.sync.Synchronize(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, syncResultToResponse(res))
}

func (h *handler) History(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := model.HistoryFilter{
		EntityType: model.EntityType(strings.ToLower(q.Get("entity_type"))),
		EntityID:   q.Get("entity_id"),
		VariantID:  q.Get("variant_id"),
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, errors.Join(model.ErrValidation, errors.New("limit must be an integer")))
			return
		}
		filter.Limit = limit
	}

	entries, err := h.sync.History(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, historyToResponse(entries))
}

func decodeSyncParams(w http.ResponseWriter, r *http.Request) (model.SyncParams, bool) {
	var req syncRequest
	if !decode(w, r, &req) {
		return model.SyncParams{}, false
	}
	if req.NewPrice == nil {
		writeError(w, r, errors.Join(model.ErrValidation, errors.New("new_price is required")))
		return model.SyncParams{}, false
	}

	return model.SyncParams{
		EntityType: model.EntityType(strings.ToLower(strings.TrimSpace(req.EntityType))),
		EntityID:   req.EntityID,
		VariantID:  req.VariantID,
		NewPrice:   *req.NewPrice,
	}, true
}

func entityTypeParam(r *http.Request) model.EntityType {
	return model.EntityType(strings.ToLower(chi.URLParam(r, "entityType")))
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		writeError(w, r, errors.Join(model.ErrValidation, errors.New("malformed JSON body")))
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := mapError(err)
	if status >= http.StatusInternalServerError {
		logger.Error(r.Context(), "http request failed",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.ErrorF(err),
		)
	}

	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = http.StatusText(status)
	}

	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: code, Code: status, Message: message})
}

func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest, "validation_error" // 400
	case errors.Is(err, model.ErrMaterialNotFound),
		errors.Is(err, model.ErrVariantNotFound),
		errors.Is(err, model.ErrProductNotFound):
		return http.StatusNotFound, "not_found" // 404
	case errors.Is(err, model.ErrProductConflict):
		return http.StatusConflict, "conflict" // 409
	default:
		return http.StatusInternalServerError, "internal_error" // 500
	}
}
