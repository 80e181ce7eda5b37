package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	postgres "github.com/Bofry/lib-postgres-provision"
)

const (
	defaultListLimit = 100
)

type productStore interface {
	ListProducts(ctx context.Context, limit int, offset int) ([]Product, error)
	CreateProduct(ctx context.Context, name string, price int64, imageURL *string) (*Product, error)
	UpdateProduct(ctx context.Context, productID int64, update ProductUpdate) (*Product, error)
	Ping(ctx context.Context) error
}

type replicationAdmin interface {
	CreateRole(ctx context.Context, source postgres.CreateRoleSource) (*postgres.CreateRoleResult, error)
	CreateReplicationSlot(ctx context.Context, source postgres.CreateReplicationSlotSource) (*postgres.CreateReplicationSlotResult, error)
	DropReplicationSlot(ctx context.Context, slotName string) error
	SelectReplicationSlot(ctx context.Context, slots []string) ([]postgres.ReplicationSlotSource, error)
}

// API wires the catalog store and the replication provisioner into HTTP
// handlers.
type API struct {
	store  productStore
	admin  replicationAdmin
	config Config
	logger *log.Logger
}

func NewAPI(store productStore, admin replicationAdmin, cfg Config, logger *log.Logger) (*API, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if logger == nil {
		logger = log.Default()
	}

	return &API{
		store:  store,
		admin:  admin,
		config: cfg,
		logger: logger,
	}, nil
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := a.store.Ping(r.Context()); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "degraded"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (a *API) handleListProducts(w http.ResponseWriter, r *http.Request) {
	limit, offset := defaultListLimit, 0

	var err error
	if v := r.URL.Query().Get("limit"); len(v) > 0 {
		if limit, err = strconv.Atoi(v); err != nil {
			respondError(w, http.StatusBadRequest, errors.New("limit/offset must be integers"))
			return
		}
	}
	if v := r.URL.Query().Get("offset"); len(v) > 0 {
		if offset, err = strconv.Atoi(v); err != nil {
			respondError(w, http.StatusBadRequest, errors.New("limit/offset must be integers"))
			return
		}
	}

	products, err := a.store.ListProducts(r.Context(), limit, offset)
	if err != nil {
		a.logger.Printf("list products failed: %v", err)
		respondError(w, http.StatusInternalServerError, errors.New("failed to query replica"))
		return
	}
	if products == nil {
		products = []Product{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"products": products})
}

type productRequest struct {
	ProductName *string `json:"product_name"`
	Price       *int64  `json:"price"`
	// raw keeps absent and explicit null apart; null clears the image URL
	ProductImageURL json.RawMessage `json:"product_image_url"`
}

func (req productRequest) imageURL() (*string, error) {
	if req.ProductImageURL == nil {
		return nil, nil
	}
	var v *string
	if err := json.Unmarshal(req.ProductImageURL, &v); err != nil {
		return nil, errors.New("product_image_url must be a string or null")
	}
	return v, nil
}

func (a *API) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, errors.New("missing json body"))
		return
	}
	if req.ProductName == nil || len(*req.ProductName) == 0 {
		respondError(w, http.StatusBadRequest, errors.New("product_name required"))
		return
	}
	if req.Price == nil {
		respondError(w, http.StatusBadRequest, errors.New("price must be an integer"))
		return
	}
	imageURL, err := req.imageURL()
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	product, err := a.store.CreateProduct(r.Context(), *req.ProductName, *req.Price, imageURL)
	if err != nil {
		a.logger.Printf("create product failed: %v", err)
		respondError(w, http.StatusInternalServerError, errors.New("failed to insert"))
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"product": product})
}

func (a *API) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("product id must be an integer"))
		return
	}

	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, errors.New("missing json body"))
		return
	}

	update := ProductUpdate{
		ProductName: req.ProductName,
		Price:       req.Price,
	}
	if req.ProductImageURL != nil {
		imageURL, err := req.imageURL()
		if err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		update.ProductImageURL = imageURL
		update.SetProductImageURL = true
	}

	product, err := a.store.UpdateProduct(r.Context(), productID, update)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, map[string]any{"product": product})
	case errors.Is(err, errNoUpdatableFields):
		respondError(w, http.StatusBadRequest, err)
	case IsNotFound(err):
		respondError(w, http.StatusNotFound, errors.New("product not found"))
	default:
		a.logger.Printf("update product failed: %v", err)
		respondError(w, http.StatusInternalServerError, errors.New("failed to update"))
	}
}

func (a *API) handleCreateRole(w http.ResponseWriter, r *http.Request) {
	if a.admin == nil {
		respondError(w, http.StatusServiceUnavailable, errors.New("provisioning is not configured"))
		return
	}

	var source postgres.CreateRoleSource
	if err := decodeJSON(r, &source); err != nil {
		respondError(w, http.StatusBadRequest, errors.New("missing json body"))
		return
	}

	result, err := a.admin.CreateRole(r.Context(), source)
	observeProvision("create_role", err)
	if err != nil {
		a.logger.Printf("create role failed: %v", err)
		respondError(w, provisionStatusCode(err), err)
		return
	}

	role := map[string]any{
		"name":         source.RoleName,
		"capabilities": source.Capabilities.Names(),
	}
	// a generated credential exists nowhere else; this response is the only
	// chance to hand it over
	if len(result.GeneratedPassword) > 0 {
		role["generated_password"] = result.GeneratedPassword
	}
	respondJSON(w, http.StatusCreated, map[string]any{"role": role})
}

func (a *API) handleCreateSlot(w http.ResponseWriter, r *http.Request) {
	if a.admin == nil {
		respondError(w, http.StatusServiceUnavailable, errors.New("provisioning is not configured"))
		return
	}

	var source postgres.CreateReplicationSlotSource
	if err := decodeJSON(r, &source); err != nil {
		respondError(w, http.StatusBadRequest, errors.New("missing json body"))
		return
	}

	result, err := a.admin.CreateReplicationSlot(r.Context(), source)
	observeProvision("create_slot", err)
	if err != nil {
		a.logger.Printf("create replication slot failed: %v", err)
		respondError(w, provisionStatusCode(err), err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"slot": map[string]any{
			"name":             result.SlotName,
			"consistent_point": result.ConsistentPoint.String(),
		},
	})
}

func (a *API) handleListSlots(w http.ResponseWriter, r *http.Request) {
	if a.admin == nil {
		respondError(w, http.StatusServiceUnavailable, errors.New("provisioning is not configured"))
		return
	}

	names := r.URL.Query()["name"]
	if len(names) == 0 {
		respondError(w, http.StatusBadRequest, errors.New("at least one name query parameter required"))
		return
	}

	records, err := a.admin.SelectReplicationSlot(r.Context(), names)
	if err != nil {
		a.logger.Printf("select replication slot failed: %v", err)
		respondError(w, provisionStatusCode(err), err)
		return
	}

	slots := make([]map[string]any, len(records))
	for i, record := range records {
		slots[i] = map[string]any{
			"name":        record.SlotName,
			"type":        record.SlotType.String(),
			"database":    record.Database,
			"active":      record.Active,
			"restart_lsn": record.RestartLSN.String(),
		}
	}
	respondJSON(w, http.StatusOK, map[string]any{"slots": slots})
}

func (a *API) handleDropSlot(w http.ResponseWriter, r *http.Request) {
	if a.admin == nil {
		respondError(w, http.StatusServiceUnavailable, errors.New("provisioning is not configured"))
		return
	}

	slotName := chi.URLParam(r, "slotName")
	err := a.admin.DropReplicationSlot(r.Context(), slotName)
	observeProvision("drop_slot", err)
	if err != nil {
		a.logger.Printf("drop replication slot failed: %v", err)
		respondError(w, provisionStatusCode(err), err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"slot": slotName, "dropped": true})
}
