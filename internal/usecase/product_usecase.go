package usecase

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"productadmin/internal/clients"
	"productadmin/internal/domain"
	"productadmin/internal/validation"
)

// Fixed, action-scoped messages for the error banner. Raw server detail is
// never shown for product mutations.
const (
	MsgLoadFailed   = "Failed to load product list."
	MsgDetailFailed = "Failed to load product details."
	MsgSaveFailed   = "Failed to save product."
	MsgDeleteFailed = "Failed to delete product."
)

// Actor reports the authenticated user on whose behalf products are
// created. The session satisfies it.
type Actor interface {
	UserID() int
}

// ProductManager owns the visible state of the product screen: the product
// collection, the list-loading flag, the error banner and the two modal
// workflows (add/edit form, delete confirmation). All mutations go through
// validate → call → reload; the collection is always replaced wholesale
// with the server's version of truth, never patched in place.
type ProductManager struct {
	api   clients.ProductAPI
	actor Actor
	log   *logrus.Logger

	mu           sync.Mutex
	products     []domain.Product
	categories   []domain.Category
	loading      bool
	lastError    string
	formOpen     bool
	formTarget   *domain.Product
	deleteTarget *domain.Product
	busy         bool
}

func NewProductManager(api clients.ProductAPI, actor Actor, logger *logrus.Logger) *ProductManager {
	return &ProductManager{
		api:   api,
		actor: actor,
		log:   logger,
	}
}

// Load fetches the full collection and replaces the current one. On failure
// the collection is left as it was and the load error banner is raised.
// The loading flag is cleared on every exit path.
func (m *ProductManager) Load(ctx context.Context) {
	m.mu.Lock()
	m.loading = true
	m.lastError = ""
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	}()

	m.log.Info("Use Case: Loading product list")
	products, err := m.api.ListProducts(ctx)
	if err != nil {
		m.log.Errorf("Use Case: Failed to load product list: %v", err)
		m.mu.Lock()
		m.lastError = MsgLoadFailed
		m.mu.Unlock()
		return
	}

	m.mu.Lock()
	m.products = products
	m.mu.Unlock()
	m.log.Infof("Use Case: Product list replaced with %d products", len(products))
}

// Detail fetches a single product fresh from the server for the detail
// view. The cached collection is never used here; the view shows the
// server's current version or nothing. clients.ErrNotFound passes through
// for the caller to render.
func (m *ProductManager) Detail(ctx context.Context, id int) (*domain.Product, error) {
	m.log.Infof("Use Case: Fetching detail for product ID %d", id)
	product, err := m.api.GetProduct(ctx, id)
	if err != nil {
		m.log.Errorf("Use Case: Failed to fetch product ID %d: %v", id, err)
		return nil, err
	}
	return product, nil
}

// OpenCreate opens the form modal in create mode and fetches a fresh
// category list. Categories are never cached across form opens.
func (m *ProductManager) OpenCreate(ctx context.Context) {
	m.refreshCategories(ctx)
	m.mu.Lock()
	m.formTarget = nil
	m.formOpen = true
	m.mu.Unlock()
	m.log.Info("Use Case: Opened product form in create mode")
}

// OpenEdit opens the form modal for an existing product.
func (m *ProductManager) OpenEdit(ctx context.Context, product domain.Product) {
	m.refreshCategories(ctx)
	m.mu.Lock()
	target := product
	m.formTarget = &target
	m.formOpen = true
	m.mu.Unlock()
	m.log.Infof("Use Case: Opened product form in edit mode for ID %d", product.ID)
}

// CloseForm closes the form modal without saving.
func (m *ProductManager) CloseForm() {
	m.mu.Lock()
	m.formTarget = nil
	m.formOpen = false
	m.mu.Unlock()
}

// Save validates the draft and, when clean, issues the create or update
// call depending on the form mode. Validation failures abort before any
// remote call and are returned for the form to render; they touch neither
// the error banner nor the collection. The form modal closes after every
// attempted call, success or not, and a successful mutation always triggers
// exactly one reload.
func (m *ProductManager) Save(ctx context.Context, draft domain.ProductDraft) domain.ValidationErrors {
	if errs := validation.ValidateProduct(draft); !errs.Valid() {
		m.log.Warnf("Use Case: Draft rejected with %d validation errors, no remote call issued", len(errs))
		return errs
	}

	m.mu.Lock()
	if m.busy {
		m.mu.Unlock()
		m.log.Warn("Use Case: Save ignored, another mutation is in flight")
		return nil
	}
	m.busy = true
	target := m.formTarget
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.busy = false
		m.mu.Unlock()
	}()

	product, err := draft.Build(m.actor.UserID())
	if err != nil {
		// Unreachable for a draft that passed validation.
		m.log.Errorf("Use Case: Validated draft failed to build: %v", err)
		m.setError(MsgSaveFailed)
		m.CloseForm()
		return nil
	}

	if target != nil {
		m.log.Infof("Use Case: Updating product ID %d", target.ID)
		_, err = m.api.UpdateProduct(ctx, target.ID, product)
	} else {
		m.log.Infof("Use Case: Creating product '%s'", product.Name)
		_, err = m.api.CreateProduct(ctx, product)
	}

	m.CloseForm()

	if err != nil {
		m.log.Errorf("Use Case: Failed to save product: %v", err)
		m.setError(MsgSaveFailed)
		return nil
	}

	m.Load(ctx)
	return nil
}

// RequestDelete opens the delete confirmation for a product. No remote call
// is made until the deletion is confirmed.
func (m *ProductManager) RequestDelete(product domain.Product) {
	m.mu.Lock()
	target := product
	m.deleteTarget = &target
	m.mu.Unlock()
	m.log.Infof("Use Case: Delete requested for product ID %d", product.ID)
}

// CancelDelete closes the confirmation without touching the server.
func (m *ProductManager) CancelDelete() {
	m.mu.Lock()
	m.deleteTarget = nil
	m.mu.Unlock()
}

// ConfirmDelete deletes the pending target. The confirmation closes after
// every attempted call; on success the collection is reloaded, on failure
// the delete error banner is raised and the collection stays whatever the
// last load returned.
func (m *ProductManager) ConfirmDelete(ctx context.Context) {
	m.mu.Lock()
	if m.deleteTarget == nil {
		m.mu.Unlock()
		return
	}
	if m.busy {
		m.mu.Unlock()
		m.log.Warn("Use Case: ConfirmDelete ignored, another mutation is in flight")
		return
	}
	m.busy = true
	target := *m.deleteTarget
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.busy = false
		m.mu.Unlock()
	}()

	m.log.Infof("Use Case: Deleting product ID %d", target.ID)
	err := m.api.DeleteProduct(ctx, target.ID)

	m.CancelDelete()

	if err != nil {
		m.log.Errorf("Use Case: Failed to delete product ID %d: %v", target.ID, err)
		m.setError(MsgDeleteFailed)
		return
	}

	m.Load(ctx)
}

func (m *ProductManager) setError(msg string) {
	m.mu.Lock()
	m.lastError = msg
	m.mu.Unlock()
}

// ClearError dismisses the error banner.
func (m *ProductManager) ClearError() {
	m.mu.Lock()
	m.lastError = ""
	m.mu.Unlock()
}

// Products returns a copy of the current collection.
func (m *ProductManager) Products() []domain.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Product, len(m.products))
	copy(out, m.products)
	return out
}

// Categories returns the reference data fetched at the last form open.
func (m *ProductManager) Categories() []domain.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Category, len(m.categories))
	copy(out, m.categories)
	return out
}

// Loading reports whether a list fetch is in progress. Mutations never set
// it; their failures surface through Error instead.
func (m *ProductManager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

func (m *ProductManager) Error() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastError
}

// FormOpen reports whether the add/edit modal is open; FormTarget is nil in
// create mode and the product being edited otherwise.
func (m *ProductManager) FormOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.formOpen
}

func (m *ProductManager) FormTarget() *domain.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.formTarget == nil {
		return nil
	}
	target := *m.formTarget
	return &target
}

func (m *ProductManager) DeleteTarget() *domain.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteTarget == nil {
		return nil
	}
	target := *m.deleteTarget
	return &target
}

func (m *ProductManager) refreshCategories(ctx context.Context) {
	categories, err := m.api.ListCategories(ctx)
	if err != nil {
		// The client already degrades to an empty list, but keep the
		// guarantee even for other implementations.
		m.log.Warnf("Use Case: Category refresh failed, form opens without categories: %v", err)
		categories = []domain.Category{}
	}
	m.mu.Lock()
	m.categories = categories
	m.mu.Unlock()
}
