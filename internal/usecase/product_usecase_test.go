package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productadmin/internal/clients"
	"productadmin/internal/domain"
	"productadmin/internal/validation"
)

var seedProducts = []domain.Product{
	{ID: 1, Name: "Laptop Pro X1", Price: 35000000, Quantity: 50, CategoryID: 1},
	{ID: 2, Name: "Bàn phím cơ K10", Price: 1800000, Quantity: 120, CategoryID: 2},
}

func newManager(api *mockAPI) *ProductManager {
	return NewProductManager(api, fixedActor{id: 7}, testLogger())
}

func validProductDraft() domain.ProductDraft {
	return domain.ProductDraft{Name: "Chuột quang M720", Price: "850000", Quantity: "75"}
}

func TestLoadReplacesCollectionWholesale(t *testing.T) {
	api := &mockAPI{listResult: seedProducts}
	m := newManager(api)

	m.Load(context.Background())

	assert.Equal(t, seedProducts, m.Products())
	assert.False(t, m.Loading())
	assert.Empty(t, m.Error())
	assert.Equal(t, 1, api.listCalls)
}

func TestLoadFailureKeepsCollectionAndSetsBanner(t *testing.T) {
	api := &mockAPI{listResult: seedProducts}
	m := newManager(api)
	m.Load(context.Background())

	api.listErr = errors.New("connection refused")
	m.Load(context.Background())

	assert.Equal(t, seedProducts, m.Products(), "failed load must not touch the collection")
	assert.Equal(t, MsgLoadFailed, m.Error())
	assert.False(t, m.Loading(), "loading cleared on the failure path too")
}

func TestSaveInvalidDraftNeverCallsRemote(t *testing.T) {
	api := &mockAPI{listResult: seedProducts}
	m := newManager(api)
	m.Load(context.Background())
	listCallsBefore := api.listCalls

	errs := m.Save(context.Background(), domain.ProductDraft{Name: "", Price: "abc", Quantity: "-1"})

	require.False(t, errs.Valid())
	assert.Zero(t, api.createCalls)
	assert.Zero(t, api.updateCalls)
	assert.Equal(t, listCallsBefore, api.listCalls, "no reload after an aborted save")
	assert.Equal(t, seedProducts, m.Products())
	assert.Empty(t, m.Error(), "validation failures never touch the banner")
}

func TestSaveCreateSuccessReloadsOnce(t *testing.T) {
	api := &mockAPI{listResult: seedProducts}
	m := newManager(api)
	m.OpenCreate(context.Background())

	errs := m.Save(context.Background(), validProductDraft())

	require.True(t, errs.Valid())
	assert.Equal(t, 1, api.createCalls)
	assert.Zero(t, api.updateCalls)
	assert.Equal(t, 1, api.listCalls, "save success triggers exactly one load, even with an empty mutation response")
	assert.False(t, m.FormOpen())
	assert.Empty(t, m.Error())
	assert.Equal(t, 7, api.lastCreated.CreatedByID, "creator comes from the session actor")
}

func TestSaveEditModeCallsUpdateWithTargetID(t *testing.T) {
	api := &mockAPI{listResult: seedProducts}
	m := newManager(api)
	m.Load(context.Background())
	m.OpenEdit(context.Background(), seedProducts[1])

	draft := domain.DraftFromProduct(seedProducts[1])
	draft.Price = "2000000"
	errs := m.Save(context.Background(), draft)

	require.True(t, errs.Valid())
	assert.Equal(t, 1, api.updateCalls)
	assert.Zero(t, api.createCalls)
	assert.Equal(t, 2, api.lastUpdatedID)
	assert.Equal(t, float64(2000000), api.lastUpdated.Price)
	assert.False(t, m.FormOpen())
}

func TestSaveFailureClosesModalAndSetsBanner(t *testing.T) {
	api := &mockAPI{listResult: seedProducts, createErr: errors.New("boom")}
	m := newManager(api)
	m.Load(context.Background())
	listCallsBefore := api.listCalls
	m.OpenCreate(context.Background())

	errs := m.Save(context.Background(), validProductDraft())

	require.True(t, errs.Valid())
	assert.False(t, m.FormOpen(), "the failure does not leave the modal open")
	assert.Equal(t, MsgSaveFailed, m.Error())
	assert.Equal(t, listCallsBefore, api.listCalls, "no reload after a failed mutation")
	assert.False(t, m.Loading(), "mutation failures surface via the banner, never via loading")
}

func TestDeleteConfirmationFlow(t *testing.T) {
	api := &mockAPI{listResult: seedProducts}
	m := newManager(api)
	m.Load(context.Background())

	m.RequestDelete(seedProducts[0])
	require.NotNil(t, m.DeleteTarget())
	assert.Zero(t, api.deleteCalls, "requesting opens the confirmation without a remote call")

	m.CancelDelete()
	assert.Nil(t, m.DeleteTarget())
	assert.Zero(t, api.deleteCalls)

	m.ConfirmDelete(context.Background())
	assert.Zero(t, api.deleteCalls, "confirming with no pending target is a no-op")

	m.RequestDelete(seedProducts[0])
	m.ConfirmDelete(context.Background())
	assert.Equal(t, 1, api.deleteCalls)
	assert.Equal(t, 1, api.lastDeletedID)
	assert.Nil(t, m.DeleteTarget())
	assert.Equal(t, 2, api.listCalls, "successful delete reloads the list")
}

func TestConfirmDeleteFailureClosesModalAndKeepsCollection(t *testing.T) {
	api := &mockAPI{listResult: seedProducts}
	m := newManager(api)
	m.Load(context.Background())

	api.deleteErr = errors.New("boom")
	m.RequestDelete(seedProducts[1])
	m.ConfirmDelete(context.Background())

	assert.Nil(t, m.DeleteTarget(), "failure still closes the confirmation")
	assert.Equal(t, MsgDeleteFailed, m.Error())
	assert.Equal(t, seedProducts, m.Products(), "collection stays whatever the last load returned")
	assert.Equal(t, 1, api.listCalls, "no reload after a failed delete")
}

func TestFormOpenFetchesCategoriesFreshEveryTime(t *testing.T) {
	api := &mockAPI{categories: []domain.Category{{ID: 1, Name: "Electronics"}}}
	m := newManager(api)

	m.OpenCreate(context.Background())
	assert.Equal(t, 1, api.categoryCalls)
	assert.Equal(t, []domain.Category{{ID: 1, Name: "Electronics"}}, m.Categories())
	assert.Nil(t, m.FormTarget(), "nil target means create mode")
	m.CloseForm()

	m.OpenEdit(context.Background(), seedProducts[0])
	assert.Equal(t, 2, api.categoryCalls, "categories are never cached across form opens")
	require.NotNil(t, m.FormTarget())
	assert.Equal(t, seedProducts[0].ID, m.FormTarget().ID)
}

func TestSaveRejectedWhileBusy(t *testing.T) {
	api := &mockAPI{listResult: seedProducts}
	m := newManager(api)

	// Simulate a mutation already in flight.
	m.mu.Lock()
	m.busy = true
	m.mu.Unlock()

	errs := m.Save(context.Background(), validProductDraft())
	assert.True(t, errs.Valid())
	assert.Zero(t, api.createCalls, "re-entrant save is rejected, not queued")

	m.RequestDelete(seedProducts[0])
	m.ConfirmDelete(context.Background())
	assert.Zero(t, api.deleteCalls, "re-entrant delete is rejected too")
}

// The field validator and the orchestrator agree on what a submittable
// draft is: anything ValidateProduct accepts reaches the remote call.
func TestSaveUsesProductValidatorVerbatim(t *testing.T) {
	draft := domain.ProductDraft{Name: "Hàng sắp hết", Price: "100", Quantity: "0"}
	require.True(t, validation.ValidateProduct(draft).Valid(), "quantity 0 is a valid boundary")

	api := &mockAPI{}
	m := newManager(api)
	m.OpenCreate(context.Background())
	errs := m.Save(context.Background(), draft)

	assert.True(t, errs.Valid())
	assert.Equal(t, 1, api.createCalls)
	assert.Equal(t, 0, api.lastCreated.Quantity)
}

// The detail view asks the server every time; the cached collection is
// never a source for it.
func TestDetailFetchesFreshByID(t *testing.T) {
	api := &mockAPI{listResult: seedProducts}
	m := newManager(api)

	product, err := m.Detail(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Bàn phím cơ K10", product.Name)
	assert.Equal(t, 1, api.getCalls)
	assert.Zero(t, api.listCalls)
}

func TestDetailPassesNotFoundThrough(t *testing.T) {
	api := &mockAPI{listResult: seedProducts}
	m := newManager(api)

	product, err := m.Detail(context.Background(), 99)
	assert.Nil(t, product)
	assert.ErrorIs(t, err, clients.ErrNotFound)
	assert.Empty(t, m.Error(), "detail failures never touch the list banner")
}
