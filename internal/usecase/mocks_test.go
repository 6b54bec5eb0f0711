package usecase

import (
	"context"

	"github.com/sirupsen/logrus"

	"productadmin/internal/clients"
	"productadmin/internal/domain"
)

// mockAPI scripts the remote boundary and counts every call.
type mockAPI struct {
	loginResult *domain.AuthResult
	loginErr    error
	listResult  []domain.Product
	listErr     error
	getErr      error
	categories  []domain.Category
	createErr   error
	updateErr   error
	deleteErr   error

	loginCalls      int
	listCalls       int
	getCalls        int
	categoryCalls   int
	createCalls     int
	updateCalls     int
	deleteCalls     int
	lastCreated     domain.Product
	lastUpdated     domain.Product
	lastUpdatedID   int
	lastDeletedID   int
	lastCredentials domain.Credentials
}

func (m *mockAPI) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error) {
	m.loginCalls++
	m.lastCredentials = creds
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	return m.loginResult, nil
}

func (m *mockAPI) ListProducts(ctx context.Context) ([]domain.Product, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listResult, nil
}

func (m *mockAPI) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	for i := range m.listResult {
		if m.listResult[i].ID == id {
			return &m.listResult[i], nil
		}
	}
	return nil, clients.ErrNotFound
}

func (m *mockAPI) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	m.createCalls++
	m.lastCreated = product
	if m.createErr != nil {
		return nil, m.createErr
	}
	// A created product echo is optional; the orchestrator must cope with
	// a response that has no body.
	return nil, nil
}

func (m *mockAPI) UpdateProduct(ctx context.Context, id int, product domain.Product) (*domain.Product, error) {
	m.updateCalls++
	m.lastUpdatedID = id
	m.lastUpdated = product
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return nil, nil
}

func (m *mockAPI) DeleteProduct(ctx context.Context, id int) error {
	m.deleteCalls++
	m.lastDeletedID = id
	return m.deleteErr
}

func (m *mockAPI) ListCategories(ctx context.Context) ([]domain.Category, error) {
	m.categoryCalls++
	return m.categories, nil
}

// mockSession counts token writes.
type mockSession struct {
	establishCalls int
	token          string
	userID         int
	err            error
}

func (m *mockSession) Establish(token string, userID int) error {
	m.establishCalls++
	m.token = token
	m.userID = userID
	return m.err
}

func (m *mockSession) UserID() int {
	return m.userID
}

// mockNavigator counts navigation signals.
type mockNavigator struct {
	navigations int
}

func (m *mockNavigator) NavigateToProducts() {
	m.navigations++
}

// fixedActor reports a fixed authenticated user id.
type fixedActor struct {
	id int
}

func (a fixedActor) UserID() int {
	return a.id
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}
