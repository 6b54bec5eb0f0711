package clients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productadmin/internal/domain"
)

type staticToken string

func (s staticToken) Token() string {
	return string(s)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newClient(t *testing.T, handler http.Handler, token string) (ProductAPI, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewProductHTTPClient(srv.URL, 5*time.Second, staticToken(token), testLogger()), srv
}

func TestLoginSuccess(t *testing.T) {
	var gotCreds domain.Credentials
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotCreds))
		json.NewEncoder(w).Encode(domain.AuthResult{Token: "jwt-token", UserID: 3})
	})
	api, _ := newClient(t, handler, "")

	result, err := api.Login(context.Background(), domain.Credentials{Username: "admin", Password: "admin123"})

	require.NoError(t, err)
	assert.Equal(t, "jwt-token", result.Token)
	assert.Equal(t, 3, result.UserID)
	assert.Equal(t, domain.Credentials{Username: "admin", Password: "admin123"}, gotCreds)
}

func TestLoginFailureCarriesServerMessage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Wrong username or password!"})
	})
	api, _ := newClient(t, handler, "")

	_, err := api.Login(context.Background(), domain.Credentials{Username: "admin", Password: "nope12"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Wrong username or password!", apiErr.Message)
	assert.Equal(t, "Wrong username or password!", apiErr.Error())
}

func TestLoginFailureWithoutBodyStillErrors(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	api, _ := newClient(t, handler, "")

	_, err := api.Login(context.Background(), domain.Credentials{Username: "admin", Password: "admin123"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "502")
}

func TestListProductsSendsBearerToken(t *testing.T) {
	products := []domain.Product{{ID: 1, Name: "Laptop Pro X1", Price: 35000000, Quantity: 50}}
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, "/products", r.URL.Path)
		json.NewEncoder(w).Encode(products)
	})
	api, _ := newClient(t, handler, "tok-1")

	got, err := api.ListProducts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, products, got)
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestCreateAndUpdateProduct(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var product domain.Product
		require.NoError(t, json.NewDecoder(r.Body).Decode(&product))
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/products":
			product.ID = 9
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(product)
		case r.Method == http.MethodPut && r.URL.Path == "/products/9":
			product.ID = 9
			json.NewEncoder(w).Encode(product)
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})
	api, _ := newClient(t, handler, "tok")

	created, err := api.CreateProduct(context.Background(), domain.Product{Name: "Chuột M720", Price: 850000, Quantity: 75})
	require.NoError(t, err)
	assert.Equal(t, 9, created.ID)

	updated, err := api.UpdateProduct(context.Background(), 9, domain.Product{Name: "Chuột M720", Price: 900000, Quantity: 60})
	require.NoError(t, err)
	assert.Equal(t, float64(900000), updated.Price)
}

func TestDeleteProduct(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/products/4", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})
	api, _ := newClient(t, handler, "tok")

	assert.NoError(t, api.DeleteProduct(context.Background(), 4))
}

func TestTypedErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, wantErr: ErrUnauthorized},
		{name: "not found", status: http.StatusNotFound, wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			api, _ := newClient(t, handler, "tok")

			_, err := api.GetProduct(context.Background(), 1)
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}

func TestListCategoriesDegradesToEmptyList(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		api, _ := newClient(t, handler, "tok")

		categories, err := api.ListCategories(context.Background())
		require.NoError(t, err)
		assert.Empty(t, categories)
	})

	t.Run("server unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		api := NewProductHTTPClient(srv.URL, time.Second, staticToken(""), testLogger())

		categories, err := api.ListCategories(context.Background())
		require.NoError(t, err)
		assert.Empty(t, categories)
	})

	t.Run("success passes through", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]domain.Category{{ID: 1, Name: "Electronics"}})
		})
		api, _ := newClient(t, handler, "tok")

		categories, err := api.ListCategories(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []domain.Category{{ID: 1, Name: "Electronics"}}, categories)
	})
}

// There is no request cancellation beyond the per-call timeout; a hung
// server fails the call through the HTTP client's own deadline.
func TestSlowServerFailsByTimeout(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	api := NewProductHTTPClient(srv.URL, 50*time.Millisecond, staticToken("tok"), testLogger())

	_, err := api.ListProducts(context.Background())
	assert.Error(t, err)
}
