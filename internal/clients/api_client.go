package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"productadmin/internal/domain"
)

// Typed failures the orchestrators map onto their fixed user-facing
// messages. Raw server detail never leaks past this package except for
// login, where the server message is part of the contract.
var (
	ErrUnauthorized = errors.New("request was not authorized")
	ErrNotFound     = errors.New("resource not found")
)

// APIError carries a server-provided message from an error response body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// errorBody is the JSON error envelope the backend uses.
type errorBody struct {
	Message string `json:"message"`
}

// TokenProvider supplies the bearer token attached to product calls. The
// session satisfies it.
type TokenProvider interface {
	Token() string
}

// ProductAPI is the remote resource boundary the orchestrators depend on.
// Implementations perform the actual network calls; retry and timeout
// policy beyond a single per-call deadline is out of scope here.
type ProductAPI interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
	CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int, product domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

type productHTTPClient struct {
	baseURL string
	client  *http.Client
	tokens  TokenProvider
	log     *logrus.Logger
}

func NewProductHTTPClient(baseURL string, timeout time.Duration, tokens TokenProvider, logger *logrus.Logger) ProductAPI {
	return &productHTTPClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		tokens: tokens,
		log:    logger,
	}
}

func (c *productHTTPClient) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error) {
	url := fmt.Sprintf("%s/auth/login", c.baseURL)
	c.log.Infof("APIClient: Logging in user '%s' via %s", creds.Username, url)

	body, err := json.Marshal(creds)
	if err != nil {
		return nil, fmt.Errorf("failed to encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("APIClient: Login request failed: %v", err)
		return nil, fmt.Errorf("failed to reach authentication endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
			apiErr.Message = eb.Message
		}
		c.log.Warnf("APIClient: Login rejected with status %d: %s", resp.StatusCode, apiErr.Message)
		return nil, apiErr
	}

	var result domain.AuthResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.log.Errorf("APIClient: Failed to decode login response: %v", err)
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}

	c.log.Infof("APIClient: Login succeeded for user '%s'", creds.Username)
	return &result, nil
}

func (c *productHTTPClient) ListProducts(ctx context.Context) ([]domain.Product, error) {
	url := fmt.Sprintf("%s/products", c.baseURL)
	c.log.Debugf("APIClient: Listing products from %s", url)

	var products []domain.Product
	if err := c.doJSON(ctx, http.MethodGet, url, nil, http.StatusOK, &products); err != nil {
		return nil, err
	}
	c.log.Infof("APIClient: Retrieved %d products", len(products))
	return products, nil
}

func (c *productHTTPClient) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	url := fmt.Sprintf("%s/products/%d", c.baseURL, id)
	c.log.Debugf("APIClient: Fetching product %d", id)

	var product domain.Product
	if err := c.doJSON(ctx, http.MethodGet, url, nil, http.StatusOK, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *productHTTPClient) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	url := fmt.Sprintf("%s/products", c.baseURL)
	c.log.Infof("APIClient: Creating product '%s'", product.Name)

	var created domain.Product
	if err := c.doJSON(ctx, http.MethodPost, url, product, http.StatusCreated, &created); err != nil {
		return nil, err
	}
	c.log.Infof("APIClient: Product created with ID %d", created.ID)
	return &created, nil
}

func (c *productHTTPClient) UpdateProduct(ctx context.Context, id int, product domain.Product) (*domain.Product, error) {
	url := fmt.Sprintf("%s/products/%d", c.baseURL, id)
	c.log.Infof("APIClient: Updating product %d ('%s')", id, product.Name)

	var updated domain.Product
	if err := c.doJSON(ctx, http.MethodPut, url, product, http.StatusOK, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *productHTTPClient) DeleteProduct(ctx context.Context, id int) error {
	url := fmt.Sprintf("%s/products/%d", c.baseURL, id)
	c.log.Infof("APIClient: Deleting product %d", id)

	return c.doJSON(ctx, http.MethodDelete, url, nil, http.StatusNoContent, nil)
}

// ListCategories returns an empty list on any failure. Category data is
// non-fatal reference data for the product form; the form renders without
// it rather than blocking the workflow.
func (c *productHTTPClient) ListCategories(ctx context.Context) ([]domain.Category, error) {
	url := fmt.Sprintf("%s/categories", c.baseURL)
	c.log.Debugf("APIClient: Listing categories from %s", url)

	var categories []domain.Category
	if err := c.doJSON(ctx, http.MethodGet, url, nil, http.StatusOK, &categories); err != nil {
		c.log.Warnf("APIClient: Failed to load categories, continuing with empty list: %v", err)
		return []domain.Category{}, nil
	}
	return categories, nil
}

// doJSON runs one request/response cycle: encode the optional payload, send
// with the bearer token attached, check the expected status and decode into
// out when given.
func (c *productHTTPClient) doJSON(ctx context.Context, method, url string, payload interface{}, wantStatus int, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("APIClient: %s %s failed: %v", method, url, err)
		return fmt.Errorf("failed to communicate with product service: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case wantStatus:
	case http.StatusUnauthorized, http.StatusForbidden:
		c.log.Warnf("APIClient: %s %s rejected with status %d", method, url, resp.StatusCode)
		return ErrUnauthorized
	case http.StatusNotFound:
		c.log.Warnf("APIClient: %s %s returned 404", method, url)
		return ErrNotFound
	default:
		respBody, _ := io.ReadAll(resp.Body)
		c.log.Errorf("APIClient: %s %s returned unexpected status %d: %s", method, url, resp.StatusCode, string(respBody))
		return fmt.Errorf("product service returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.Errorf("APIClient: Failed to decode %s %s response: %v", method, url, err)
		return fmt.Errorf("failed to decode product service response: %w", err)
	}
	return nil
}
