package server

import (
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"productadmin/internal/domain"
)

// MemStore keeps everything in memory. It is the default backing for the
// stand-in server and what the end-to-end suite runs against.
type MemStore struct {
	mu            sync.RWMutex
	products      map[int]domain.Product
	categories    []domain.Category
	users         map[string]User
	logins        []LoginAttempt
	nextProductID int
	log           *logrus.Logger
}

func NewMemStore(logger *logrus.Logger) *MemStore {
	return &MemStore{
		products:      make(map[int]domain.Product),
		users:         make(map[string]User),
		nextProductID: 1,
		log:           logger,
	}
}

// SeedDemoData loads the demo catalog and the admin account the original
// fixtures shipped with.
func (s *MemStore) SeedDemoData() error {
	if err := s.AddUser(1, "admin", "admin123"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories = []domain.Category{
		{ID: 1, Name: "Electronics"},
		{ID: 2, Name: "Accessories"},
	}

	demo := []domain.Product{
		{Name: "Laptop Pro X1", Price: 35000000, Quantity: 50, CategoryID: 1, Description: "Laptop cấu hình mạnh, màn hình 4K, 16GB RAM, 1TB SSD.", CreatedByID: 1},
		{Name: "Bàn phím cơ K10", Price: 1800000, Quantity: 120, CategoryID: 2, Description: "Bàn phím cơ Blue switch, full-size 104 phím, LED RGB.", CreatedByID: 1},
		{Name: "Chuột quang không dây M720", Price: 850000, Quantity: 75, CategoryID: 2, Description: "Chuột không dây đa thiết bị.", CreatedByID: 1},
		{Name: "Màn hình UltraWide 34 inch", Price: 12500000, Quantity: 20, CategoryID: 1, Description: "Màn hình cong 34 inch, tần số quét 144Hz.", CreatedByID: 1},
	}
	for _, p := range demo {
		p.ID = s.nextProductID
		s.nextProductID++
		s.products[p.ID] = p
	}

	s.log.Infof("MemStore: Seeded %d demo products and %d categories", len(demo), len(s.categories))
	return nil
}

// AddUser registers an account with a bcrypt-hashed password.
func (s *MemStore) AddUser(id int, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = User{ID: id, Username: username, PasswordHash: string(hash)}
	return nil
}

func (s *MemStore) GetUserByUsername(username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (s *MemStore) ListProducts() ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, 0, len(s.products))
	for id := 1; id < s.nextProductID; id++ {
		if p, ok := s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemStore) GetProduct(id int) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	product, ok := s.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

func (s *MemStore) CreateProduct(product domain.Product) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product.ID = s.nextProductID
	s.nextProductID++
	s.products[product.ID] = product
	s.log.Infof("MemStore: Product created with ID %d, Name '%s'", product.ID, product.Name)
	return &product, nil
}

func (s *MemStore) UpdateProduct(id int, product domain.Product) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	product.ID = id
	if product.CreatedByID == 0 {
		product.CreatedByID = existing.CreatedByID
	}
	s.products[id] = product
	return &product, nil
}

func (s *MemStore) DeleteProduct(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(s.products, id)
	s.log.Infof("MemStore: Product %d deleted", id)
	return nil
}

func (s *MemStore) ListCategories() ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Category, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

func (s *MemStore) RecordLogin(attempt LoginAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logins = append(s.logins, attempt)
	return nil
}

func (s *MemStore) ListLogins() ([]LoginAttempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]LoginAttempt, len(s.logins))
	copy(out, s.logins)
	return out, nil
}
