package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Product mirrors the backend's product entity. ID is assigned by the
// server and is zero until the product has been created.
type Product struct {
	ID          int     `json:"id,omitempty"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Description string  `json:"description,omitempty"`
	CategoryID  int     `json:"category_id,omitempty"`
	CreatedByID int     `json:"created_by_id,omitempty"`
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProductDraft holds raw form input as entered by the user. Numeric fields
// stay strings until the draft passes validation and is built into a Product.
type ProductDraft struct {
	Name        string
	Price       string
	Quantity    string
	Description string
	CategoryID  string
}

// DraftFromProduct pre-fills a draft for the edit form.
func DraftFromProduct(p Product) ProductDraft {
	draft := ProductDraft{
		Name:        p.Name,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		Quantity:    strconv.Itoa(p.Quantity),
		Description: p.Description,
	}
	if p.CategoryID != 0 {
		draft.CategoryID = strconv.Itoa(p.CategoryID)
	}
	return draft
}

// Build converts a validated draft into a Product owned by the given user.
// Callers must validate the draft first; a parse failure here means the
// draft bypassed validation.
func (d ProductDraft) Build(createdByID int) (Product, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(d.Price), 64)
	if err != nil {
		return Product{}, fmt.Errorf("draft price %q is not numeric: %w", d.Price, err)
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(d.Quantity))
	if err != nil {
		return Product{}, fmt.Errorf("draft quantity %q is not numeric: %w", d.Quantity, err)
	}
	product := Product{
		Name:        strings.TrimSpace(d.Name),
		Price:       price,
		Quantity:    quantity,
		Description: strings.TrimSpace(d.Description),
		CreatedByID: createdByID,
	}
	if trimmed := strings.TrimSpace(d.CategoryID); trimmed != "" {
		categoryID, err := strconv.Atoi(trimmed)
		if err != nil {
			return Product{}, fmt.Errorf("draft category id %q is not numeric: %w", d.CategoryID, err)
		}
		product.CategoryID = categoryID
	}
	return product, nil
}

// ValidationErrors maps a field name to its message. A field that is absent
// is valid; an empty map means the record is acceptable for submission.
type ValidationErrors map[string]string

func (v ValidationErrors) Valid() bool {
	return len(v) == 0
}
