package validation

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"productadmin/internal/domain"
)

// Product field keys as they appear in ValidationErrors.
const (
	FieldName        = "name"
	FieldPrice       = "price"
	FieldQuantity    = "quantity"
	FieldDescription = "description"
	FieldCategory    = "category_id"
)

const (
	MsgProductNameRequired = "Product name is required"
	MsgProductNameTooShort = "Product name must be at least 3 characters"
	MsgProductNameTooLong  = "Product name must not exceed 100 characters"

	MsgPriceNotNumeric  = "Price must be numeric"
	MsgPriceNotPositive = "Price must be greater than 0"
	MsgPriceTooLarge    = "Price must not exceed 999,999,999"

	MsgQuantityNotNumeric = "Quantity must be numeric"
	MsgQuantityNegative   = "Quantity cannot be negative"
	MsgQuantityTooLarge   = "Quantity must not exceed 99,999"

	MsgDescriptionTooLong = "Description must not exceed 500 characters"

	MsgCategoryInvalid = "Category must reference a valid id"
)

const (
	maxPrice    = 999999999
	maxQuantity = 99999
)

// ValidateProduct checks every draft field independently and reports all
// failures at once. Only failing fields appear as keys; an empty result
// means the draft is ready to submit.
func ValidateProduct(draft domain.ProductDraft) domain.ValidationErrors {
	errs := domain.ValidationErrors{}

	// Length rules apply to the trimmed name, the value that is submitted.
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		errs[FieldName] = MsgProductNameRequired
	} else if utf8.RuneCountInString(name) < 3 {
		errs[FieldName] = MsgProductNameTooShort
	} else if utf8.RuneCountInString(name) > 100 {
		errs[FieldName] = MsgProductNameTooLong
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(draft.Price), 64)
	if err != nil || math.IsNaN(price) {
		errs[FieldPrice] = MsgPriceNotNumeric
	} else if price <= 0 {
		errs[FieldPrice] = MsgPriceNotPositive
	} else if price > maxPrice {
		errs[FieldPrice] = MsgPriceTooLarge
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(draft.Quantity))
	if err != nil {
		errs[FieldQuantity] = MsgQuantityNotNumeric
	} else if quantity < 0 {
		errs[FieldQuantity] = MsgQuantityNegative
	} else if quantity > maxQuantity {
		errs[FieldQuantity] = MsgQuantityTooLarge
	}

	// Description is optional; only an over-long value errors.
	if utf8.RuneCountInString(draft.Description) > 500 {
		errs[FieldDescription] = MsgDescriptionTooLong
	}

	// Category stays optional, but a non-empty value has to be a usable id.
	if trimmed := strings.TrimSpace(draft.CategoryID); trimmed != "" {
		categoryID, err := strconv.Atoi(trimmed)
		if err != nil || categoryID <= 0 {
			errs[FieldCategory] = MsgCategoryInvalid
		}
	}

	return errs
}
