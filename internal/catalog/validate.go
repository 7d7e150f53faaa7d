package catalog

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"ProductAPI/pkg/kit"
)

const (
	msgRequired    = "Name, price, and category are required."
	msgPriceNumber = "Price must be a number."
	msgBadJSON     = "Invalid JSON body."
	msgTooLarge    = "Request body too large."
)

var validate = validator.New()

// ProductRequest is the wire shape of a create or update body. Price stays
// untyped so a non-numeric value can be reported as such. A client-sent id
// is accepted and ignored.
type ProductRequest struct {
	ID          *string `json:"id,omitempty"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       any     `json:"price"`
	Category    *string `json:"category"`
	InStock     *bool   `json:"inStock"`
}

type requiredFields struct {
	Name     string `validate:"required"`
	Price    bool   `validate:"required"`
	Category string `validate:"required"`
}

// ValidateProduct checks that name, price and category are present and
// non-empty, then that price is a number.
func ValidateProduct(req ProductRequest) (ProductInput, error) {
	rf := requiredFields{
		Name:     deref(req.Name),
		Price:    truthy(req.Price),
		Category: deref(req.Category),
	}
	if err := validate.Struct(rf); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return ProductInput{}, kit.Validation(msgRequired)
		}
		return ProductInput{}, kit.Internal(err)
	}

	price, ok := req.Price.(float64)
	if !ok {
		return ProductInput{}, kit.Validation(msgPriceNumber)
	}

	return ProductInput{
		Name:        rf.Name,
		Description: req.Description,
		Price:       price,
		Category:    rf.Category,
		InStock:     req.InStock,
	}, nil
}

// DecodeProductRequest reads a single JSON object from r.Body. An empty body
// decodes to an empty request so that validation reports the missing fields.
func DecodeProductRequest(r *http.Request) (ProductRequest, error) {
	var req ProductRequest
	if r.Body == nil {
		return req, nil
	}
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return ProductRequest{}, nil
		}
		return ProductRequest{}, decodeError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err != nil {
			return ProductRequest{}, decodeError(err)
		}
		return ProductRequest{}, kit.Validation(msgBadJSON)
	}
	return req, nil
}

func decodeError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return kit.PayloadTooLarge(msgTooLarge, err)
	}
	e := kit.Validation(msgBadJSON)
	e.Err = err
	return e
}

// truthy mirrors JSON truthiness: null, "", 0 and false are falsy.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	default:
		return true
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
