package domain

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// BillingType governs settlement timing for a shop. Its semantics are owned by
// the shop API; the console only round-trips the value.
type BillingType string

const (
	BillingPrepaid  BillingType = "prepaid"
	BillingPostpaid BillingType = "postpaid"
)

var ErrInvalidBalance = errors.New("invalid balance value")
var ErrInvalidBillingType = errors.New("invalid billing type")
var ErrMissingFields = errors.New("missing required fields")
var ErrShopNotFound = errors.New("shop not found")

// Valid reports whether b is one of the known billing types.
func (b BillingType) Valid() bool {
	return b == BillingPrepaid || b == BillingPostpaid
}

// Shop is a merchant account as returned by GET /shops.
type Shop struct {
	ShopID      string      `json:"shop_id"`
	Username    string      `json:"username"`
	Balance     float64     `json:"balance"`
	BillingType BillingType `json:"billing_type,omitempty"`
}

// ShopForm is the operator-editable mirror of a Shop. Every field is kept as
// text, exactly as typed; Password is write-only and never populated from the API.
type ShopForm struct {
	ShopID      string `json:"shop_id"`
	Username    string `json:"username"`
	Password    string `json:"-"`
	Balance     string `json:"balance"`
	BillingType string `json:"billing_type"`
}

// NewShopForm returns an empty form with the default billing type.
func NewShopForm() ShopForm {
	return ShopForm{BillingType: string(BillingPrepaid)}
}

// FormFromShop populates a form for editing s. The password stays blank.
func FormFromShop(s Shop) ShopForm {
	billing := s.BillingType
	if !billing.Valid() {
		billing = BillingPrepaid
	}
	return ShopForm{
		ShopID:      s.ShopID,
		Username:    s.Username,
		Balance:     strconv.FormatFloat(s.Balance, 'f', -1, 64),
		BillingType: string(billing),
	}
}

// CreateShopRequest is the body of POST /shops.
type CreateShopRequest struct {
	ShopID      string      `json:"shop_id"`
	Username    string      `json:"username"`
	Password    string      `json:"password"`
	Balance     float64     `json:"balance"`
	BillingType BillingType `json:"billing_type"`
}

// UpdateShopRequest is the partial body of PUT /shops/{shop_id}. Nil fields
// are omitted from the payload; the API treats an absent field as unchanged.
type UpdateShopRequest struct {
	Username    string       `json:"username"`
	Password    *string      `json:"password,omitempty"`
	Balance     *float64     `json:"balance,omitempty"`
	BillingType *BillingType `json:"billing_type,omitempty"`
}

// ParseBalance converts the balance text of a form into a number. Empty,
// NaN and infinite values are rejected with ErrInvalidBalance.
func ParseBalance(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidBalance
	}
	return v, nil
}

// CreateRequest validates the form for creation and builds the request.
func (f ShopForm) CreateRequest() (CreateShopRequest, error) {
	if strings.TrimSpace(f.ShopID) == "" || strings.TrimSpace(f.Username) == "" ||
		f.Password == "" || strings.TrimSpace(f.Balance) == "" || f.BillingType == "" {
		return CreateShopRequest{}, ErrMissingFields
	}
	balance, err := ParseBalance(f.Balance)
	if err != nil {
		return CreateShopRequest{}, err
	}
	billing := BillingType(f.BillingType)
	if !billing.Valid() {
		return CreateShopRequest{}, ErrInvalidBillingType
	}
	return CreateShopRequest{
		ShopID:      strings.TrimSpace(f.ShopID),
		Username:    f.Username,
		Password:    f.Password,
		Balance:     balance,
		BillingType: billing,
	}, nil
}

// UpdateRequest builds the partial update payload: username always, every
// other field only when the operator filled it in.
func (f ShopForm) UpdateRequest() (UpdateShopRequest, error) {
	req := UpdateShopRequest{Username: f.Username}

	if strings.TrimSpace(f.Balance) != "" {
		balance, err := ParseBalance(f.Balance)
		if err != nil {
			return UpdateShopRequest{}, err
		}
		req.Balance = &balance
	}
	if f.Password != "" {
		password := f.Password
		req.Password = &password
	}
	if f.BillingType != "" {
		billing := BillingType(f.BillingType)
		if !billing.Valid() {
			return UpdateShopRequest{}, ErrInvalidBillingType
		}
		req.BillingType = &billing
	}
	return req, nil
}
