package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/bingo/shop-console/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized, `{"error":"not authenticated"}`},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, `{"error":"Invalid credentials. Try again."}`},
		{"invalid balance", domain.ErrInvalidBalance, http.StatusUnprocessableEntity, `{"error":"Invalid balance value."}`},
		{"invalid billing", domain.ErrInvalidBillingType, http.StatusUnprocessableEntity, `{"error":"Invalid billing type."}`},
		{"missing fields", domain.ErrMissingFields, http.StatusUnprocessableEntity, `{"error":"All fields are required."}`},
		{"confirmation", domain.ErrConfirmationRequired, http.StatusBadRequest, `{"error":"confirmation required"}`},
		{"no selection", domain.ErrNoShopSelected, http.StatusConflict, `{"error":"No shop selected."}`},
		{"unknown shop", domain.ErrShopNotFound, http.StatusNotFound, `{"error":"shop not found"}`},
		{"wrapped upstream", fmt.Errorf("list shops: %w", domain.ErrUpstream), http.StatusBadGateway, `{"error":"shop API request failed"}`},
		{"echo error", echo.NewHTTPError(http.StatusTeapot, "short and stout"), http.StatusTeapot, `{"error":"short and stout"}`},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler(tt.err, c)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestHTTPErrorHandler_HeadHasNoBody(t *testing.T) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodHead, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrShopNotFound, c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}
