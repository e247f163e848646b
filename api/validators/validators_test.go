package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/mcastellon/shopora-backend/pkg/errors"
)

type samplePayload struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required,len=10,numeric"`
	Email string `json:"email" validate:"omitempty,email"`
}

func TestDecodeJSONBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Ada","phone":"9876543210"}`))

	var payload samplePayload
	require.NoError(t, DecodeJSONBody(r, &payload))
	assert.Equal(t, "Ada", payload.Name)
}

func TestDecodeJSONBodyFieldErrors(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"phone":"123"}`))

	var payload samplePayload
	err := DecodeJSONBody(r, &payload)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["name"])
	assert.Equal(t, "must be exactly 10 characters", details["phone"])
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Ada","phone":"9876543210","extra":true}`))

	var payload samplePayload
	err := DecodeJSONBody(r, &payload)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestParsePagination(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/shop", nil)
		params, err := ParsePagination(r)
		require.NoError(t, err)
		assert.Equal(t, 1, params.Page)
		assert.Equal(t, 12, params.PerPage)
	})

	t.Run("explicit", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/shop?page=3&per_page=24", nil)
		params, err := ParsePagination(r)
		require.NoError(t, err)
		assert.Equal(t, 3, params.Page)
		assert.Equal(t, 24, params.PerPage)
	})

	t.Run("non numeric", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/shop?page=abc", nil)
		_, err := ParsePagination(r)
		assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	})

	t.Run("out of range", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/shop?per_page=5000", nil)
		_, err := ParsePagination(r)
		assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	})
}

func TestParseQueryEnum(t *testing.T) {
	r := httptest.NewRequest("GET", "/shop?order=price", nil)

	value, err := ParseQueryEnum(r, "order", "default", "default", "date", "price", "price-desc")
	require.NoError(t, err)
	assert.Equal(t, "price", value)

	value, err = ParseQueryEnum(r, "missing", "default", "default", "date")
	require.NoError(t, err)
	assert.Equal(t, "default", value)

	r = httptest.NewRequest("GET", "/shop?order=bogus", nil)
	_, err = ParseQueryEnum(r, "order", "default", "default", "date")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}
