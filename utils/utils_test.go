package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		err    error
		kind   ErrorKind
		status int
	}{
		{NewValidationError("bad"), KindValidation, http.StatusBadRequest},
		{NewNotFoundError("missing"), KindNotFound, http.StatusNotFound},
		{NewUnauthorizedError("nope"), KindUnauthorized, http.StatusUnauthorized},
		{NewServiceError("down", errors.New("dial tcp")), KindService, http.StatusInternalServerError},
		{errors.New("plain"), KindService, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			wrapped := fmt.Errorf("handler: %w", tt.err)
			assert.Equal(t, tt.kind, KindOf(wrapped))
			assert.Equal(t, tt.status, KindOf(wrapped).HTTPStatus())
		})
	}
}

func TestPublicMessageHidesCause(t *testing.T) {
	cause := errors.New("password=secret")
	err := NewServiceError("Unable to create order", cause)

	assert.Equal(t, "Unable to create order", PublicMessage(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Internal server error", PublicMessage(errors.New("raw")))
	assert.False(t, IsAppError(errors.New("raw")))
}

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(6)
	require.NoError(t, err)
	assert.Len(t, code, 6)
	for _, r := range code {
		assert.Contains(t, codeAlphabet, string(r))
	}

	_, err = GenerateCode(0)
	assert.Error(t, err)
}

func TestGenerateOrderNumber(t *testing.T) {
	now := time.Date(2026, 5, 4, 13, 2, 9, 0, time.UTC)
	assert.Equal(t, "JA-20260504_130209", GenerateOrderNumber("jane doe", now))
	assert.Equal(t, "QX-20260504_130209", GenerateOrderNumber("q", now))
	assert.Equal(t, "XX-20260504_130209", GenerateOrderNumber("", now))
}

func TestFormatValidationError(t *testing.T) {
	type payload struct {
		ItemID uint   `validate:"required"`
		Type   string `validate:"oneof=increment decrement delete"`
		Qty    int    `validate:"min=1,max=10"`
	}

	err := validator.New().Struct(payload{Type: "double", Qty: 11})
	fields := FormatValidationError(err)
	assert.Equal(t, "itemID is required", fields["itemID"])
	assert.Contains(t, fields["type"], "increment decrement delete")
	assert.Contains(t, fields["qty"], "10")

	assert.Equal(t, map[string]string{"body": "malformed request body"}, FormatValidationError(errors.New("EOF")))
}
