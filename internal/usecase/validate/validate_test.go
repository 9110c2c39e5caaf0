package validate

import (
	"errors"
	"testing"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Code string `json:"code" validate:"required"`
}

type request struct {
	Role  string `json:"role" validate:"required,oneof=influencer manager"`
	Items []item `json:"items" validate:"dive"`
}

func TestStruct(t *testing.T) {
	require.NoError(t, Struct(request{Role: "manager", Items: []item{{Code: "a"}}}))

	err := Struct(request{Role: "admin"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "role", ve.Field)
	assert.Contains(t, ve.Reason, "influencer manager")

	err = Struct(request{Role: "influencer", Items: []item{{Code: "a"}, {}}})
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "items[1].code", ve.Field)
	assert.Equal(t, "is required", ve.Reason)
}
