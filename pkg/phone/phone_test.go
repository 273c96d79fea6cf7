package phone_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-pos/pkg/phone"
)

func TestNormalize_Nicaragua(t *testing.T) {
	got, err := phone.Normalize(" 88881234 ", "NI")
	require.NoError(t, err)
	assert.Contains(t, got, "8888")
	assert.NotContains(t, got, "+505")
}

func TestNormalize_Invalido(t *testing.T) {
	_, err := phone.Normalize("12", "NI")
	assert.ErrorIs(t, err, phone.ErrInvalid)
	_, err = phone.Normalize("no es un número", "NI")
	assert.ErrorIs(t, err, phone.ErrInvalid)
}

func TestNormalize_SinRegion(t *testing.T) {
	got, err := phone.Normalize(" 123 ", "")
	require.NoError(t, err)
	assert.Equal(t, "123", got)
}
