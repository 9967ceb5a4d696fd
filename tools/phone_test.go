package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"ja em e164", "+5511987654321", "+5511987654321"},
		{"so digitos com ddi", "5511987654321", "+5511987654321"},
		{"br sem ddi 11 digitos", "11987654321", "+5511987654321"},
		{"br sem ddi 10 digitos", "1187654321", "+551187654321"},
		{"com formatacao", "(11) 98765-4321", "+5511987654321"},
		{"zeros a esquerda", "0011987654321", "+5511987654321"},
		{"internacional", "+15105550123", "+15105550123"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizePhone(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizePhoneInvalid(t *testing.T) {
	for _, in := range []string{"", "   ", "123", "abc", "9876-5432"} {
		t.Run("invalid_"+in, func(t *testing.T) {
			_, err := NormalizePhone(in)
			assert.Error(t, err)
		})
	}
}
