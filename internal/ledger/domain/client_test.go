package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeTelephone(t *testing.T) {
	t.Parallel()

	t.Run("accepts international format", func(t *testing.T) {
		got, ok := NormalizeTelephone("+22501234567")
		require.True(t, ok)
		require.Equal(t, "+22501234567", got)
	})

	t.Run("strips separators", func(t *testing.T) {
		got, ok := NormalizeTelephone("+225 01 23 45 67 89")
		require.True(t, ok)
		require.Equal(t, "+2250123456789", got)
	})

	t.Run("prefixes bare local numbers", func(t *testing.T) {
		got, ok := NormalizeTelephone("0123456789")
		require.True(t, ok)
		require.Equal(t, "+2250123456789", got)
	})

	t.Run("rejects bad numbers", func(t *testing.T) {
		for _, in := range []string{"", "+3361234567", "+2251234", "+22512345678901", "abc", "12345"} {
			_, ok := NormalizeTelephone(in)
			require.False(t, ok, "input %q", in)
		}
	})
}

func TestValidNom(t *testing.T) {
	t.Parallel()

	require.True(t, ValidNom("Koffi Jean"))
	require.True(t, ValidNom("Ab"))
	require.False(t, ValidNom("A"))
	require.False(t, ValidNom("  "))
	require.False(t, ValidNom(strings.Repeat("x", 51)))
	require.True(t, ValidNom(strings.Repeat("x", 50)))
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	require.True(t, ValidEmail("koffi@example.com"))
	require.False(t, ValidEmail(""))
	require.False(t, ValidEmail("not-an-email"))
	require.False(t, ValidEmail("a b@example.com"))
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	ve := NewValidationError()
	require.True(t, ve.Empty())
	require.NoError(t, ve.ErrOrNil())

	ve.Add("nom", "trop court")
	ve.Add("email", "invalide")
	ve.Add("nom", "autre message") // first message wins

	require.False(t, ve.Empty())
	require.Error(t, ve.ErrOrNil())
	require.Equal(t, "trop court", ve.Fields["nom"])
	require.Contains(t, ve.Error(), "email: invalide")
}
