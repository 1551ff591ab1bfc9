package cipher

import (
	"errors"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptShiftsByKey(t *testing.T) {
	// 'A' sits at index 0, so each output symbol is the key symbol itself.
	plain := strings.Repeat("A", len(Key)+3)
	got, err := Encrypt(plain)
	require.NoError(t, err)
	assert.Equal(t, Key+Key[:3], got)
}

func TestEncryptWrapsAround(t *testing.T) {
	// The last symbol shifted by 'T' (index 19) lands on index 18.
	got, err := Encrypt("'")
	require.NoError(t, err)
	assert.Equal(t, "S", got)

	back, err := Decrypt(got)
	require.NoError(t, err)
	assert.Equal(t, "'", back)
}

func TestEmptyInput(t *testing.T) {
	got, err := Encrypt("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUnknownSymbol(t *testing.T) {
	_, err := Encrypt("abc;def")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownSymbol))

	var symErr *SymbolError
	require.ErrorAs(t, err, &symErr)
	assert.Equal(t, ';', symErr.Symbol)
	assert.Equal(t, 3, symErr.Offset)

	_, err = Decrypt("é")
	assert.ErrorIs(t, err, ErrUnknownSymbol)
}

func TestSupports(t *testing.T) {
	assert.True(t, Supports("#~0\n1,Ada,Lovelace"))
	assert.False(t, Supports("50%"))
	assert.True(t, Supports(""))
}

func TestAlphabetHasNoDuplicates(t *testing.T) {
	// Existing store files were written with exactly these 72 symbols.
	assert.Len(t, []rune(Alphabet), 72)
	assert.Len(t, []rune(Key), 20)

	seen := map[rune]bool{}
	for _, r := range Alphabet {
		assert.False(t, seen[r], "duplicate symbol %q", r)
		seen[r] = true
	}
	for _, r := range Key {
		assert.True(t, seen[r], "key symbol %q outside alphabet", r)
	}
}

func TestProperty_RoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	symbol := gen.IntRange(0, len(symbols)-1).Map(func(i int) rune { return symbols[i] })

	properties.Property("decrypt inverts encrypt", prop.ForAll(
		func(rs []rune) bool {
			plain := string(rs)
			enc, err := Encrypt(plain)
			if err != nil {
				return false
			}
			dec, err := Decrypt(enc)
			return err == nil && dec == plain
		},
		gen.SliceOf(symbol),
	))

	properties.Property("encrypt preserves length", prop.ForAll(
		func(rs []rune) bool {
			enc, err := Encrypt(string(rs))
			return err == nil && len([]rune(enc)) == len(rs)
		},
		gen.SliceOf(symbol),
	))

	properties.TestingRun(t)
}
