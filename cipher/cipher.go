// Package cipher implements the fixed-key stream substitution used to
// obfuscate the store file. It is not encryption in any security sense.
package cipher

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Alphabet is the ordered symbol set. Symbols outside it cannot be stored.
	// Its 72 symbols and their order are part of the file format: changing
	// either makes existing store files undecodable.
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz1234567890 /:@.,#~\n'"
	// Key is applied cyclically, one symbol per input position.
	Key = "T3OeM2aIXsDJp4LwPAgY"
)

var ErrUnknownSymbol = errors.New("symbol outside cipher alphabet")

// SymbolError reports the first symbol that the alphabet cannot represent.
type SymbolError struct {
	Symbol rune
	Offset int
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("%v: %q at offset %d", ErrUnknownSymbol, e.Symbol, e.Offset)
}

func (e *SymbolError) Unwrap() error {
	return ErrUnknownSymbol
}

var (
	symbols  = []rune(Alphabet)
	keyIndex []int
	position = make(map[rune]int, len(Alphabet))
)

func init() {
	for i, r := range symbols {
		position[r] = i
	}
	for _, r := range Key {
		keyIndex = append(keyIndex, position[r])
	}
}

// Encrypt shifts every symbol forward by the matching key symbol.
func Encrypt(plain string) (string, error) {
	return shift(plain, 1)
}

// Decrypt reverses Encrypt.
func Decrypt(cipherText string) (string, error) {
	return shift(cipherText, -1)
}

// Supports reports whether s can pass through the cipher.
func Supports(s string) bool {
	for _, r := range s {
		if _, ok := position[r]; !ok {
			return false
		}
	}
	return true
}

func shift(in string, dir int) (string, error) {
	n := len(symbols)
	var b strings.Builder
	b.Grow(len(in))

	i := 0
	for offset, r := range in {
		p, ok := position[r]
		if !ok {
			return "", &SymbolError{Symbol: r, Offset: offset}
		}
		k := keyIndex[i%len(keyIndex)]
		b.WriteRune(symbols[((p+dir*k)%n+n)%n])
		i++
	}
	return b.String(), nil
}
