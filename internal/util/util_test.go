package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintStable(t *testing.T) {
	a := Fingerprint("SOL-REENTRANCY", "a.sol", 10, "Bank/withdraw")
	b := Fingerprint("SOL-REENTRANCY", "a.sol", 10, "Bank/withdraw")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestFingerprintDistinguishesInputs(t *testing.T) {
	base := Fingerprint("R", "f.sol", 1, "c")
	assert.NotEqual(t, base, Fingerprint("R2", "f.sol", 1, "c"))
	assert.NotEqual(t, base, Fingerprint("R", "g.sol", 1, "c"))
	assert.NotEqual(t, base, Fingerprint("R", "f.sol", 2, "c"))
	assert.NotEqual(t, base, Fingerprint("R", "f.sol", 1, "d"))
}

func TestExtractSnippetWindow(t *testing.T) {
	lines := []string{"one", "two", "three", "four", "five", "six"}
	got := ExtractSnippet(lines, 3, 4)
	assert.Equal(t, "one\ntwo\nthree\nfour\nfive", got)
}

func TestExtractSnippetClampsAtEdges(t *testing.T) {
	lines := []string{"one", "two", "three"}
	assert.True(t, strings.HasPrefix(ExtractSnippet(lines, 1, 4), "one"))
	assert.True(t, strings.HasSuffix(ExtractSnippet(lines, 3, 4), "three"))
	assert.Equal(t, "", ExtractSnippet(nil, 1, 4))
	// out-of-range lines clamp instead of panicking
	assert.NotEmpty(t, ExtractSnippet(lines, 99, 4))
}
