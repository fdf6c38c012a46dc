package tokenx

import (
	"math/rand/v2"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	hexToken    = regexp.MustCompile(`^[0-9a-f]{32}$`)
	base36Token = regexp.MustCompile(`^[0-9a-z]+$`)
)

func TestCryptoIssuer(t *testing.T) {
	var iss Issuer = CryptoIssuer{}
	a, b := iss.Issue(), iss.Issue()
	assert.Regexp(t, hexToken, a)
	assert.NotEqual(t, a, b)
}

func TestMathIssuer_Deterministic(t *testing.T) {
	a := NewMathIssuer(rand.NewPCG(1, 2))
	b := NewMathIssuer(rand.NewPCG(1, 2))

	first := a.Issue()
	require.Equal(t, first, b.Issue(), "same seed gives the same sequence")
	require.NotEqual(t, first, a.Issue())
	require.Regexp(t, base36Token, first)
	require.LessOrEqual(t, len(first), 2*chunkLen)
}

func TestNew(t *testing.T) {
	iss, err := New("")
	require.NoError(t, err)
	require.IsType(t, CryptoIssuer{}, iss)

	iss, err = New(SourceMath)
	require.NoError(t, err)
	require.IsType(t, &MathIssuer{}, iss)
	require.NotEmpty(t, iss.Issue())

	_, err = New("dice")
	require.Error(t, err)
}
