// Package tokenx issues the opaque identifiers carried by password reset
// links.
package tokenx

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrijs2005/imagenstudio/internal/common"
)

// Issuer produces reset tokens. Tokens only need to be URL-safe and hard to
// guess by hand.
type Issuer interface {
	Issue() string
}

// Source names accepted by New.
const (
	SourceCrypto = "crypto"
	SourceMath   = "math"
)

// New returns the issuer for source.
func New(source string) (Issuer, error) {
	switch source {
	case SourceCrypto, "":
		return CryptoIssuer{}, nil
	case SourceMath:
		return NewMathIssuer(rand.NewPCG(rand.Uint64(), rand.Uint64())), nil
	default:
		return nil, fmt.Errorf("unknown token source %q", source)
	}
}

// CryptoIssuer draws 16 bytes from crypto/rand and hex encodes them.
type CryptoIssuer struct{}

func (CryptoIssuer) Issue() string {
	s, err := common.MakeRandHexString(16)
	if err != nil {
		// crypto/rand does not fail on supported platforms.
		panic(fmt.Sprintf("crypto/rand: %v", err))
	}
	return s
}

// MathIssuer is the non-cryptographic issuer: two base36 chunks drawn from a
// math/rand source. Tokens are guessable with enough effort.
type MathIssuer struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewMathIssuer(src rand.Source) *MathIssuer {
	return &MathIssuer{rnd: rand.New(src)}
}

const chunkLen = 13

func (m *MathIssuer) Issue() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var b strings.Builder
	for range 2 {
		chunk := strconv.FormatUint(m.rnd.Uint64(), 36)
		if len(chunk) > chunkLen {
			chunk = chunk[:chunkLen]
		}
		b.WriteString(chunk)
	}
	return b.String()
}
