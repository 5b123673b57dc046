package verification

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"court-reservations/internal/pkg/errs"
)

const (
	MinCode = 100000
	MaxCode = 999999
)

var codeSpan = big.NewInt(MaxCode - MinCode + 1)

// RandomGenerator draws six digit codes uniformly from [MinCode, MaxCode].
type RandomGenerator struct {
	source io.Reader
}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{source: rand.Reader}
}

func (g *RandomGenerator) Generate() (string, error) {
	n, err := rand.Int(g.source, codeSpan)
	if err != nil {
		return "", errs.Wrap(err, "generate verification code")
	}
	return fmt.Sprintf("%06d", n.Int64()+MinCode), nil
}
