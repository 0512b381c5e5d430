package ledger

import (
	"strconv"
	"sync/atomic"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// IDSource generates the synthetic ledger identifiers. Injected so tests can
// pin deterministic values.
type IDSource interface {
	// TransactionHash returns a fresh address-shaped transaction hash,
	// unique per call.
	TransactionHash() (string, error)
	// TokenID returns a fresh token id, unique per call.
	TokenID() string
}

const hashAlphabet = "0123456789abcdef"
const hashLength = 64

// randomIDSource issues nanoid-based transaction hashes and monotonic token
// ids seeded from the wall clock at startup.
type randomIDSource struct {
	counter atomic.Uint64
}

func newRandomIDSource() *randomIDSource {
	src := &randomIDSource{}
	src.counter.Store(uint64(time.Now().UnixNano()))
	return src
}

func (s *randomIDSource) TransactionHash() (string, error) {
	h, err := gonanoid.Generate(hashAlphabet, hashLength)
	if err != nil {
		return "", err
	}
	return "0x" + h, nil
}

func (s *randomIDSource) TokenID() string {
	return strconv.FormatUint(s.counter.Add(1), 10)
}
