package quotes

import (
	"math/rand/v2"
	"strconv"
)

// tokenChunkLen caps each random chunk at 13 base-36 characters.
const tokenChunkLen = 13

func tokenChunk() string {
	s := strconv.FormatUint(rand.Uint64(), 36)
	if len(s) > tokenChunkLen {
		s = s[:tokenChunkLen]
	}
	return s
}

// NewQuoteToken generates an opaque confirmation token: two concatenated
// random base-36 chunks. Tokens are lookup keys, not credentials; the
// customer-facing confirm endpoint treats unknown tokens as not found.
func NewQuoteToken() string {
	return tokenChunk() + tokenChunk()
}
