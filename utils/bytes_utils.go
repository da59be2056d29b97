package utils

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// HashToHex renders an optional hash, "none" when absent.
func HashToHex(h *chainhash.Hash) string {
	if h == nil {
		return "none"
	}
	return h.String()
}

func HexToHash(s string) (*chainhash.Hash, error) {
	if len(s) != chainhash.MaxHashStringSize {
		return nil, fmt.Errorf("hash must be %d hex characters, got %d", chainhash.MaxHashStringSize, len(s))
	}
	return chainhash.NewHashFromStr(s)
}

// The hashes are just too long to render, instead we take only the first 3 and last 3
// characters and replace the middle part with '...'. E.g. "abcdefghi" will be rendered as "abc...ghi"
func ShortenString(s string) string {
	if len(s) < 9 {
		return s
	}
	return fmt.Sprintf("%s...%s", s[0:3], s[len(s)-3:])
}
