package model

import (
	"encoding/binary"
	"hash"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/blake2b"
)

// hashWriter feeds a canonical, length prefixed encoding into BLAKE2b-256.
type hashWriter struct {
	h hash.Hash
}

func newHashWriter() *hashWriter {
	// New256 only fails for keys longer than 64 bytes.
	h, _ := blake2b.New256(nil)
	return &hashWriter{h: h}
}

func (w *hashWriter) writeUint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.h.Write(b[:])
}

func (w *hashWriter) writeInt64(v int64) {
	w.writeUint64(uint64(v))
}

func (w *hashWriter) writeString(s string) {
	w.writeUint64(uint64(len(s)))
	w.h.Write([]byte(s))
}

func (w *hashWriter) writeUint128(v Uint128) {
	b := v.Bytes()
	w.h.Write(b[:])
}

func (w *hashWriter) writeHash(h chainhash.Hash) {
	w.h.Write(h[:])
}

// writeOptionalHash writes a presence byte, then the hash if any.
func (w *hashWriter) writeOptionalHash(h *chainhash.Hash) {
	if h == nil {
		w.h.Write([]byte{0})
		return
	}
	w.h.Write([]byte{1})
	w.writeHash(*h)
}

func (w *hashWriter) sum() chainhash.Hash {
	var out chainhash.Hash
	copy(out[:], w.h.Sum(nil))
	return out
}
