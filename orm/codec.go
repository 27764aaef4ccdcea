package orm

import (
	"encoding/binary"
)

// EncodeUint64 returns the big endian representation of val.
func EncodeUint64(val uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, val)
	return bz
}

// DecodeUint64 is the reverse of EncodeUint64. Nil decodes to zero.
func DecodeUint64(bz []byte) (uint64, error) {
	if bz == nil {
		return 0, nil
	}
	if len(bz) != 8 {
		return 0, ErrInvalidEncoding.Newf("uint64 needs 8 bytes, got %d", len(bz))
	}
	return binary.BigEndian.Uint64(bz), nil
}
