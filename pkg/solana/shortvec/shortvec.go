// Package shortvec implements the compact-u16 length prefix used in Solana
// transactions: seven bits per byte, least significant group first, with the
// high bit set on every byte but the last.
package shortvec

import (
	"io"
	"math"

	"github.com/pkg/errors"
)

// MaxEncodedLen is the largest number of bytes a length can occupy
const MaxEncodedLen = 3

var (
	ErrLenTooLarge = errors.Errorf("len exceeds %d", math.MaxUint16)
	ErrInvalidLen  = errors.New("invalid shortvec length encoding")
)

// EncodeLen writes len to w, returning the number of bytes written
func EncodeLen(w io.Writer, len int) (int, error) {
	if len < 0 || len > math.MaxUint16 {
		return 0, ErrLenTooLarge
	}

	var buf [MaxEncodedLen]byte
	size := 0
	for {
		buf[size] = byte(len & 0x7f)
		len >>= 7
		if len == 0 {
			size++
			break
		}
		buf[size] |= 0x80
		size++
	}

	return w.Write(buf[:size])
}

// DecodeLen reads a length written by EncodeLen from r
func DecodeLen(r io.Reader) (int, error) {
	var b [1]byte
	var val int

	for i := 0; i < MaxEncodedLen; i++ {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}

		val |= int(b[0]&0x7f) << (7 * i)
		if b[0]&0x80 == 0 {
			if val > math.MaxUint16 {
				return 0, ErrInvalidLen
			}
			return val, nil
		}
	}

	return 0, ErrInvalidLen
}
