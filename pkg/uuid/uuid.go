// Package uuid provides UUID v7 generation.
// UUID v7 is sortable by timestamp, which keeps request-log inserts in
// index order.
package uuid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"
)

// UUID represents a UUID v7 identifier.
type UUID [16]byte

// NewV7 generates a new UUID v7 per draft-ietf-uuidrev-rfc4122bis:
// 48 bits of UNIX milliseconds, then version and variant bits over
// random filler.
func NewV7() UUID {
	var u UUID

	// Bytes 0-5: millisecond timestamp, big endian.
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(time.Now().UnixMilli()))
	copy(u[0:6], ts[2:8])

	// Bytes 6-15: random filler. crypto/rand never fails on supported
	// platforms; a failure here means the OS entropy source is gone.
	if _, err := rand.Read(u[6:]); err != nil {
		panic(fmt.Sprintf("uuid: entropy source unavailable: %v", err))
	}

	u[6] = 0x70 | (u[6] & 0x0f) // version 0111
	u[7] = 0x80 | (u[7] & 0x3f) // RFC 4122 variant 10xxxxxx

	return u
}

// String returns the UUID in standard form: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
func (u UUID) String() string {
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		u[0:4],
		u[4:6],
		u[6:8],
		u[8:10],
		u[10:16],
	)
}
