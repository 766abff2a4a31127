package id

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"
)

// Generator creates opaque IDs suitable for external references.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator issues 24-character hex ids: a big-endian unix-seconds
// prefix followed by 8 random bytes, so ids sort roughly by creation time.
type RandomGenerator struct {
	now func() time.Time
}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{now: time.Now}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, 12)
	binary.BigEndian.PutUint32(buf[:4], uint32(g.now().Unix()))
	if _, err := rand.Read(buf[4:]); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
