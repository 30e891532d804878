package device

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// State is the fixed-length register file of the device.
// Its length is set at construction and never changes.
type State []int64

func NewState(n int) State {
	return make(State, n)
}

func (s State) Get(i int64) (int64, error) {
	if i < 0 || i >= int64(len(s)) {
		return 0, fmt.Errorf("read register %d of %d: %w", i, len(s), ErrRegisterBounds)
	}
	return s[i], nil
}

func (s State) Set(i int64, v int64) error {
	if i < 0 || i >= int64(len(s)) {
		return fmt.Errorf("write register %d of %d: %w", i, len(s), ErrRegisterBounds)
	}
	s[i] = v
	return nil
}

func (s State) Copy() State {
	out := make(State, len(s))
	copy(out, s)
	return out
}

func (s State) Equal(other State) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

func (s State) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, v := range s {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d", v)
	}
	b.WriteByte(')')
	return b.String()
}

// EncodeWitness packs the register count followed by every register, big-endian.
func (s State) EncodeWitness() []byte {
	out := make([]byte, 0, 8+8*len(s))
	out = binary.BigEndian.AppendUint64(out, uint64(len(s)))
	for _, r := range s {
		out = binary.BigEndian.AppendUint64(out, uint64(r))
	}
	return out
}
