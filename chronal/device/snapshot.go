package device

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Snapshot captures the mutable part of a Program, so a long run can be resumed.
type Snapshot struct {
	Pointer    int64  `json:"pointer"`
	Steps      uint64 `json:"steps"`
	IPRegister int    `json:"ipRegister"`
	Registers  State  `json:"registers"`
}

func (p *Program) Snapshot() *Snapshot {
	return &Snapshot{
		Pointer:    p.pointer,
		Steps:      p.steps,
		IPRegister: p.ipRegister,
		Registers:  p.state.Copy(),
	}
}

// Restore replaces the program's pointer, step count and registers with the snapshot's.
func (p *Program) Restore(snap *Snapshot) error {
	if snap.IPRegister != p.ipRegister {
		return fmt.Errorf("snapshot maps pointer to register %d, program to %d", snap.IPRegister, p.ipRegister)
	}
	if len(snap.Registers) != len(p.state) {
		return fmt.Errorf("snapshot has %d registers, program has %d: %w", len(snap.Registers), len(p.state), ErrRegisterBounds)
	}
	p.pointer = snap.Pointer
	p.steps = snap.Steps
	p.state = snap.Registers.Copy()
	return nil
}

func (snap *Snapshot) EncodeWitness() hexutil.Bytes {
	out := make([]byte, 0, 24)
	out = binary.BigEndian.AppendUint64(out, uint64(snap.Pointer))
	out = binary.BigEndian.AppendUint64(out, snap.Steps)
	out = binary.BigEndian.AppendUint64(out, uint64(int64(snap.IPRegister)))
	return append(out, snap.Registers.EncodeWitness()...)
}

// Hash commits to the full snapshot; equal runs produce equal hashes.
func (snap *Snapshot) Hash() common.Hash {
	return crypto.Keccak256Hash(snap.EncodeWitness())
}
