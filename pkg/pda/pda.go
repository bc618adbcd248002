// Package pda derives and verifies program-derived addresses.
//
// Derivation probes candidate bump seeds from 255 downward until the hash of
// seeds, bump and program id lands off the ed25519 curve; it costs up to 256
// hashes and belongs on cold paths such as first-time account creation.
// Verification with a previously stored bump recomputes a single hash, which
// is the contract hot validation paths should rely on.
package pda

import (
	"crypto/sha256"

	"github.com/fortiblox/x1-progkit/pkg/types"
)

// Derivation limits.
const (
	// MaxSeeds is the maximum number of seeds for PDA derivation,
	// including the bump seed.
	MaxSeeds = 16

	// MaxSeedLen is the maximum length of a single seed in bytes.
	MaxSeedLen = 32

	// Marker is the domain separator appended during PDA derivation.
	Marker = "ProgramDerivedAddress"
)

// Meter charges compute units. *runtime.InvokeContext satisfies it; a nil
// Meter disables metering.
type Meter interface {
	ConsumeUnits(n uint64) error
}

// CreateProgramAddress computes the address for an exact seed list
// (typically user seeds plus a bump seed). It fails with ErrInvalidAddress
// if the digest is a valid ed25519 curve point.
//
// Hash input: seeds... || program_id || "ProgramDerivedAddress".
func CreateProgramAddress(seeds [][]byte, programID types.Pubkey) (types.Pubkey, error) {
	if len(seeds) > MaxSeeds {
		return types.ZeroPubkey, ErrTooManySeeds
	}
	for _, seed := range seeds {
		if len(seed) > MaxSeedLen {
			return types.ZeroPubkey, ErrSeedTooLong
		}
	}

	hasher := sha256.New()
	for _, seed := range seeds {
		hasher.Write(seed)
	}
	hasher.Write(programID[:])
	hasher.Write([]byte(Marker))
	digest := hasher.Sum(nil)

	if isOnCurve(digest) {
		return types.ZeroPubkey, ErrInvalidAddress
	}

	var addr types.Pubkey
	copy(addr[:], digest)
	return addr, nil
}

// Derive finds the canonical bump for the seed list by probing bumps from
// 255 down to 0 and returning the first off-curve address. The meter, if
// non-nil, is charged per probe; metering failures abort the search.
func Derive(seeds [][]byte, programID types.Pubkey, meter Meter) (types.Pubkey, uint8, error) {
	if len(seeds) >= MaxSeeds {
		return types.ZeroPubkey, 0, ErrTooManySeeds
	}
	for _, seed := range seeds {
		if len(seed) > MaxSeedLen {
			return types.ZeroPubkey, 0, ErrSeedTooLong
		}
	}

	seedsWithBump := make([][]byte, len(seeds)+1)
	copy(seedsWithBump, seeds)
	bumpSeed := []byte{0}
	seedsWithBump[len(seeds)] = bumpSeed

	for bump := 255; bump >= 0; bump-- {
		if meter != nil {
			if err := meter.ConsumeUnits(CUFindProgramAddressPer); err != nil {
				return types.ZeroPubkey, 0, err
			}
		}
		bumpSeed[0] = uint8(bump)
		addr, err := CreateProgramAddress(seedsWithBump, programID)
		if err == nil {
			return addr, uint8(bump), nil
		}
	}

	return types.ZeroPubkey, 0, ErrNoViableBump
}

// CUFindProgramAddressPer is the compute cost charged per derivation probe.
// Kept in sync with the runtime's cost table.
const CUFindProgramAddressPer = 1500

// VerifyWithKnownBump recomputes the address for seeds plus the given bump
// with a single hash and compares it to key. Callers persist the bump found
// by Derive and pay one hash here instead of the 256-probe search.
func VerifyWithKnownBump(key types.Pubkey, seeds [][]byte, bump uint8, programID types.Pubkey) bool {
	seedsWithBump := make([][]byte, len(seeds)+1)
	copy(seedsWithBump, seeds)
	seedsWithBump[len(seeds)] = []byte{bump}

	addr, err := CreateProgramAddress(seedsWithBump, programID)
	if err != nil {
		return false
	}
	return addr == key
}
