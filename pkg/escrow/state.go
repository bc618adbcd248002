package escrow

import (
	"github.com/fortiblox/x1-progkit/pkg/layout"
)

// EscrowSeed is the leading PDA seed for escrow accounts. The full seed
// list is [EscrowSeed, maker pubkey]; the canonical bump found at creation
// is stored in state so later invocations verify with a single hash.
const EscrowSeed = "escrow"

// StateLayout is the escrow account layout:
//
//	maker  [32] maker's pubkey
//	amount [8]  escrowed lamports, little-endian
//	bump   [1]  stored PDA bump seed
//
// 41 bytes, no padding.
var StateLayout = layout.MustNew("escrow",
	layout.Field{Name: "maker", Size: 32},
	layout.Field{Name: "amount", Size: 8},
	layout.Field{Name: "bump", Size: 1},
)

// MakePayload is the Make instruction payload:
//
//	amount [8] lamports to escrow, little-endian
//	bump   [1] client-derived canonical bump for the escrow PDA
var MakePayload = layout.MustNew("make_payload",
	layout.Field{Name: "amount", Size: 8},
	layout.Field{Name: "bump", Size: 1},
)
