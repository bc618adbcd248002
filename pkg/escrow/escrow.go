// Package escrow is a small lamport escrow program built on the progkit
// validation, PDA and codec layers. It doubles as the reference wiring for
// new programs: one schema per instruction, registered once at startup.
package escrow

import (
	"crypto/sha256"

	"github.com/fortiblox/x1-progkit/pkg/constraint"
	"github.com/fortiblox/x1-progkit/pkg/dispatch"
	"github.com/fortiblox/x1-progkit/pkg/types"
)

// ProgramID identifies the escrow program.
var ProgramID = types.Pubkey(sha256.Sum256([]byte("x1-progkit/escrow/v1")))

// Instruction discriminants.
const (
	InstructionMake  byte = 0
	InstructionTake  byte = 1
	InstructionClose byte = 2
)

// NewRegistry builds the program's schema table. Call once at startup.
func NewRegistry() *dispatch.Registry {
	reg := dispatch.NewRegistry()

	reg.MustRegister(&dispatch.Schema{
		Discriminant: InstructionMake,
		Name:         "Make",
		Accounts: []constraint.Spec{
			{Kind: constraint.Signer, Writable: true, Name: "maker", Desc: "funds the escrow"},
			{Kind: constraint.Uninitialized, Name: "escrow", Desc: "escrow PDA to create"},
		},
		Payload: MakePayload,
		Handler: handleMake,
	})

	reg.MustRegister(&dispatch.Schema{
		Discriminant: InstructionTake,
		Name:         "Take",
		Accounts: []constraint.Spec{
			{Kind: constraint.Signer, Writable: true, Name: "taker", Desc: "pays the maker, receives the escrow"},
			{Kind: constraint.Any, Writable: true, Name: "maker", Desc: "receives the taker's payment"},
			{Kind: constraint.ProgramOwned, Writable: true, Name: "escrow", Desc: "escrow state PDA"},
		},
		Handler: handleTake,
	})

	reg.MustRegister(&dispatch.Schema{
		Discriminant: InstructionClose,
		Name:         "Close",
		Accounts: []constraint.Spec{
			{Kind: constraint.Signer, Writable: true, Name: "maker", Desc: "original maker, refunded on close"},
			{Kind: constraint.ProgramOwned, Writable: true, Name: "escrow", Desc: "escrow state PDA"},
		},
		Handler: handleClose,
	})

	return reg
}
