package dispatch

import (
	"fmt"

	"github.com/fortiblox/x1-progkit/pkg/constraint"
	"github.com/fortiblox/x1-progkit/pkg/runtime"
)

// Decode splits raw instruction bytes into the discriminant and the
// payload. The payload aliases raw; no copy is taken.
func Decode(raw []byte) (byte, []byte, error) {
	if len(raw) == 0 {
		return 0, nil, ErrEmptyInstructionData
	}
	return raw[0], raw[1:], nil
}

// Dispatch decodes raw, looks up its schema, validates the account list and
// payload and invokes the handler. Any failure at any stage is terminal for
// the instruction; the host aborts the surrounding transaction and rolls
// back state, so no partial effect survives an error returned here.
//
// Account validation and payload checking are independent of each other;
// accounts are checked first only because a short account list is the
// cheaper rejection.
func Dispatch(ctx *runtime.InvokeContext, reg *Registry, raw []byte, accounts []*runtime.AccountHandle) error {
	discriminant, payload, err := Decode(raw)
	if err != nil {
		return err
	}

	schema, err := reg.Lookup(discriminant)
	if err != nil {
		return err
	}

	bound, err := constraint.Validate(accounts, schema.Accounts, ctx.ProgramID)
	if err != nil {
		return err
	}

	if len(payload) != schema.PayloadLen() {
		return fmt.Errorf("%w: %s requires %d bytes, got %d",
			ErrPayloadSizeMismatch, schema.Name, schema.PayloadLen(), len(payload))
	}

	return schema.Handler(ctx, bound, payload)
}
