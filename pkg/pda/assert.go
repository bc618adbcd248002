package pda

import (
	"github.com/fortiblox/x1-progkit/pkg/types"
)

// Assertion pairs an account key with the seeds and stored bump it must
// derive from and the program error code to surface on mismatch.
type Assertion struct {
	Key   types.Pubkey
	Seeds [][]byte
	Bump  uint8
	Code  uint32
}

// Assert fails with a MismatchError carrying code if key is not the address
// derived from seeds and bump under programID. One hash per call.
func Assert(key types.Pubkey, seeds [][]byte, bump uint8, programID types.Pubkey, code uint32) error {
	if !VerifyWithKnownBump(key, seeds, bump, programID) {
		return &MismatchError{Account: key, Code: code}
	}
	return nil
}

// ValidateAll verifies a batch of assertions against one program id,
// short-circuiting on the first mismatch.
func ValidateAll(programID types.Pubkey, assertions []Assertion) error {
	for i := range assertions {
		a := &assertions[i]
		if err := Assert(a.Key, a.Seeds, a.Bump, programID, a.Code); err != nil {
			return err
		}
	}
	return nil
}
