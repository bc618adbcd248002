package layout

import (
	"github.com/fortiblox/x1-progkit/pkg/runtime"
)

// Load overlays the layout onto an account's data buffer for reading. The
// view aliases the buffer; callers that need a stable copy must take one.
func (l *Layout) Load(h *runtime.AccountHandle) (View, error) {
	return l.Wrap(h.Data)
}

// LoadMut overlays the layout onto an account's data buffer for mutation.
// The caller guarantees no other live view over the same buffer for the
// duration; the surrounding single-threaded execution model makes this a
// discipline rather than a lock.
func (l *Layout) LoadMut(h *runtime.AccountHandle) (View, error) {
	return l.Wrap(h.Data)
}

// WithState runs body with a mutable view over the account's data. The view
// is scoped to the callback and must not be retained past it.
func (l *Layout) WithState(h *runtime.AccountHandle, body func(View) error) error {
	v, err := l.Wrap(h.Data)
	if err != nil {
		return err
	}
	return body(v)
}

// LoadUnchecked overlays the layout without the length check. Precondition:
// the buffer length was already validated in the same invocation. See
// WrapUnchecked.
func (l *Layout) LoadUnchecked(h *runtime.AccountHandle) View {
	return l.WrapUnchecked(h.Data)
}
