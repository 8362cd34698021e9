package ingest

import (
	"strings"
	"unsafe"

	"github.com/tidwall/gjson"

	"github.com/dshills/dispatchkit/event"
)

// View is a borrowed, read-only window over one event's raw bytes. It is
// valid only until its scope ends; the promotion methods are the sole way to
// carry data past that point. Typed fields are parsed on first access only:
// a field never accessed is never parsed, and malformed backing bytes
// surface at the first access, not at construction. A View is used by one
// goroutine, the one running the synchronous phase.
type View struct {
	scope     *Scope
	raw       []byte
	validated bool
	malformed bool
}

// Bytes returns the raw backing bytes. Callers must treat them as read-only
// and must not retain them past the scope.
func (v *View) Bytes() []byte {
	return v.raw
}

// Len reports the payload size in bytes.
func (v *View) Len() int {
	return len(v.raw)
}

// Text returns the payload as a string view over the backing bytes, without
// copying. The string aliases the scope's memory and must not outlive it;
// promote before crossing the async boundary.
func (v *View) Text() string {
	if len(v.raw) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(v.raw), len(v.raw))
}

// valid checks the payload is well-formed JSON, once, at the first typed
// field access.
func (v *View) valid() error {
	if v.scope != nil && v.scope.ended {
		return ErrScopeEnded
	}
	if !v.validated {
		v.validated = true
		v.malformed = !gjson.ValidBytes(v.raw)
	}
	if v.malformed {
		return ErrMalformed
	}
	return nil
}

// Field resolves a gjson path against the payload. The result's string
// values alias the backing bytes.
func (v *View) Field(path string) (gjson.Result, error) {
	if err := v.valid(); err != nil {
		return gjson.Result{}, err
	}
	res := gjson.GetBytes(v.raw, path)
	if !res.Exists() {
		return gjson.Result{}, ErrMissingField
	}
	return res, nil
}

// Str resolves a field as a string. The returned string may alias the
// backing bytes.
func (v *View) Str(path string) (string, error) {
	res, err := v.Field(path)
	if err != nil {
		return "", err
	}
	return res.String(), nil
}

// Int resolves a field as an integer.
func (v *View) Int(path string) (int64, error) {
	res, err := v.Field(path)
	if err != nil {
		return 0, err
	}
	return res.Int(), nil
}

// Has reports whether the payload is well-formed and contains the field.
func (v *View) Has(path string) bool {
	_, err := v.Field(path)
	return err == nil
}

// PromoteBytes returns an independently-owned copy of the payload, safe to
// hold after the scope ends.
func (v *View) PromoteBytes() []byte {
	owned := make([]byte, len(v.raw))
	copy(owned, v.raw)
	return owned
}

// PromoteString returns an independently-owned copy of a string that aliases
// this view's backing bytes, such as a Text() sub-slice or a Str() result.
func (v *View) PromoteString(sub string) string {
	return strings.Clone(sub)
}

// Promote builds an owned event whose payload is an independent copy of the
// backing bytes, observationally equal to the view after the scope ends. An
// empty source falls back to the scope's configured source.
func (v *View) Promote(source string) event.Event[[]byte] {
	if source == "" && v.scope != nil {
		source = v.scope.source
	}
	return event.New(source, v.PromoteBytes())
}
