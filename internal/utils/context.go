// Package utils provides small helpers shared by the notepad packages:
// typed context keys and operation id generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// OpIDCtxKey is the context key of the operation id attached to vault log
// entries.
var OpIDCtxKey = contextKey("opID")

// WithOpID returns a copy of ctx carrying opID.
func WithOpID(ctx context.Context, opID string) context.Context {
	return context.WithValue(ctx, OpIDCtxKey, opID)
}

// GetOpIDFromContext returns the operation id stored in ctx. ok is false when
// it is missing, empty or of an unexpected type.
func GetOpIDFromContext(ctx context.Context) (string, bool) {
	opID, ok := ctx.Value(OpIDCtxKey).(string)
	return opID, ok && opID != ""
}
