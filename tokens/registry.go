// Package tokens lists and tracks the tokens registered in the wallet.
package tokens

import (
	"context"
	"fmt"
	"slices"
)

// Record identifies a token on the Hathor network.
type Record struct {
	UID    string `json:"uid"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// NativeUID is the uid of the network's native token.
const NativeUID = "00"

// DefaultTokens are always visible in the wallet, ahead of anything the
// user registered.
var DefaultTokens = []Record{
	{UID: NativeUID, Name: "Hathor", Symbol: "HTR"},
}

// Reader yields registered tokens one at a time. ok reports whether a
// record was produced; false means the sequence is exhausted.
type Reader interface {
	Next(ctx context.Context) (rec Record, ok bool, err error)
}

// ListRegistered drains r to exhaustion, strictly one record at a time.
// With excludeNative the native token is filtered out of the result.
// Otherwise DefaultTokens is prepended to the drained records as-is, so
// a token that is both a default and separately registered appears
// twice.
func ListRegistered(ctx context.Context, r Reader, excludeNative bool) ([]Record, error) {
	var drained []Record
	for {
		rec, ok, err := r.Next(ctx)
		if err != nil {
			return nil, fmt.Errorf("drain token registry: %w", err)
		}
		if !ok {
			break
		}
		if excludeNative && rec.UID == NativeUID {
			continue
		}
		drained = append(drained, rec)
	}
	if excludeNative {
		return drained, nil
	}

	out := make([]Record, 0, len(DefaultTokens)+len(drained))
	out = append(out, DefaultTokens...)
	out = append(out, drained...)
	return out, nil
}

// IsRegistered reports whether uid appears in the registered set,
// defaults included, so the native token always counts as registered.
func IsRegistered(ctx context.Context, r Reader, uid string) (bool, error) {
	recs, err := ListRegistered(ctx, r, false)
	if err != nil {
		return false, err
	}
	return slices.ContainsFunc(recs, func(rec Record) bool { return rec.UID == uid }), nil
}
