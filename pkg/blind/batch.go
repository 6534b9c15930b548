package blind

import (
	"errors"
	"fmt"

	"github.com/taurusgroup/blind-sig/pkg/math/curve"
	"github.com/taurusgroup/blind-sig/pkg/pool"
)

// BatchItem is one signature to check in VerifyBatch.
type BatchItem struct {
	Signature Signature
	Message   []byte
	PublicKey curve.Point
}

type batchResult struct {
	valid bool
	err   error
}

// VerifyBatch runs Verify on every item, spreading the work over pl.
// A nil pool verifies on the calling goroutine.
//
// The returned slice has one entry per item. The error joins the errors of all
// malformed items, each annotated with its index.
func (s *Scheme) VerifyBatch(pl *pool.Pool, items []BatchItem) ([]bool, error) {
	results := pl.Parallelize(len(items), func(i int) interface{} {
		valid, err := s.Verify(items[i].Signature, items[i].Message, items[i].PublicKey)
		return batchResult{valid: valid, err: err}
	})

	valid := make([]bool, len(items))
	var errs []error
	for i, r := range results {
		res := r.(batchResult)
		valid[i] = res.valid
		if res.err != nil {
			errs = append(errs, fmt.Errorf("item %d: %w", i, res.err))
		}
	}
	return valid, errors.Join(errs...)
}

// AllValid returns true if valid is non empty and every entry is true.
func AllValid(valid []bool) bool {
	for _, v := range valid {
		if !v {
			return false
		}
	}
	return len(valid) > 0
}
