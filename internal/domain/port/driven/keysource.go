package driven

import (
	"context"

	"github.com/shopscribe/credstore/internal/domain/model"
)

// KeySource is one tier of the legacy migration chain. The loader walks
// an ordered list of sources and uses the first one that yields keys.
//
// TryLoad returns (nil, nil) when the source has nothing usable:
// missing files, unparseable data, and empty key sets all count as
// "not found" so the chain falls through to the next tier. A non-nil
// error is reserved for infrastructure failures worth logging; it never
// aborts the chain.
type KeySource interface {
	TryLoad(ctx context.Context) (*model.APIKeys, error)
}
