package generation

import (
	"context"

	domgen "github.com/kailas-cloud/lexrelay/internal/domain/generation"
)

// Generator produces a chat completion for a validated request.
type Generator interface {
	Complete(ctx context.Context, req domgen.Request) (domgen.Completion, error)
}

// Budget gates requests and accounts consumed tokens.
type Budget interface {
	Check(ctx context.Context) error
	Record(tokens int64)
}
