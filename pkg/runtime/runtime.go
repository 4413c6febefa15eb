// Located in pkg/runtime/runtime.go
package runtime

import (
	"context"
)

// Inspector defines the contract for fetching a container's inspection output.
// Implementations return the raw JSON exactly as the runtime produced it.
type Inspector interface {
	Inspect(ctx context.Context, container string) ([]byte, error)
}
