package output

import (
	"context"

	"robocon-bot/internal/domain/entity"
)

// ToolPort is a capability the model may ask for. Execute receives the
// decoded string arguments of one call.
type ToolPort interface {
	Name() entity.ToolName
	Description() string
	Parameters() any
	Execute(ctx context.Context, args map[string]string) (string, error)
}

type ToolRegistry interface {
	Resolve(name string) (ToolPort, error)
	All() []ToolPort
	Definitions() []entity.ToolDefinition
}
