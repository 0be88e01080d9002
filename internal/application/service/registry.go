package service

import (
	"fmt"
	"sort"

	"robocon-bot/internal/application/port/output"
	"robocon-bot/internal/domain/entity"
)

var _ output.ToolRegistry = (*ToolRegistryImpl)(nil)

// ToolRegistryImpl is filled once by NewToolRegistry and is read-only
// afterwards, so it is safe for concurrent turns.
type ToolRegistryImpl struct {
	tools map[entity.ToolName]output.ToolPort
}

func NewToolRegistry(tools ...output.ToolPort) (*ToolRegistryImpl, error) {
	r := &ToolRegistryImpl{
		tools: make(map[entity.ToolName]output.ToolPort, len(tools)),
	}
	for _, tool := range tools {
		name, ok := entity.ParseToolName(tool.Name().String())
		if !ok {
			return nil, fmt.Errorf("register tool %q: not a known tool", tool.Name())
		}
		if _, dup := r.tools[name]; dup {
			return nil, fmt.Errorf("register tool %q: already registered", name)
		}
		r.tools[name] = tool
	}
	return r, nil
}

// Resolve returns entity.ErrUnknownTool for names outside the known set and
// for known names that were not registered in this deployment.
func (r *ToolRegistryImpl) Resolve(name string) (output.ToolPort, error) {
	toolName, ok := entity.ParseToolName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", entity.ErrUnknownTool, name)
	}
	tool, ok := r.tools[toolName]
	if !ok {
		return nil, fmt.Errorf("%w: %q is not registered", entity.ErrUnknownTool, name)
	}
	return tool, nil
}

func (r *ToolRegistryImpl) All() []output.ToolPort {
	result := make([]output.ToolPort, 0, len(r.tools))
	for _, tool := range r.tools {
		result = append(result, tool)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result
}

func (r *ToolRegistryImpl) Definitions() []entity.ToolDefinition {
	all := r.All()
	result := make([]entity.ToolDefinition, 0, len(all))
	for _, tool := range all {
		result = append(result, entity.ToolDefinition{
			Name:        tool.Name().String(),
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
		})
	}
	return result
}
