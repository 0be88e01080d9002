package service

import (
	"context"
	"testing"

	"robocon-bot/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTool struct {
	name entity.ToolName
}

func (s *stubTool) Name() entity.ToolName { return s.name }
func (s *stubTool) Description() string   { return "stub " + s.name.String() }
func (s *stubTool) Parameters() any       { return map[string]any{"type": "object"} }
func (s *stubTool) Execute(ctx context.Context, args map[string]string) (string, error) {
	return "ok", nil
}

func TestNewToolRegistry_RejectsUnknownName(t *testing.T) {
	_, err := NewToolRegistry(&stubTool{name: "get_weather"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a known tool")
}

func TestNewToolRegistry_RejectsDuplicate(t *testing.T) {
	_, err := NewToolRegistry(&stubTool{name: entity.ToolPlaceInfo}, &stubTool{name: entity.ToolPlaceInfo})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestResolve(t *testing.T) {
	registry, err := NewToolRegistry(&stubTool{name: entity.ToolPlaceInfo})
	require.NoError(t, err)

	tool, err := registry.Resolve("get_place_info")
	require.NoError(t, err)
	assert.Equal(t, entity.ToolPlaceInfo, tool.Name())

	_, err = registry.Resolve("get_weather")
	assert.ErrorIs(t, err, entity.ErrUnknownTool)

	_, err = registry.Resolve("get_team_info")
	assert.ErrorIs(t, err, entity.ErrUnknownTool)
}

func TestDefinitions_MatchRegistrySorted(t *testing.T) {
	registry, err := NewToolRegistry(
		&stubTool{name: entity.ToolTeamInfo},
		&stubTool{name: entity.ToolPersonDetails},
		&stubTool{name: entity.ToolPlaceInfo},
	)
	require.NoError(t, err)

	defs := registry.Definitions()
	require.Len(t, defs, 3)
	assert.Equal(t, "get_person_details", defs[0].Name)
	assert.Equal(t, "get_place_info", defs[1].Name)
	assert.Equal(t, "get_team_info", defs[2].Name)
	assert.Equal(t, "stub get_team_info", defs[2].Description)
}

func TestDefinitions_EmptyRegistry(t *testing.T) {
	registry, err := NewToolRegistry()
	require.NoError(t, err)
	assert.Empty(t, registry.Definitions())
}
