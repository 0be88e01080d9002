package tool

import (
	"robocon-bot/internal/application/port/output"
	"robocon-bot/internal/domain/entity"
)

type TeamArgs struct {
	TeamName string `json:"team_name" jsonschema:"description=Name of the team or institution fielding it"`
}

func NewTeamInfoTool(lookup output.LookupPort, logger output.LoggerPort) output.ToolPort {
	return &lookupTool{
		name:        entity.ToolTeamInfo,
		description: "Returns information about a competition team or the institution behind it.",
		noun:        "team",
		params:      parametersOf(&TeamArgs{}),
		subject: func(args map[string]string) (string, error) {
			var in TeamArgs
			if err := decodeArgs(args, &in); err != nil {
				return "", err
			}
			return requireArg(in.TeamName, "team_name")
		},
		lookup: lookup,
		logger: logger,
	}
}

// All returns every lookup tool bound to the same backend.
func All(lookup output.LookupPort, logger output.LoggerPort) []output.ToolPort {
	return []output.ToolPort{
		NewPersonDetailsTool(lookup, logger),
		NewPlaceInfoTool(lookup, logger),
		NewTeamInfoTool(lookup, logger),
	}
}
