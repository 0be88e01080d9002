package tool

import (
	"robocon-bot/internal/application/port/output"
	"robocon-bot/internal/domain/entity"
)

type PlaceArgs struct {
	Place string `json:"place" jsonschema:"description=Name of the city, venue or region"`
}

func NewPlaceInfoTool(lookup output.LookupPort, logger output.LoggerPort) output.ToolPort {
	return &lookupTool{
		name:        entity.ToolPlaceInfo,
		description: "Returns general information about a place such as a city, venue or region.",
		noun:        "place",
		params:      parametersOf(&PlaceArgs{}),
		subject: func(args map[string]string) (string, error) {
			var in PlaceArgs
			if err := decodeArgs(args, &in); err != nil {
				return "", err
			}
			return requireArg(in.Place, "place")
		},
		lookup: lookup,
		logger: logger,
	}
}
