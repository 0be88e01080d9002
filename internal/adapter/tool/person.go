package tool

import (
	"robocon-bot/internal/application/port/output"
	"robocon-bot/internal/domain/entity"
)

type PersonArgs struct {
	Person string `json:"person" jsonschema:"description=Full name of the person to look up"`
}

func NewPersonDetailsTool(lookup output.LookupPort, logger output.LoggerPort) output.ToolPort {
	return &lookupTool{
		name:        entity.ToolPersonDetails,
		description: "Returns background details about a person: who they are and what they are known for.",
		noun:        "person",
		params:      parametersOf(&PersonArgs{}),
		subject: func(args map[string]string) (string, error) {
			var in PersonArgs
			if err := decodeArgs(args, &in); err != nil {
				return "", err
			}
			return requireArg(in.Person, "person")
		},
		lookup: lookup,
		logger: logger,
	}
}
