package entity

type ToolName string

const (
	ToolPersonDetails ToolName = "get_person_details"
	ToolPlaceInfo     ToolName = "get_place_info"
	ToolTeamInfo      ToolName = "get_team_info"
)

// ToolNames lists every tool the registry may hold.
var ToolNames = []ToolName{
	ToolPersonDetails,
	ToolPlaceInfo,
	ToolTeamInfo,
}

func (t ToolName) String() string {
	return string(t)
}

// ParseToolName maps an upstream tool name onto the closed set of known tools.
func ParseToolName(name string) (ToolName, bool) {
	switch ToolName(name) {
	case ToolPersonDetails:
		return ToolPersonDetails, true
	case ToolPlaceInfo:
		return ToolPlaceInfo, true
	case ToolTeamInfo:
		return ToolTeamInfo, true
	default:
		return "", false
	}
}
