package settings

import "strings"

// Model is a logical model id as configured by the admin
type Model string

// logical model ids that are not valid vendor names
const (
	ModelGPT41  Model = "gpt-4.1"
	ModelO4Mini Model = "o4-mini"
)

// modelAliases maps logical ids to the vendor model used on the wire
var modelAliases = map[Model]string{
	ModelGPT41:  "gpt-4-turbo",
	ModelO4Mini: "gpt-4",
}

// ResolveModel returns the vendor model name for a configured id, unknown ids pass through
func ResolveModel(id string) string {
	id = strings.TrimSpace(id)
	if vendor, ok := modelAliases[Model(id)]; ok {
		return vendor
	}
	return id
}
