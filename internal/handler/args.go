package handler

// ArgType describes the expected type of a connection parameter.
type ArgType string

const (
	ArgTypeStr  ArgType = "str"
	ArgTypeInt  ArgType = "int"
	ArgTypeBool ArgType = "bool"
)

// ConnectionArg documents one parameter an engine accepts in its
// configuration block. Engines publish their full argument table through
// the registry so clients can discover how to register a datasource.
type ConnectionArg struct {
	Name        string  `json:"name"`
	Type        ArgType `json:"type"`
	Required    bool    `json:"required"`
	Secret      bool    `json:"secret"` // value must never be logged or echoed back
	Description string  `json:"description"`
}

// SecretArgs returns the names of all args marked Secret.
// The API layer uses this to redact parameter blocks before echoing them.
func SecretArgs(args []ConnectionArg) map[string]bool {
	secrets := make(map[string]bool)
	for _, a := range args {
		if a.Secret {
			secrets[a.Name] = true
		}
	}
	return secrets
}
