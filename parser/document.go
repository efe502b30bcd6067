package parser

// CommonFields holds the shared identity fields of an integration definition.
type CommonFields struct {
	// ID is the unique identifier of the integration
	ID string
	// Version is the content revision counter (-1 for system content)
	Version int
}

// ConfigParam is a single entry of the top-level configuration list: one
// parameter the user fills in when configuring an instance of the integration.
type ConfigParam struct {
	// Name is the parameter key. Unique within the configuration list;
	// duplicates are a reportable violation, not prevented here.
	Name string
	// Display is the label shown in the configuration UI
	Display string
	// DefaultValue is the pre-filled value. Scalar YAML values (bool, int)
	// are rendered to their string form during decoding.
	DefaultValue string
	// Required indicates whether the parameter must be set
	Required bool
	// Type is the numeric parameter type code (8 is the boolean type)
	Type int
}

// Argument is a single argument of a command.
type Argument struct {
	// Name is the argument name. Unique within the command's argument list;
	// duplicates are a reportable violation, not prevented here.
	Name string
	// Required indicates whether the argument must be supplied
	Required bool
	// Default indicates whether this is the command's default argument.
	// Nil when the key is absent; an explicit false is a violation for
	// reputation commands, so absence must stay distinguishable.
	Default *bool
	// Description is the human-readable argument description
	Description string
}

// Output is a single output declaration of a command.
type Output struct {
	// ContextPath is the dotted identifier the command's result populates
	// (e.g. "DBotScore.Score"). May be empty in malformed definitions.
	ContextPath string
	// Description is the human-readable output description
	Description string
}

// Command is one command exposed by an integration.
type Command struct {
	// Name is the command name
	Name string
	// Arguments is the ordered argument list
	Arguments []Argument
	// Outputs is the ordered output declaration list
	Outputs []Output
}

// Script holds the executable part of an integration definition.
type Script struct {
	// Type is the language tag (e.g. "python", "javascript")
	Type string
	// Subtype is the interpreter variant (e.g. "python2", "python3")
	Subtype string
	// DockerImage is the runtime image reference
	DockerImage string
	// Commands is the ordered command list
	Commands []Command
}

// IntegrationDocument is the typed representation of one integration
// definition. All fields default to their zero value when the source document
// omits them; decoding never fails on missing keys.
//
// Documents are read-only snapshots: the validator and differ packages treat
// them as immutable, which makes running validations for independent files in
// parallel safe without synchronization.
type IntegrationDocument struct {
	CommonFields CommonFields
	// Name is the machine-facing integration name
	Name string
	// Display is the human-facing integration name
	Display string
	// Beta indicates a pre-release integration
	Beta bool
	// Category is the integration category (validated against the catalog)
	Category string
	// FromVersion is the minimum platform version the integration supports
	FromVersion string
	// Configuration is the ordered instance-parameter list
	Configuration []ConfigParam
	// Script holds the language, runtime image, and commands
	Script Script
}

// Commands returns the document's command list. Safe on a nil document.
func (d *IntegrationDocument) Commands() []Command {
	if d == nil {
		return nil
	}
	return d.Script.Commands
}

// decodeFromMap populates the document from a raw parsed mapping, defaulting
// every missing key to its zero value.
func (d *IntegrationDocument) decodeFromMap(m map[string]any) {
	if cf, ok := mapGetMap(m, "commonfields"); ok {
		d.CommonFields.ID = mapGetString(cf, "id")
		d.CommonFields.Version = mapGetInt(cf, "version")
	}
	d.Name = mapGetString(m, "name")
	d.Display = mapGetString(m, "display")
	d.Beta = mapGetBool(m, "beta")
	d.Category = mapGetString(m, "category")
	d.FromVersion = mapGetString(m, "fromversion")

	for _, raw := range mapGetMapSlice(m, "configuration") {
		d.Configuration = append(d.Configuration, ConfigParam{
			Name:         mapGetString(raw, "name"),
			Display:      mapGetString(raw, "display"),
			DefaultValue: mapGetScalarString(raw, "defaultvalue"),
			Required:     mapGetBool(raw, "required"),
			Type:         mapGetInt(raw, "type"),
		})
	}

	script, ok := mapGetMap(m, "script")
	if !ok {
		return
	}
	d.Script.Type = mapGetString(script, "type")
	d.Script.Subtype = mapGetString(script, "subtype")
	d.Script.DockerImage = mapGetString(script, "dockerimage")

	for _, rawCmd := range mapGetMapSlice(script, "commands") {
		cmd := Command{Name: mapGetString(rawCmd, "name")}
		for _, rawArg := range mapGetMapSlice(rawCmd, "arguments") {
			cmd.Arguments = append(cmd.Arguments, Argument{
				Name:        mapGetString(rawArg, "name"),
				Required:    mapGetBool(rawArg, "required"),
				Default:     mapGetBoolPtr(rawArg, "default"),
				Description: mapGetString(rawArg, "description"),
			})
		}
		for _, rawOut := range mapGetMapSlice(rawCmd, "outputs") {
			cmd.Outputs = append(cmd.Outputs, Output{
				ContextPath: mapGetString(rawOut, "contextPath"),
				Description: mapGetString(rawOut, "description"),
			})
		}
		d.Script.Commands = append(d.Script.Commands, cmd)
	}
}

// DocumentStats contains statistical information about an integration
// definition, collected during parsing.
type DocumentStats struct {
	// ParamCount is the number of configuration parameters
	ParamCount int
	// CommandCount is the number of commands
	CommandCount int
	// ArgumentCount is the total number of arguments across all commands
	ArgumentCount int
	// OutputCount is the total number of output declarations across all commands
	OutputCount int
}

// collectStats computes DocumentStats for a decoded document.
func collectStats(doc *IntegrationDocument) DocumentStats {
	stats := DocumentStats{
		ParamCount:   len(doc.Configuration),
		CommandCount: len(doc.Script.Commands),
	}
	for _, cmd := range doc.Script.Commands {
		stats.ArgumentCount += len(cmd.Arguments)
		stats.OutputCount += len(cmd.Outputs)
	}
	return stats
}
