package schema

// Parameter describes a single named input of an action.
type Parameter struct {
	// Name is the wire name callers use for this parameter.
	Name string `json:"param_name"`

	// Description documents the parameter for humans.
	Description string `json:"description"`

	// Kind constrains the values callers may supply.
	Kind Kind `json:"type"`

	// Required marks parameters every request must carry.
	Required bool `json:"required"`

	// Default is an advisory textual default for optional parameters.
	// Validation never applies or checks it; execution layers may.
	Default *string `json:"default,omitempty"`
}

// Output describes a single named value an action reports back.
type Output struct {
	// Name is the wire name of the output value.
	Name string `json:"param_name"`

	// Description documents the output for humans.
	Description string `json:"description"`

	// Kind declares the type of the produced value.
	Kind Kind `json:"type"`
}

// Action is one independently callable operation offered by a service.
type Action struct {
	Name        string      `json:"action_name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Outputs     []Output    `json:"outputs"`
}

// Parameter returns the declared parameter with the given name.
// When several parameters share a name, the first declared one wins.
func (a Action) Parameter(name string) (Parameter, bool) {
	for _, p := range a.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// RequiredParameters returns the action's required parameters in
// declaration order.
func (a Action) RequiredParameters() []Parameter {
	var required []Parameter
	for _, p := range a.Parameters {
		if p.Required {
			required = append(required, p)
		}
	}
	return required
}

// Service describes the callable surface of one service: its name,
// documentation, and the actions it exposes.
type Service struct {
	Name        string   `json:"service_name"`
	Description string   `json:"description"`
	Actions     []Action `json:"actions"`
}

// Action returns the declared action with the given name. Lookup is case
// sensitive; when several actions share a name, the first declared one wins.
func (s Service) Action(name string) (Action, bool) {
	for _, a := range s.Actions {
		if a.Name == name {
			return a, true
		}
	}
	return Action{}, false
}

// ActionNames returns the names of all declared actions in declaration
// order, duplicates included.
func (s Service) ActionNames() []string {
	names := make([]string, 0, len(s.Actions))
	for _, a := range s.Actions {
		names = append(names, a.Name)
	}
	return names
}
