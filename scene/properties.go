package scene

// Properties is an unordered set of property names to values, representing a means of carrying auxiliary data on Nodes.
// Properties are loaded from glTF extras (for example, Blender's Custom Properties).
type Properties struct {
	props map[string]any
}

// NewProperties returns a new Properties object.
func NewProperties() *Properties {
	return &Properties{map[string]any{}}
}

// Clone returns a shallow copy of the Properties object.
func (props *Properties) Clone() *Properties {
	newProps := NewProperties()
	for k, v := range props.props {
		newProps.props[k] = v
	}
	return newProps
}

// Clear clears the Properties object of all properties.
func (props *Properties) Clear() {
	props.props = map[string]any{}
}

// Remove removes the property specified from the Properties object.
func (props *Properties) Remove(propName string) {
	delete(props.props, propName)
}

// Has returns true if the Properties object has properties by all of the names specified, and false otherwise.
func (props *Properties) Has(propNames ...string) bool {
	for _, p := range propNames {
		if _, exists := props.props[p]; !exists {
			return false
		}
	}
	return true
}

// Get returns the value associated with the specified property name, or nil if it doesn't exist.
func (props *Properties) Get(propName string) any {
	return props.props[propName]
}

// Set sets the value of the given property.
func (props *Properties) Set(propName string, value any) {
	props.props[propName] = value
}

// Names returns the names of all properties set.
func (props *Properties) Names() []string {
	names := make([]string, 0, len(props.props))
	for k := range props.props {
		names = append(names, k)
	}
	return names
}

// Len returns the number of properties set.
func (props *Properties) Len() int {
	return len(props.props)
}
