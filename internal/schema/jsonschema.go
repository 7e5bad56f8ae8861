package schema

// JSONSchema renders the Object as the JSON Schema map advertised on
// tools/list. The validator and the advertised schema are generated from the
// same Field definitions, so the two cannot drift apart.
func (o *Object) JSONSchema() map[string]interface{} {
	properties := make(map[string]interface{}, len(o.Fields))
	var required []string
	for _, name := range o.Order {
		f := o.Fields[name]
		properties[name] = f.jsonSchema()
		if f.Required {
			required = append(required, name)
		}
	}
	s := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func (f *Field) jsonSchema() map[string]interface{} {
	s := map[string]interface{}{}

	switch f.Type {
	case TypeString:
		s["type"] = "string"
		if len(f.Enum) > 0 {
			s["enum"] = f.Enum
		}
		if f.NonEmpty {
			s["minLength"] = 1
		}
	case TypeNumber, TypeInteger:
		// Coercible fields advertise the string alternative too; the
		// validator parses it before range checks.
		if f.Coerce {
			s["type"] = []string{string(f.Type), "string"}
		} else {
			s["type"] = string(f.Type)
		}
		if f.Min != nil {
			s["minimum"] = *f.Min
		}
		if f.Max != nil {
			s["maximum"] = *f.Max
		}
	case TypeBoolean:
		s["type"] = "boolean"
	case TypeObject:
		s["type"] = "object"
		properties := make(map[string]interface{}, len(f.Properties))
		var required []string
		for _, name := range f.PropOrder {
			prop := f.Properties[name]
			properties[name] = prop.jsonSchema()
			if prop.Required {
				required = append(required, name)
			}
		}
		s["properties"] = properties
		if len(required) > 0 {
			s["required"] = required
		}
	case TypeArray:
		s["type"] = "array"
		if f.Items != nil {
			s["items"] = f.Items.jsonSchema()
		}
		if f.MinItems > 0 {
			s["minItems"] = f.MinItems
		}
		if f.MaxItems > 0 {
			s["maxItems"] = f.MaxItems
		}
	}

	if f.Description != "" {
		s["description"] = f.Description
	}
	if f.Default != nil {
		s["default"] = f.Default
	}
	return s
}
