package graph

import (
	"errors"
	"fmt"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/introspection"
)

var errIntrospectionDisabled = errors.New("introspection disabled")

func (e *Executor) introspectSchema(opCtx *graphql.OperationContext) (interface{}, error) {
	if opCtx.DisableIntrospection {
		return nil, errIntrospectionDisabled
	}
	return introspection.WrapSchema(e.schema), nil
}

func (e *Executor) introspectType(opCtx *graphql.OperationContext, name string) (interface{}, error) {
	if opCtx.DisableIntrospection {
		return nil, errIntrospectionDisabled
	}
	def := e.schema.Types[name]
	if def == nil {
		return nil, nil
	}
	return introspection.WrapTypeFromDef(e.schema, def), nil
}

func isIntrospection(obj interface{}) bool {
	switch obj.(type) {
	case *introspection.Schema, *introspection.Type, *introspection.Field,
		*introspection.InputValue, *introspection.EnumValue, *introspection.Directive:
		return true
	}
	return false
}

// introspectField reads one field of a __Schema, __Type, __Field,
// __InputValue, __EnumValue or __Directive.
func introspectField(obj interface{}, name string, args map[string]interface{}) (interface{}, error) {
	includeDeprecated, _ := args["includeDeprecated"].(bool)

	switch o := obj.(type) {
	case *introspection.Schema:
		switch name {
		case "description":
			return optional(o.Description()), nil
		case "types":
			return typeList(o.Types()), nil
		case "queryType":
			return typeRef(o.QueryType()), nil
		case "mutationType":
			return typeRef(o.MutationType()), nil
		case "subscriptionType":
			return typeRef(o.SubscriptionType()), nil
		case "directives":
			dirs := o.Directives()
			out := make([]interface{}, len(dirs))
			for i := range dirs {
				out[i] = &dirs[i]
			}
			return out, nil
		}

	case *introspection.Type:
		switch name {
		case "kind":
			return o.Kind(), nil
		case "name":
			return optional(o.Name()), nil
		case "description":
			return optional(o.Description()), nil
		case "specifiedByURL":
			return optional(o.SpecifiedByURL()), nil
		case "fields":
			fields := o.Fields(includeDeprecated)
			out := make([]interface{}, len(fields))
			for i := range fields {
				out[i] = &fields[i]
			}
			return out, nil
		case "inputFields":
			return inputValues(o.InputFields(), includeDeprecated), nil
		case "interfaces":
			return typeList(o.Interfaces()), nil
		case "possibleTypes":
			return typeList(o.PossibleTypes()), nil
		case "enumValues":
			values := o.EnumValues(includeDeprecated)
			out := make([]interface{}, len(values))
			for i := range values {
				out[i] = &values[i]
			}
			return out, nil
		case "ofType":
			return typeRef(o.OfType()), nil
		case "isOneOf":
			return o.IsOneOf(), nil
		}

	case *introspection.Field:
		switch name {
		case "name":
			return o.Name, nil
		case "description":
			return optional(o.Description()), nil
		case "args":
			return inputValues(o.Args, includeDeprecated), nil
		case "type":
			return typeRef(o.Type), nil
		case "isDeprecated":
			return o.IsDeprecated(), nil
		case "deprecationReason":
			return optional(o.DeprecationReason()), nil
		}

	case *introspection.InputValue:
		switch name {
		case "name":
			return o.Name, nil
		case "description":
			return optional(o.Description()), nil
		case "type":
			return typeRef(o.Type), nil
		case "defaultValue":
			return optional(o.DefaultValue), nil
		case "isDeprecated":
			return o.IsDeprecated(), nil
		case "deprecationReason":
			return optional(o.DeprecationReason()), nil
		}

	case *introspection.EnumValue:
		switch name {
		case "name":
			return o.Name, nil
		case "description":
			return optional(o.Description()), nil
		case "isDeprecated":
			return o.IsDeprecated(), nil
		case "deprecationReason":
			return optional(o.DeprecationReason()), nil
		}

	case *introspection.Directive:
		switch name {
		case "name":
			return o.Name, nil
		case "description":
			return optional(o.Description()), nil
		case "isRepeatable":
			return o.IsRepeatable, nil
		case "locations":
			out := make([]interface{}, len(o.Locations))
			for i, loc := range o.Locations {
				out[i] = loc
			}
			return out, nil
		case "args":
			return inputValues(o.Args, includeDeprecated), nil
		}
	}

	return nil, fmt.Errorf("unknown introspection field %s on %T", name, obj)
}

func optional(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func typeRef(t *introspection.Type) interface{} {
	if t == nil {
		return nil
	}
	return t
}

func typeList(types []introspection.Type) []interface{} {
	out := make([]interface{}, len(types))
	for i := range types {
		out[i] = &types[i]
	}
	return out
}

func inputValues(values []introspection.InputValue, includeDeprecated bool) []interface{} {
	out := make([]interface{}, 0, len(values))
	for i := range values {
		if !includeDeprecated && values[i].IsDeprecated() {
			continue
		}
		out = append(out, &values[i])
	}
	return out
}
