package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/introspection"
	"github.com/vektah/gqlparser/v2/ast"
)

// FieldResolver resolves one root field from its coerced arguments.
type FieldResolver func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// DirectiveHandler runs before a root field whose definition carries the
// directive. A non-nil error stops the field from resolving.
type DirectiveHandler func(ctx context.Context, directive *ast.Directive) error

// Executor is the executable schema behind the gqlgen server. Root fields are
// served by registered resolvers; nested fields are read out of the JSON form
// of the values the resolvers return.
type Executor struct {
	schema     *ast.Schema
	resolvers  map[ast.Operation]map[string]FieldResolver
	directives map[string]DirectiveHandler
}

var _ graphql.ExecutableSchema = (*Executor)(nil)

func NewExecutor(schema *ast.Schema) *Executor {
	return &Executor{
		schema: schema,
		resolvers: map[ast.Operation]map[string]FieldResolver{
			ast.Query:    {},
			ast.Mutation: {},
		},
		directives: map[string]DirectiveHandler{},
	}
}

func (e *Executor) Schema() *ast.Schema {
	return e.schema
}

func (e *Executor) Complexity(ctx context.Context, typeName, field string, childComplexity int, args map[string]any) (int, bool) {
	return 0, false
}

func (e *Executor) Query(name string, fn FieldResolver) {
	e.resolvers[ast.Query][name] = fn
}

func (e *Executor) Mutation(name string, fn FieldResolver) {
	e.resolvers[ast.Mutation][name] = fn
}

func (e *Executor) Directive(name string, fn DirectiveHandler) {
	e.directives[name] = fn
}

// Exec runs the operation held by the operation context. Root fields run one
// after another in document order, so mutations never interleave.
func (e *Executor) Exec(ctx context.Context) graphql.ResponseHandler {
	opCtx := graphql.GetOperationContext(ctx)
	roots, ok := e.resolvers[opCtx.Operation.Operation]
	if !ok {
		return graphql.OneShot(graphql.ErrorResponse(ctx, "unsupported GraphQL operation"))
	}

	first := true
	return func(ctx context.Context) *graphql.Response {
		if !first {
			return nil
		}
		first = false

		var buf bytes.Buffer
		e.execRoot(ctx, opCtx, roots).MarshalGQL(&buf)
		return &graphql.Response{Data: buf.Bytes()}
	}
}

func (e *Executor) execRoot(ctx context.Context, opCtx *graphql.OperationContext, roots map[string]FieldResolver) graphql.Marshaler {
	object := e.schema.Query.Name
	if opCtx.Operation.Operation == ast.Mutation {
		object = e.schema.Mutation.Name
	}

	fields := graphql.CollectFields(opCtx, opCtx.Operation.SelectionSet, []string{object})
	ctx = graphql.WithFieldContext(ctx, &graphql.FieldContext{Object: object})

	out := graphql.NewFieldSet(fields)
	invalid := false
	for i, field := range fields {
		if field.Name == "__typename" {
			out.Values[i] = graphql.MarshalString(object)
			continue
		}

		rootCtx := graphql.WithRootFieldContext(ctx, &graphql.RootFieldContext{Object: object, Field: field})
		out.Values[i] = opCtx.RootResolverMiddleware(rootCtx, func(ctx context.Context) graphql.Marshaler {
			m, ok := e.resolveRoot(ctx, opCtx, object, roots, field)
			if !ok {
				invalid = true
			}
			return m
		})
	}

	if invalid {
		return graphql.Null
	}
	return out
}

func (e *Executor) resolveRoot(ctx context.Context, opCtx *graphql.OperationContext, object string, roots map[string]FieldResolver, field graphql.CollectedField) (ret graphql.Marshaler, ok bool) {
	fc := &graphql.FieldContext{Object: object, Field: field, IsMethod: true, IsResolver: true}
	ctx = graphql.WithFieldContext(ctx, fc)
	defer func() {
		if r := recover(); r != nil {
			graphql.AddError(ctx, graphql.Recover(ctx, r))
			ret, ok = graphql.Null, !field.Definition.Type.NonNull
		}
	}()

	fc.Args = field.ArgumentMap(opCtx.Variables)

	var resolve graphql.Resolver
	switch field.Name {
	case "__schema":
		resolve = func(context.Context) (interface{}, error) {
			return e.introspectSchema(opCtx)
		}
	case "__type":
		resolve = func(context.Context) (interface{}, error) {
			name, _ := fc.Args["name"].(string)
			return e.introspectType(opCtx, name)
		}
	default:
		fn, found := roots[field.Name]
		if !found {
			graphql.AddErrorf(ctx, "no resolver for %s", field.Name)
			return graphql.Null, !field.Definition.Type.NonNull
		}
		resolve = func(ctx context.Context) (interface{}, error) {
			if err := e.runDirectives(ctx, field.Definition); err != nil {
				return nil, err
			}
			return fn(ctx, fc.Args)
		}
	}

	res, err := opCtx.ResolverMiddleware(ctx, resolve)
	if err != nil {
		graphql.AddError(ctx, err)
		return graphql.Null, !field.Definition.Type.NonNull
	}
	fc.Result = res

	value, err := normalize(res)
	if err != nil {
		graphql.AddError(ctx, err)
		return graphql.Null, !field.Definition.Type.NonNull
	}
	return e.marshal(ctx, opCtx, field.Selections, field.Definition.Type, value)
}

func (e *Executor) runDirectives(ctx context.Context, def *ast.FieldDefinition) error {
	if def == nil {
		return nil
	}
	for _, dir := range def.Directives {
		handler, ok := e.directives[dir.Name]
		if !ok {
			continue
		}
		if err := handler(ctx, dir); err != nil {
			return err
		}
	}
	return nil
}

// marshal writes value for a position of type typ. ok is false when a
// non-null position ended up null, which nulls the enclosing value.
func (e *Executor) marshal(ctx context.Context, opCtx *graphql.OperationContext, sel ast.SelectionSet, typ *ast.Type, value interface{}) (graphql.Marshaler, bool) {
	if value == nil {
		if typ.NonNull {
			if fc := graphql.GetFieldContext(ctx); fc != nil && !graphql.HasFieldError(ctx, fc) {
				graphql.AddErrorf(ctx, "must not be null")
			}
			return graphql.Null, false
		}
		return graphql.Null, true
	}

	if typ.Elem != nil {
		items, isList := value.([]interface{})
		if !isList {
			graphql.AddErrorf(ctx, "expected a list, got %T", value)
			return graphql.Null, !typ.NonNull
		}
		out := make(graphql.Array, len(items))
		for i, item := range items {
			idx := i
			itemCtx := graphql.WithFieldContext(ctx, &graphql.FieldContext{Index: &idx, Result: item})
			m, ok := e.marshal(itemCtx, opCtx, sel, typ.Elem, item)
			if !ok {
				return graphql.Null, !typ.NonNull
			}
			out[i] = m
		}
		return out, true
	}

	def := e.schema.Types[typ.Name()]
	if def == nil || def.Kind != ast.Object {
		return marshalLeaf(value), true
	}
	return e.marshalObject(ctx, opCtx, sel, def, value, typ.NonNull)
}

func (e *Executor) marshalObject(ctx context.Context, opCtx *graphql.OperationContext, sel ast.SelectionSet, def *ast.Definition, value interface{}, nonNull bool) (graphql.Marshaler, bool) {
	fields := graphql.CollectFields(opCtx, sel, []string{def.Name})
	out := graphql.NewFieldSet(fields)

	for i, field := range fields {
		if field.Name == "__typename" {
			out.Values[i] = graphql.MarshalString(def.Name)
			continue
		}

		fc := &graphql.FieldContext{Object: def.Name, Field: field, Args: field.ArgumentMap(opCtx.Variables)}
		fieldCtx := graphql.WithFieldContext(ctx, fc)

		child, err := fieldValue(value, field.Name, fc.Args)
		if err != nil {
			graphql.AddError(fieldCtx, err)
		}
		fc.Result = child

		m, ok := e.marshal(fieldCtx, opCtx, field.Selections, field.Definition.Type, child)
		if !ok {
			return graphql.Null, !nonNull
		}
		out.Values[i] = m
	}
	return out, true
}

// fieldValue reads one field out of a decoded resolver value or an
// introspection object.
func fieldValue(obj interface{}, name string, args map[string]interface{}) (interface{}, error) {
	if m, ok := obj.(map[string]interface{}); ok {
		return m[name], nil
	}
	if isIntrospection(obj) {
		return introspectField(obj, name, args)
	}
	return nil, fmt.Errorf("expected an object, got %T", obj)
}

// normalize turns a resolver result into the generic JSON shape the
// selection set is applied to. Introspection objects pass through.
func normalize(v interface{}) (interface{}, error) {
	switch v.(type) {
	case nil:
		return nil, nil
	case *introspection.Schema, *introspection.Type:
		return v, nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic interface{}
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}
	return generic, nil
}

func marshalLeaf(v interface{}) graphql.Marshaler {
	switch v := v.(type) {
	case string:
		return graphql.MarshalString(v)
	case bool:
		return graphql.MarshalBoolean(v)
	case json.Number:
		return graphql.WriterFunc(func(w io.Writer) {
			io.WriteString(w, v.String())
		})
	default:
		return graphql.MarshalAny(v)
	}
}
