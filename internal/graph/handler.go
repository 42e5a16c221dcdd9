package graph

import (
	"context"
	"net/http"

	"foodcart-be/internal/logger"
	"foodcart-be/internal/metrics"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/extension"
	"github.com/99designs/gqlgen/graphql/handler/lru"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"
)

var (
	operationsTotal = metrics.Default.Counter("graphql_operations_total")
	errorsTotal     = metrics.Default.Counter("graphql_errors_total")
	durationMillis  = metrics.Default.Counter("graphql_duration_ms_total")
)

// NewHandler serves the executable schema over GET and POST with
// introspection enabled for the playground.
func NewHandler(es graphql.ExecutableSchema) *handler.Server {
	srv := handler.New(es)

	srv.AddTransport(transport.Options{})
	srv.AddTransport(transport.GET{})
	srv.AddTransport(transport.POST{})

	srv.SetQueryCache(lru.New[*ast.QueryDocument](1000))
	srv.Use(extension.Introspection{})

	srv.SetRecoverFunc(recoverPanic)
	srv.AroundResponses(observeResponse)

	return srv
}

func recoverPanic(ctx context.Context, err any) error {
	logger.FromCtx(ctx).Error("panic while resolving graphql request", zap.Any("panic", err))
	return gqlerror.Errorf("internal system error")
}

func observeResponse(ctx context.Context, next graphql.ResponseHandler) *graphql.Response {
	timer := metrics.StartTimer()
	resp := next(ctx)
	if resp == nil {
		return nil
	}

	operationsTotal.Inc()
	errorsTotal.Add(uint64(len(resp.Errors)))
	timer.ObserveMillis(durationMillis)

	var operation string
	if graphql.HasOperationContext(ctx) {
		operation = graphql.GetOperationContext(ctx).OperationName
	}
	logger.FromCtx(ctx).Info("graphql operation",
		zap.String("operation", operation),
		zap.Int("errors", len(resp.Errors)),
		zap.Duration("duration", timer.Duration()),
	)
	return resp
}

func PlaygroundHandler(endpoint string) http.Handler {
	return playground.Handler("Foodcart GraphQL", endpoint)
}
