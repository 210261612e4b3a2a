// Package grpcclient adapts the resilience core to outbound gRPC calls: a
// unary client interceptor classifies status codes into the error taxonomy
// and routes every invocation through the dependency's circuit breaker and
// the retry executor.
package grpcclient

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/payflow/resilience/internal/core/errs"
	"github.com/payflow/resilience/internal/resilience/breaker"
	"github.com/payflow/resilience/internal/resilience/retry"
)

// ReasonForCode maps a gRPC status code to a taxonomy reason. Transient
// transport codes land in the external-dependency category; caller mistakes
// land in terminal categories so they are never retried.
func ReasonForCode(c codes.Code) errs.Reason {
	switch c {
	case codes.Unavailable:
		return errs.ReasonExternalUnavailable
	case codes.DeadlineExceeded:
		return errs.ReasonExternalTimeout
	case codes.ResourceExhausted:
		return errs.ReasonRateLimited
	case codes.NotFound:
		return errs.ReasonResourceNotFound
	case codes.Unauthenticated:
		return errs.ReasonAuthenticationRequired
	case codes.PermissionDenied:
		return errs.ReasonAccessDenied
	case codes.AlreadyExists:
		return errs.ReasonDuplicateEntry
	case codes.InvalidArgument:
		return errs.ReasonMissingFields
	case codes.FailedPrecondition:
		return errs.ReasonOperationNotAllowed
	default:
		return errs.ReasonInternalError
	}
}

// UnaryClientInterceptor returns an interceptor guarding every call to one
// named dependency. Failures are classified, counted against the breaker,
// and retried per catalog policy; the error returned to the caller is the
// classified *errs.Record.
func UnaryClientInterceptor(handler *errs.Handler, breakers *breaker.Registry, dependency string) grpc.UnaryClientInterceptor {
	return interceptor(handler, breakers, dependency, nil)
}

// UnaryClientInterceptorWithPolicy is UnaryClientInterceptor with an
// explicit retry policy instead of the catalog's.
func UnaryClientInterceptorWithPolicy(handler *errs.Handler, breakers *breaker.Registry, dependency string, policy retry.Policy) grpc.UnaryClientInterceptor {
	return interceptor(handler, breakers, dependency, &policy)
}

func interceptor(handler *errs.Handler, breakers *breaker.Registry, dependency string, policy *retry.Policy) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		callCtx := map[string]any{
			"source":     "grpc_client",
			"dependency": dependency,
			"method":     method,
		}

		attempt := func(ctx context.Context) (struct{}, *errs.Record) {
			return breaker.Call(ctx, breakers, dependency, func(ctx context.Context) (struct{}, *errs.Record) {
				return errs.Execute(ctx, handler, callCtx, func(ctx context.Context) (struct{}, error) {
					err := invoker(ctx, method, req, reply, cc, opts...)
					if err == nil {
						return struct{}{}, nil
					}
					if st, ok := status.FromError(err); ok {
						return struct{}{}, errs.Wrap(ReasonForCode(st.Code()), err, callCtx)
					}
					return struct{}{}, err
				})
			})
		}

		var rec *errs.Record
		if policy != nil {
			_, rec = retry.DoWithPolicy(ctx, attempt, *policy)
		} else {
			_, rec = retry.Do(ctx, attempt)
		}

		if rec != nil {
			return rec
		}
		return nil
	}
}
