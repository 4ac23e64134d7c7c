package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dwiprm/flight-price-explorer/internal/pkg/exception"
	"github.com/go-chi/render"
	"github.com/go-kit/kit/endpoint"
)

// DecodeRequestFunc extracts a typed request from the raw HTTP request.
type DecodeRequestFunc func(ctx context.Context, r *http.Request) (interface{}, error)

// EncodeResponseFunc writes the endpoint response to the client.
type EncodeResponseFunc func(ctx context.Context, w http.ResponseWriter, response interface{}) error

// MakeHandlerFunc wires a go-kit endpoint to chi with the given
// decoder/encoder pair. Decode and endpoint errors go through the
// common error encoder.
func MakeHandlerFunc(ep endpoint.Endpoint, decode DecodeRequestFunc,
	encode EncodeResponseFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		request, err := decode(ctx, r)
		if err != nil {
			ErrorResponse(ctx, err, w)

			return
		}

		response, err := ep(ctx, request)
		if err != nil {
			ErrorResponse(ctx, err, w)

			return
		}

		if err := encode(ctx, w, response); err != nil {
			ErrorResponse(ctx, err, w)
		}
	}
}

// DecodeRequest binds a JSON body into T; T's pointer type must
// implement render.Binder so validation runs during the bind.
func DecodeRequest[T any](_ context.Context, r *http.Request) (interface{}, error) {
	var request T

	binder, ok := any(&request).(render.Binder)
	if !ok {
		return nil, fmt.Errorf("request type %T is not a render.Binder", &request)
	}

	if err := render.Bind(r, binder); err != nil {
		var appErr exception.ApplicationError
		if errors.As(err, &appErr) {
			return nil, err
		}

		return nil, exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    "malformed request body",
			Cause:      err,
		}
	}

	return &request, nil
}
