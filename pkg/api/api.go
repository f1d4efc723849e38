package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/syncscope/syncscope/compare"
	pkgerrors "github.com/syncscope/syncscope/pkg/errors"
)

const (
	VersionsKey = "versions"
	SelectKey   = "select"

	ContentType = "application/json"
)

// Response carries transport metadata alongside an endpoint's payload.
type Response interface {
	Code() int
	Headers() map[string]string
	Empty() bool
}

func EncodeResponse(_ context.Context, w http.ResponseWriter, response interface{}) error {
	if ar, ok := response.(Response); ok {
		for k, v := range ar.Headers() {
			w.Header().Set(k, v)
		}
		w.Header().Set("Content-Type", ContentType)
		w.WriteHeader(ar.Code())

		if ar.Empty() {
			return nil
		}
	}

	return json.NewEncoder(w).Encode(response)
}

func EncodeError(_ context.Context, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", ContentType)
	switch {
	case errors.Is(err, pkgerrors.ErrValidation),
		errors.Is(err, pkgerrors.ErrInvalidData),
		errors.Is(err, compare.ErrBadSelection):
		w.WriteHeader(http.StatusBadRequest)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}

	if encErr := json.NewEncoder(w).Encode(errorRes{Err: err.Error()}); encErr != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}

type errorRes struct {
	Err string `json:"error"`
}

// LoggingErrorEncoder logs the error before handing it to enc.
func LoggingErrorEncoder(logger *slog.Logger, enc kithttp.ErrorEncoder) kithttp.ErrorEncoder {
	return func(ctx context.Context, err error, w http.ResponseWriter) {
		logger.Warn(err.Error())
		enc(ctx, err, w)
	}
}
