package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/syncscope/syncscope/compare"
	"github.com/syncscope/syncscope/pkg/api"
	pkgerrors "github.com/syncscope/syncscope/pkg/errors"
)

// MakeHandler exposes the collected series over HTTP alongside health and
// Prometheus scrape endpoints.
func MakeHandler(svc compare.Service, logger *slog.Logger, instanceID string) http.Handler {
	mux := chi.NewRouter()

	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(api.LoggingErrorEncoder(logger, api.EncodeError)),
	}

	mux.Get("/versions", otelhttp.NewHandler(kithttp.NewServer(
		listVersionsEndpoint(svc),
		decodeListVersionsReq,
		api.EncodeResponse,
		opts...,
	), "list-versions").ServeHTTP)

	mux.Get("/series", otelhttp.NewHandler(kithttp.NewServer(
		seriesEndpoint(svc),
		decodeSeriesReq,
		api.EncodeResponse,
		opts...,
	), "get-series").ServeHTTP)

	mux.Get("/health", api.Health("syncscope", instanceID))
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

func decodeListVersionsReq(_ context.Context, _ *http.Request) (any, error) {
	return listVersionsReq{}, nil
}

func decodeSeriesReq(_ context.Context, r *http.Request) (any, error) {
	var req seriesReq

	if raw := r.URL.Query().Get(api.VersionsKey); raw != "" {
		req.versions = strings.Split(raw, ",")
	}
	if raw := r.URL.Query().Get(api.SelectKey); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			idx, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return nil, errors.Join(pkgerrors.ErrValidation, err)
			}
			req.indices = append(req.indices, idx)
		}
	}

	return req, nil
}
