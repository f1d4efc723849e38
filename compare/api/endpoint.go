package api

import (
	"context"
	"errors"

	"github.com/go-kit/kit/endpoint"

	"github.com/syncscope/syncscope/compare"
	pkgerrors "github.com/syncscope/syncscope/pkg/errors"
)

func listVersionsEndpoint(svc compare.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(listVersionsReq)
		if !ok {
			return versionsResponse{}, errors.Join(pkgerrors.ErrValidation, pkgerrors.ErrInvalidData)
		}
		if err := req.validate(); err != nil {
			return versionsResponse{}, errors.Join(pkgerrors.ErrValidation, err)
		}

		versions, err := svc.ListVersions(ctx)
		if err != nil {
			return versionsResponse{}, err
		}

		return versionsResponse{
			Versions: versions,
		}, nil
	}
}

func seriesEndpoint(svc compare.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(seriesReq)
		if !ok {
			return seriesResponse{}, errors.Join(pkgerrors.ErrValidation, pkgerrors.ErrInvalidData)
		}
		if err := req.validate(); err != nil {
			return seriesResponse{}, errors.Join(pkgerrors.ErrValidation, err)
		}

		versions := req.versions
		if len(req.indices) > 0 {
			var err error
			versions, err = svc.Select(ctx, req.indices)
			if err != nil {
				return seriesResponse{}, err
			}
		}

		set, err := svc.Assemble(ctx, versions)
		if err != nil {
			return seriesResponse{}, err
		}

		return seriesResponse{
			SeriesSet: set,
		}, nil
	}
}
