package api

import (
	pkgerrors "github.com/syncscope/syncscope/pkg/errors"
)

type listVersionsReq struct{}

func (r *listVersionsReq) validate() error {
	return nil
}

type seriesReq struct {
	versions []string
	indices  []int
}

func (r *seriesReq) validate() error {
	if len(r.versions) > 0 && len(r.indices) > 0 {
		return pkgerrors.ErrValidation
	}

	return nil
}
