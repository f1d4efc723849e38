package api

import (
	"net/http"

	"github.com/syncscope/syncscope/compare"
	"github.com/syncscope/syncscope/pkg/api"
)

var (
	_ api.Response = (*versionsResponse)(nil)
	_ api.Response = (*seriesResponse)(nil)
)

type versionsResponse struct {
	Versions []string `json:"versions"`
}

func (v versionsResponse) Code() int {
	return http.StatusOK
}

func (v versionsResponse) Headers() map[string]string {
	return map[string]string{}
}

func (v versionsResponse) Empty() bool {
	return false
}

type seriesResponse struct {
	compare.SeriesSet
}

func (s seriesResponse) Code() int {
	return http.StatusOK
}

func (s seriesResponse) Headers() map[string]string {
	return map[string]string{}
}

func (s seriesResponse) Empty() bool {
	return false
}
