package sdk

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

const (
	versionsEndpoint = "/versions"
	seriesEndpoint   = "/series"
)

// Point is one plotted reading keyed by the progress marker it was taken at.
type Point struct {
	Key   int64   `json:"key"`
	Value float64 `json:"value"`
}

// SeriesSet mirrors the daemon's comparison payload: memory and CPU series
// keyed by version tag, aligned on the same tag list.
type SeriesSet struct {
	Versions []string           `json:"versions"`
	Memory   map[string][]Point `json:"memory"`
	CPU      map[string][]Point `json:"cpu"`
}

type versionsPage struct {
	Versions []string `json:"versions"`
}

func (sdk *syncSDK) ListVersions() ([]string, error) {
	reqURL := sdk.serverURL + versionsEndpoint

	body, err := sdk.processRequest(http.MethodGet, reqURL, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var page versionsPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, err
	}

	return page.Versions, nil
}

func (sdk *syncSDK) Series(versions []string) (SeriesSet, error) {
	query := ""
	if len(versions) > 0 {
		query = "?versions=" + url.QueryEscape(strings.Join(versions, ","))
	}
	reqURL := sdk.serverURL + seriesEndpoint + query

	body, err := sdk.processRequest(http.MethodGet, reqURL, nil, http.StatusOK)
	if err != nil {
		return SeriesSet{}, err
	}

	var set SeriesSet
	if err := json.Unmarshal(body, &set); err != nil {
		return SeriesSet{}, err
	}

	return set, nil
}
