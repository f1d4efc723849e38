package sdk

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
)

const CTJSON string = "application/json"

type SDK interface {
	// ListVersions lists the version tags that have recorded samples,
	// newest first.
	//
	// example:
	//  versions, _ := sdk.ListVersions()
	//  fmt.Println(versions)
	ListVersions() ([]string, error)

	// Series fetches aligned memory and CPU series for the given
	// version tags.
	//
	// example:
	//  set, _ := sdk.Series([]string{"cardano-db-sync 13.6.0.4 mainnet"})
	//  fmt.Println(set)
	Series(versions []string) (SeriesSet, error)
}

type syncSDK struct {
	serverURL string
	client    *http.Client
}

type Config struct {
	ServerURL       string
	TLSVerification bool
}

func NewSDK(cfg Config) SDK {
	return &syncSDK{
		serverURL: cfg.ServerURL,
		client: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: !cfg.TLSVerification,
				},
			},
		},
	}
}

func (sdk *syncSDK) processRequest(method, reqURL string, data []byte, expectedRespCode int) ([]byte, error) {
	req, err := http.NewRequest(method, reqURL, bytes.NewReader(data))
	if err != nil {
		return []byte{}, err
	}

	req.Header.Add("Content-Type", CTJSON)

	resp, err := sdk.client.Do(req)
	if err != nil {
		return []byte{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return []byte{}, err
	}

	if resp.StatusCode != expectedRespCode {
		return []byte{}, fmt.Errorf("unexpected response code: %d", resp.StatusCode)
	}

	return body, nil
}
