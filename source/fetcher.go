package source

//go:generate mockgen -source=./fetcher.go -destination=./test/mock_fetcher.go -package test Fetcher,Loader

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/oauth2/clientcredentials"

	errs "github.com/thbteam/patient-dashboard/errors"
)

// DownloadError is returned when a link can't be downloaded. It matches errs.BadGateway.
type DownloadError struct {
	Url string
	Err error
}

func (d *DownloadError) Error() string {
	return fmt.Sprintf("failed to download file from %s: %s", d.Url, d.Err)
}

func (d *DownloadError) Unwrap() []error {
	return []error{errs.BadGateway, d.Err}
}

// Fetcher downloads the content behind a link with a single GET request.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type httpFetcher struct {
	client *http.Client
	logger *zap.SugaredLogger
}

var _ Fetcher = &httpFetcher{}

func NewHttpClient(ctx context.Context, config *Config) *http.Client {
	var client *http.Client
	if config.UsesClientCredentials() {
		credentials := &clientcredentials.Config{
			ClientID:     config.ClientId,
			ClientSecret: config.ClientSecret,
			TokenURL:     config.TokenUrl,
			Scopes:       config.Scopes,
		}
		client = credentials.Client(ctx)
	} else {
		client = &http.Client{}
	}
	client.Timeout = config.Timeout
	return client
}

func NewFetcher(client *http.Client, logger *zap.SugaredLogger) Fetcher {
	return &httpFetcher{
		client: client,
		logger: logger,
	}
}

func (h *httpFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to create request: %w", err)
	}

	res, err := h.client.Do(req)
	if err != nil {
		return nil, &DownloadError{Url: url, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, &DownloadError{Url: url, Err: fmt.Errorf("unexpected response status %d", res.StatusCode)}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &DownloadError{Url: url, Err: err}
	}

	h.logger.Debugw("downloaded file", "url", url, "bytes", len(body))
	return body, nil
}
