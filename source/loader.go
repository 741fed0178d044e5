package source

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const svgContentType = "image/svg+xml"

type Assets struct {
	Workbook        []byte
	Logo            []byte
	LogoContentType string
}

// LogoDataURI returns the logo as a base64 data URI suitable for an img src attribute.
func (a *Assets) LogoDataURI() string {
	if a == nil || len(a.Logo) == 0 {
		return ""
	}
	return "data:" + a.LogoContentType + ";base64," + base64.StdEncoding.EncodeToString(a.Logo)
}

type Loader interface {
	Load(ctx context.Context) (*Assets, error)
}

type loader struct {
	config  *Config
	fetcher Fetcher
	logger  *zap.SugaredLogger
}

var _ Loader = &loader{}

func NewLoader(config *Config, fetcher Fetcher, logger *zap.SugaredLogger) Loader {
	return &loader{
		config:  config,
		fetcher: fetcher,
		logger:  logger,
	}
}

func (l *loader) Load(ctx context.Context) (*Assets, error) {
	assets := &Assets{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		assets.Workbook, err = l.fetcher.Fetch(ctx, l.config.ExcelLink)
		return err
	})
	g.Go(func() (err error) {
		assets.Logo, err = l.fetcher.Fetch(ctx, l.config.LogoLink)
		return err
	})
	if err := g.Wait(); err != nil {
		l.logger.Warnw("unable to load dashboard assets", "error", err)
		return nil, err
	}

	assets.LogoContentType = DetectImageContentType(l.config.LogoLink, assets.Logo)
	return assets, nil
}

// DetectImageContentType sniffs the image type. SVG needs special handling
// because it is sniffed as xml or plain text.
func DetectImageContentType(link string, data []byte) string {
	head := strings.TrimSpace(string(data[:min(len(data), 512)]))
	if strings.HasSuffix(strings.ToLower(strings.SplitN(link, "?", 2)[0]), ".svg") ||
		strings.HasPrefix(head, "<svg") ||
		(strings.HasPrefix(head, "<?xml") && strings.Contains(head, "<svg")) {
		return svgContentType
	}
	return http.DetectContentType(data)
}
