package cmd

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"casccopy/internal/config"
	"casccopy/internal/errors"
	"casccopy/internal/fetch"
	"casccopy/internal/trigger"
	"casccopy/internal/validation"
)

// containerLoader loads the delegation container behind a browse or list source
type containerLoader func(ctx context.Context) (*trigger.Container, error)

// newContainerLoader returns a loader for source: an http(s) page URL, a
// local HTML page or a YAML manifest. baseURL resolves relative links of a
// local page.
func newContainerLoader(source, baseURL string, cfg *config.Config, getter fetch.Getter) (containerLoader, error) {
	switch {
	case isRemote(source):
		if err := validation.ValidateURL(source); err != nil {
			return nil, errors.WrapValidationError(err, source)
		}
		return func(ctx context.Context) (*trigger.Container, error) {
			return loadRemotePage(ctx, getter, source, cfg.ContainerID)
		}, nil

	case isManifest(source):
		return func(context.Context) (*trigger.Container, error) {
			return trigger.LoadManifest(source)
		}, nil

	default:
		var base *url.URL
		if baseURL != "" {
			if err := validation.ValidateURL(baseURL); err != nil {
				return nil, errors.WrapValidationError(err, baseURL)
			}
			base, _ = url.Parse(baseURL)
		}
		return func(context.Context) (*trigger.Container, error) {
			data, err := os.ReadFile(source)
			if err != nil {
				return nil, fmt.Errorf("failed to read page: %w", err)
			}
			return trigger.ParseHTML(bytes.NewReader(data), base, cfg.ContainerID)
		}, nil
	}
}

func loadRemotePage(ctx context.Context, getter fetch.Getter, pageURL, containerID string) (*trigger.Container, error) {
	resp, err := getter.Get(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, errors.NewHTTPError(pageURL, resp.StatusCode, resp.StatusText)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, errors.WrapValidationError(err, pageURL)
	}
	return trigger.ParseHTML(bytes.NewReader(resp.Body), base, containerID)
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func isManifest(source string) bool {
	switch strings.ToLower(filepath.Ext(source)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
