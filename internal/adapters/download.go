package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"sourcemod-installer/internal/ports"
	"sourcemod-installer/internal/shared"
)

const defaultReleaseEndpoint = "https://sourcemod.net/latest.php"

// downloadUserAgent identifies this tool to the release server, which
// rejects generic clients.
const downloadUserAgent = "SourceMod Update Utility"

// Release archives run to tens of megabytes; the timeout covers the
// whole body read, not just the dial.
const defaultDownloadTimeout = 10 * time.Minute

// DownloadAdapter fetches release archives over HTTP. Downloads land
// in a temporary file whose name keeps the suffix of the final URL, so
// format detection keeps working after redirects.
type DownloadAdapter struct {
	Endpoint  string
	UserAgent string
	Timeout   time.Duration
}

func NewDownloadAdapter(timeoutSec int) DownloadAdapter {
	timeout := time.Duration(timeoutSec) * time.Second
	if timeout <= 0 {
		timeout = defaultDownloadTimeout
	}
	return DownloadAdapter{
		Endpoint:  defaultReleaseEndpoint,
		UserAgent: downloadUserAgent,
		Timeout:   timeout,
	}
}

// ReleaseURL builds the endpoint query for a version/platform pair.
// The platform is lowercased to match the server's os values.
func (a DownloadAdapter) ReleaseURL(version string, platform string) string {
	query := url.Values{}
	query.Set("version", version)
	query.Set("os", strings.ToLower(platform))
	return a.endpoint() + "?" + query.Encode()
}

func (a DownloadAdapter) Fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid download url").
			WithCause(err)
	}
	req.Header.Set("User-Agent", a.UserAgent)
	client := &http.Client{Timeout: a.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("package download failed").
			WithCause(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("package download failed").
			WithCause(shared.HTTPStatusError(resp.StatusCode, rawURL))
	}

	// The filename comes from the URL the redirects ended on, not the
	// one we asked for.
	name := path.Base(resp.Request.URL.Path)
	if name == "." || name == "/" || name == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg(fmt.Sprintf("download url has no usable filename: %s", resp.Request.URL))
	}
	log.Info().Str("package", name).Msg("downloading package")

	tmp, err := os.CreateTemp("", "sourcemod-*"+nameSuffix(name))
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create temporary download file").
			WithCause(err)
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("package download failed").
			WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write temporary download file").
			WithCause(err)
	}
	return tmp.Name(), nil
}

func (a DownloadAdapter) endpoint() string {
	if a.Endpoint != "" {
		return a.Endpoint
	}
	return defaultReleaseEndpoint
}

// nameSuffix keeps everything from the first dot on, so stacked
// suffixes like .tar.gz survive the temp-file rename.
func nameSuffix(name string) string {
	if idx := strings.Index(name, "."); idx >= 0 {
		return name[idx:]
	}
	return ""
}

var _ ports.DownloadPort = DownloadAdapter{}
