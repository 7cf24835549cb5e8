package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	debversion "github.com/knqyf263/go-deb-version"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	"sourcemod-installer/internal/ports"
	"sourcemod-installer/internal/shared"
)

const defaultBranchEndpoint = "https://www.sourcemod.net/downloads.php"

// archiveMarker identifies hyperlinks that point at downloadable
// builds. Every build link on the downloads page carries a Windows
// package next to the others, so matching one suffix is enough.
const archiveMarker = ".zip"

const defaultBranchTimeout = 30 * time.Second

// BranchResolverAdapter scrapes the downloads page to map a branch
// name, such as stable or dev, to the version it currently serves.
// Build links embed the version as the parent path segment of the
// archive. Lookups are memoized for the lifetime of the process.
type BranchResolverAdapter struct {
	Endpoint  string
	UserAgent string
	Timeout   time.Duration

	mu    sync.Mutex
	cache map[string]string
}

func NewBranchResolverAdapter() *BranchResolverAdapter {
	return &BranchResolverAdapter{
		Endpoint:  defaultBranchEndpoint,
		UserAgent: downloadUserAgent,
		Timeout:   defaultBranchTimeout,
		cache:     map[string]string{},
	}
}

func (a *BranchResolverAdapter) ResolveBranch(ctx context.Context, branch string) (string, error) {
	a.mu.Lock()
	if version, ok := a.cache[branch]; ok {
		a.mu.Unlock()
		return version, nil
	}
	a.mu.Unlock()

	query := url.Values{}
	query.Set("branch", branch)
	pageURL := a.endpoint() + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid branch url").
			WithCause(err)
	}
	req.Header.Set("User-Agent", a.UserAgent)
	client := &http.Client{Timeout: a.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("failed to fetch downloads page").
			WithCause(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg("failed to fetch downloads page").
			WithCause(shared.HTTPStatusError(resp.StatusCode, pageURL))
	}

	version, ok := pickVersion(collectHrefs(resp.Body))
	if !ok {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("failed to resolve branch %s", branch))
	}
	log.Debug().Str("branch", branch).Str("version", version).Msg("resolved branch")

	a.mu.Lock()
	a.cache[branch] = version
	a.mu.Unlock()
	return version, nil
}

// collectHrefs returns the href attribute of every anchor tag. The
// tokenizer stops at the first parse error and keeps what it saw,
// which is the right behavior for scraping a page we do not control.
func collectHrefs(r io.Reader) []string {
	tokenizer := html.NewTokenizer(r)
	var refs []string
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return refs
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := tokenizer.TagName()
			if string(name) != "a" || !hasAttr {
				continue
			}
			for {
				key, value, more := tokenizer.TagAttr()
				if string(key) == "href" {
					refs = append(refs, string(value))
				}
				if !more {
					break
				}
			}
		}
	}
}

// pickVersion keeps the hyperlinks that look like build archives and
// returns the version segment of the best one. When the page lists
// several versions the highest one wins, ordered the Debian way so
// git-suffixed builds compare sensibly; unparseable candidates lose to
// parseable ones.
func pickVersion(refs []string) (string, bool) {
	var candidates []string
	for _, ref := range refs {
		if !strings.Contains(ref, archiveMarker) {
			continue
		}
		parent := path.Base(path.Dir(ref))
		if parent == "." || parent == "/" || parent == "" {
			continue
		}
		candidates = append(candidates, parent)
	}
	if len(candidates) == 0 {
		return "", false
	}
	best := candidates[0]
	for _, candidate := range candidates[1:] {
		if versionLess(best, candidate) {
			best = candidate
		}
	}
	return best, true
}

func versionLess(a string, b string) bool {
	av, aerr := debversion.NewVersion(a)
	bv, berr := debversion.NewVersion(b)
	switch {
	case aerr == nil && berr == nil:
		if av.Equal(bv) {
			return a < b
		}
		return av.LessThan(bv)
	case aerr == nil:
		return false
	case berr == nil:
		return true
	default:
		return a < b
	}
}

func (a *BranchResolverAdapter) endpoint() string {
	if a.Endpoint != "" {
		return a.Endpoint
	}
	return defaultBranchEndpoint
}

var _ ports.VersionResolverPort = (*BranchResolverAdapter)(nil)
