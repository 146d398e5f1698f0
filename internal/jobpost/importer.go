package jobpost

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ErrNoContent is returned when a page yields no description text.
var ErrNoContent = errors.New("no job description text found")

// Posting is an imported job description.
type Posting struct {
	URL      string
	Platform Platform
	Text     string
	// Rendered is true when the text came from the headless browser.
	Rendered bool
}

// Options configures an Importer.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	UseBrowser bool
	// Render overrides the browser renderer; nil means headless Chrome.
	Render RenderFunc
	// Client replaces the default guarded client.
	Client *http.Client
	// AllowPrivateNetworks lifts the internal-address guard. Tests only.
	AllowPrivateNetworks bool
}

// Importer fetches job postings over HTTP with an optional browser fallback.
type Importer struct {
	client     *http.Client
	userAgent  string
	timeout    time.Duration
	useBrowser bool
	render     RenderFunc
	resolver   *net.Resolver
	guarded    bool
	logger     *zap.Logger
}

// NewImporter creates an importer. A nil logger disables logging.
func NewImporter(opts Options, logger *zap.Logger) *Importer {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Client == nil {
		if opts.AllowPrivateNetworks {
			opts.Client = &http.Client{Timeout: opts.Timeout}
		} else {
			opts.Client = newGuardedClient(opts.Timeout)
		}
	}
	if opts.Render == nil {
		opts.Render = RenderWithChrome
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{
		client:     opts.Client,
		userAgent:  opts.UserAgent,
		timeout:    opts.Timeout,
		useBrowser: opts.UseBrowser,
		render:     opts.Render,
		resolver:   net.DefaultResolver,
		guarded:    !opts.AllowPrivateNetworks,
		logger:     logger,
	}
}

// Import fetches rawURL and extracts the job description text.
func (im *Importer) Import(ctx context.Context, rawURL string) (*Posting, error) {
	parsed, err := validateURL(rawURL)
	if err != nil {
		return nil, err
	}
	target := parsed.String()
	if im.guarded {
		if err := checkHost(ctx, im.resolver, parsed.Hostname()); err != nil {
			return nil, &Error{URL: target, Message: "destination rejected", Cause: err}
		}
	}
	platform := DetectPlatform(target)
	log := im.logger.With(zap.String("url", target), zap.String("platform", string(platform)))

	text := ""
	p, fetchErr := fetchPage(ctx, im.client, target, im.userAgent)
	if fetchErr == nil {
		text, err = ExtractText(p.HTML, ContentSelectors(platform), NoiseSelectors(platform)...)
		if err != nil {
			return nil, &Error{URL: target, Message: "failed to extract text", Cause: err}
		}
	}

	if im.useBrowser && (fetchErr != nil || NeedsBrowser(text)) {
		log.Debug("falling back to headless browser", zap.Int("text_length", len(text)), zap.Error(fetchErr))
		html, renderErr := im.render(ctx, target, im.timeout)
		if renderErr == nil {
			rendered, err := ExtractText(html, ContentSelectors(platform), NoiseSelectors(platform)...)
			if err == nil && len(rendered) > len(text) {
				return im.finish(log, &Posting{URL: target, Platform: platform, Text: rendered, Rendered: true})
			}
		} else {
			log.Warn("browser rendering failed", zap.Error(renderErr))
		}
	}

	if fetchErr != nil {
		return nil, fetchErr
	}
	return im.finish(log, &Posting{URL: target, Platform: platform, Text: text})
}

func (im *Importer) finish(log *zap.Logger, p *Posting) (*Posting, error) {
	if p.Text == "" {
		return nil, &Error{URL: p.URL, Message: "empty page", Cause: ErrNoContent}
	}
	log.Info("imported job posting", zap.Int("text_length", len(p.Text)), zap.Bool("rendered", p.Rendered))
	return p, nil
}
