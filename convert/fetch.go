package convert

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/docconv"
	"golang.org/x/sync/errgroup"
)

// fetchResult is the outcome of fetching one image reference.
type fetchResult struct {
	ref   string
	image docconv.InlinedImage
	err   error
}

// FetchImages fetches every reference concurrently and returns the
// encoded images keyed by reference. At most Concurrency fetches run at
// once and each is bounded by FetchTimeout. It returns only after every
// fetch has settled. Failed fetches are logged and left out of the result;
// data: references are skipped.
func (c *Converter) FetchImages(ctx context.Context, baseURL string, refs []string) map[string]docconv.InlinedImage {
	images := make(map[string]docconv.InlinedImage, len(refs))
	if len(refs) == 0 {
		return images
	}

	var base *url.URL
	if baseURL != "" {
		if u, err := url.Parse(baseURL); err == nil {
			base = u
		}
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan fetchResult)

	g := new(errgroup.Group)
	g.SetLimit(concurrency)

	go func() {
		for _, ref := range refs {
			if isDataURI(ref) {
				continue
			}
			g.Go(func() error {
				resultCh <- c.fetchImage(ctx, base, ref)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Only this loop writes to images.
	for result := range resultCh {
		if result.err != nil {
			c.logger().Warn("image fetch failed",
				"ref", result.ref,
				"err", result.err,
			)
			continue
		}
		images[result.ref] = result.image
	}

	return images
}

// fetchImage fetches and encodes a single reference.
func (c *Converter) fetchImage(ctx context.Context, base *url.URL, ref string) fetchResult {
	result := fetchResult{ref: ref}
	if err := ctx.Err(); err != nil {
		result.err = err
		return result
	}

	target, err := resolveRef(base, ref)
	if err != nil {
		result.err = err
		return result
	}

	if c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx, target.Hostname()); err != nil {
			result.err = err
			return result
		}
	}

	timeout := c.FetchTimeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	begin := time.Now()
	data, err := c.Images.FetchImage(ctx, target.String())
	if err != nil {
		result.err = fmt.Errorf("fetching %s after %s: %w", target, time.Since(begin).Round(time.Millisecond), err)
		return result
	}
	if len(data) == 0 {
		result.err = errors.New("empty image body")
		return result
	}

	result.image = docconv.NewInlinedImage(c.Detector.Detect(data), data)
	return result
}

// resolveRef turns a reference as written in the markup into an absolute
// http(s) URL. Character references are decoded first because normalized
// markup escapes attribute values.
func resolveRef(base *url.URL, ref string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(html.UnescapeString(ref)))
	if err != nil {
		return nil, fmt.Errorf("invalid image reference: %w", err)
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported image reference %q", ref)
	}
	return u, nil
}

func isDataURI(ref string) bool {
	return len(ref) >= 5 && strings.EqualFold(ref[:5], "data:")
}
