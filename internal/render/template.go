// Package render produces the HTML status page returned by the start
// endpoint.
//
// The page layout lives in an operator-supplied template with two markers,
// {{TITLE}} and {{CONTENT}}. Only the first occurrence of each marker is
// replaced and nothing else in the template is interpreted.
package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Template markers.
const (
	TitleMarker   = "{{TITLE}}"
	ContentMarker = "{{CONTENT}}"
)

// ErrTemplateUnavailable is returned when the template cannot be fetched.
var ErrTemplateUnavailable = errors.New("html template unavailable")

// TemplateSource fetches the page template.
type TemplateSource interface {
	Fetch(ctx context.Context) (string, error)
}

// ObjectGetter reads an object from a bucket.
type ObjectGetter interface {
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
}

// ObjectSource reads the template from object storage on every fetch, so
// template updates take effect without a restart.
type ObjectSource struct {
	Client ObjectGetter
	Bucket string
	Key    string
}

// Fetch implements TemplateSource.
func (s ObjectSource) Fetch(ctx context.Context) (string, error) {
	data, err := s.Client.GetObject(ctx, s.Bucket, s.Key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTemplateUnavailable, err)
	}
	return string(data), nil
}

// FileSource reads the template from the local filesystem.
type FileSource struct {
	Path string
}

// Fetch implements TemplateSource.
func (s FileSource) Fetch(context.Context) (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTemplateUnavailable, err)
	}
	return string(data), nil
}

// Page is a rendered HTML document.
type Page struct {
	Body string
}

// Renderer fills the template.
type Renderer struct {
	source TemplateSource
}

// NewRenderer creates a Renderer reading from source.
func NewRenderer(source TemplateSource) *Renderer {
	return &Renderer{source: source}
}

// Render fetches the template and substitutes title and content.
func (r *Renderer) Render(ctx context.Context, title, content string) (Page, error) {
	tpl, err := r.source.Fetch(ctx)
	if err != nil {
		if !errors.Is(err, ErrTemplateUnavailable) {
			err = fmt.Errorf("%w: %w", ErrTemplateUnavailable, err)
		}
		return Page{}, err
	}
	return Page{Body: Substitute(tpl, title, content)}, nil
}

// Substitute replaces the first title and content marker. The title is
// replaced first, so a title containing the content marker is substituted
// again by the content.
func Substitute(template, title, content string) string {
	out := strings.Replace(template, TitleMarker, title, 1)
	return strings.Replace(out, ContentMarker, content, 1)
}
