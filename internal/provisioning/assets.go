package provisioning

import (
	"fmt"
	"os"
	"strings"

	"github.com/imamik/gamehost/internal/render"
	"github.com/imamik/gamehost/internal/util/naming"
)

// Content types of the uploaded assets.
const (
	contentTypeScript = "text/x-shellscript"
	contentTypeHTML   = "text/html"
)

// AssetsPhase uploads the bootstrap script and, when the start endpoint is
// enabled, the status page template to the save data bucket.
type AssetsPhase struct{}

// NewAssetsPhase creates a new assets phase.
func NewAssetsPhase() *AssetsPhase {
	return &AssetsPhase{}
}

// Name implements the Phase interface.
func (p *AssetsPhase) Name() string {
	return "assets"
}

// Provision implements the Phase interface.
func (p *AssetsPhase) Provision(ctx *Context) error {
	bucket := ctx.State.Storage.Name
	if bucket == "" {
		return fmt.Errorf("no storage resolved")
	}

	if err := p.upload(ctx, bucket, naming.BootstrapScriptKey, ctx.Config.Bootstrap.Script, contentTypeScript); err != nil {
		return err
	}
	ctx.State.ScriptKey = naming.BootstrapScriptKey

	if !ctx.Config.RestartAPIEnabled() {
		ctx.Record.TemplateBucket = ""
		ctx.Record.TemplateKey = ""
		return nil
	}

	if err := p.upload(ctx, bucket, naming.TemplateKey, ctx.Config.Bootstrap.Template, contentTypeHTML); err != nil {
		return err
	}
	ctx.State.TemplateKey = naming.TemplateKey
	ctx.Record.TemplateBucket = bucket
	ctx.Record.TemplateKey = naming.TemplateKey
	return nil
}

func (p *AssetsPhase) upload(ctx *Context, bucket, key, path, contentType string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if contentType == contentTypeHTML {
		for _, marker := range []string{render.TitleMarker, render.ContentMarker} {
			if !strings.Contains(string(data), marker) {
				ctx.Observer.Event(Event{
					Type:    EventValidationWarning,
					Phase:   p.Name(),
					Message: fmt.Sprintf("template has no %s marker", marker),
				})
			}
		}
	}

	if err := ctx.Storage.PutObject(ctx, bucket, key, contentType, data); err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	ctx.Observer.Event(Event{
		Type:     EventResourceUploaded,
		Phase:    p.Name(),
		Resource: bucket + "/" + key,
		Message:  "object uploaded",
		Fields:   map[string]string{"bytes": fmt.Sprint(len(data))},
	})
	return nil
}
