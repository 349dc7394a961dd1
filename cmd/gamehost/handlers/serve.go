package handlers

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/imamik/gamehost/internal/config"
	"github.com/imamik/gamehost/internal/orchestrator"
	"github.com/imamik/gamehost/internal/platform/otel"
	"github.com/imamik/gamehost/internal/platform/s3"
	"github.com/imamik/gamehost/internal/render"
	"github.com/imamik/gamehost/internal/server"
)

const shutdownTimeout = 5 * time.Second

// Factory function variables for serve - can be replaced in tests.
var (
	setupTracing = otel.Setup

	// runServer serves srv until ctx is cancelled.
	runServer = func(ctx context.Context, srv *server.Server, addr string) error {
		return srv.Run(ctx, addr)
	}
)

// Serve runs the start endpoint until SIGINT or SIGTERM.
func Serve(ctx context.Context) error {
	rt, err := loadRuntime()
	if err != nil {
		return fmt.Errorf("invalid runtime configuration: %w", err)
	}
	log := newJSONLogger(stderr).WithValues("instanceID", rt.InstanceID, "provider", rt.Provider)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := setupTracing(ctx, rt.OTelEndpoint, "gamehost", Version)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}

	provider, err := newProvider(ctx, rt.Provider, rt.Region, rt.HCloudToken, loadTimeouts())
	if err != nil {
		return fmt.Errorf("failed to create %s client: %w", rt.Provider, err)
	}
	source, err := templateSource(ctx, rt)
	if err != nil {
		return err
	}

	orch := orchestrator.New(provider, rt.InstanceID,
		orchestrator.WithGraceDelay(rt.StartGraceDelay),
		orchestrator.WithLogger(log.WithName("orchestrator")),
	)
	srv := server.New(orch, render.NewRenderer(source),
		server.WithLogger(log.WithName("server")),
		server.WithStartTimeout(rt.StartTimeout),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer stop()
		return runServer(gctx, srv, rt.ListenAddr)
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return shutdownTracing(sctx)
	})
	return g.Wait()
}

// templateSource reads the page template from disk when HTML_TEMPLATE_FILE
// is set and from object storage otherwise.
func templateSource(ctx context.Context, rt *config.Runtime) (render.TemplateSource, error) {
	if rt.TemplateFile != "" {
		return render.FileSource{Path: rt.TemplateFile}, nil
	}
	store, err := newObjectStore(ctx, s3.Options{
		Region:    rt.Region,
		Endpoint:  rt.S3Endpoint,
		AccessKey: rt.S3AccessKey,
		SecretKey: rt.S3SecretKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}
	return render.ObjectSource{Client: store, Bucket: rt.TemplateBucket, Key: rt.TemplateKey}, nil
}
