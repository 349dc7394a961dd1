package handlers

import (
	"context"
	"fmt"
	"io"

	"github.com/imamik/gamehost/internal/provisioning"
)

// Provision runs every provisioning phase for the configuration at
// configPath. The deployment record is saved after each phase, so a failed
// run resumes with the same bucket.
func Provision(ctx context.Context, configPath string) error {
	pctx, err := newProvisioningContext(ctx, configPath)
	if err != nil {
		return err
	}

	if err := provisioning.DefaultPipeline().Run(pctx); err != nil {
		return err
	}

	printProvisionSuccess(stdout, pctx)
	return nil
}

func printProvisionSuccess(w io.Writer, pctx *provisioning.Context) {
	st := pctx.State
	fmt.Fprintln(w)
	switch {
	case st.Replaced:
		fmt.Fprintln(w, "Game server replaced.")
	default:
		fmt.Fprintln(w, "Game server ready.")
	}
	fmt.Fprintf(w, "  Instance: %s\n", st.Instance.ID)
	fmt.Fprintf(w, "  Bucket:   %s\n", st.Storage.Name)
	fmt.Fprintf(w, "  State:    %s\n", pctx.RecordPath())
	if st.Spec.StartEndpoint && pctx.Config.StateDir != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run the start endpoint with:")
		fmt.Fprintf(w, "  env $(cat %s) gamehost serve\n", pctx.EnvFilePath())
	}
	fmt.Fprintln(w)
}
