package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/gamehost/internal/planner"
	"github.com/imamik/gamehost/internal/provisioning"
	"github.com/imamik/gamehost/internal/storage"
)

var (
	planColorGreen = lipgloss.Color("#22c55e")
	planColorBlue  = lipgloss.Color("#3b82f6")
	planColorDim   = lipgloss.Color("#6b7280")
	planColorWhite = lipgloss.Color("#f9fafb")
)

var (
	planTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(planColorWhite)

	planSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(planColorBlue)

	planDimStyle = lipgloss.NewStyle().
			Foreground(planColorDim)

	planGreenStyle = lipgloss.NewStyle().
			Foreground(planColorGreen)
)

// Plan resolves placement and storage and prints the instance
// plan without creating the server.
func Plan(ctx context.Context, configPath string) error {
	pctx, err := newProvisioningContext(ctx, configPath)
	if err != nil {
		return err
	}

	if err := provisioning.PlanPipeline().Run(pctx); err != nil {
		return err
	}

	fmt.Fprint(stdout, renderPlan(pctx.Config.Prefix, pctx.State.Spec, pctx.State.Storage))
	return nil
}

// renderPlan produces a lipgloss-styled summary of spec.
func renderPlan(prefix string, spec *planner.InstanceSpec, store storage.Handle) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(planTitleStyle.Render(fmt.Sprintf("  gamehost plan: %s", prefix)))
	b.WriteString("\n")
	b.WriteString(planDimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n")

	section(&b, "Instance")
	row(&b, "Name", spec.Name)
	row(&b, "Provider", spec.Provider)
	row(&b, "Region", spec.Region)
	row(&b, "Image", spec.ImageID)
	row(&b, "Size", spec.InstanceSize)
	if spec.InstanceProfile != "" {
		row(&b, "Profile", spec.InstanceProfile)
	}

	section(&b, "Placement")
	row(&b, "Network", spec.Placement.Network.String())
	row(&b, "Subnets", spec.Placement.Subnets.String())

	section(&b, "Storage")
	bucket := store.Name
	switch {
	case store.Pending:
		bucket += " " + planGreenStyle.Render("(will be created)")
	case store.Created:
		bucket += " " + planGreenStyle.Render("(created)")
	}
	row(&b, "Bucket", bucket)
	row(&b, "Volume", fmt.Sprintf("%d GiB on %s", spec.VolumeSizeGiB, spec.VolumeDevice))

	section(&b, "Access")
	for _, r := range spec.SecurityRules {
		row(&b, strings.ToUpper(string(r.Protocol)), fmt.Sprintf("%d from %s", r.Port, strings.Join(r.Sources, ", ")))
	}
	endpoint := "disabled"
	if spec.StartEndpoint {
		endpoint = "enabled"
	}
	row(&b, "Start", endpoint)

	b.WriteString("\n")
	b.WriteString(planDimStyle.Render("  Fingerprint: " + spec.Fingerprint()))
	b.WriteString("\n")

	return b.String()
}

func section(b *strings.Builder, title string) {
	b.WriteString("\n")
	b.WriteString(planSectionStyle.Render("  " + title))
	b.WriteString("\n")
}

func row(b *strings.Builder, key, value string) {
	fmt.Fprintf(b, "    %-10s %s\n", key+":", value)
}
