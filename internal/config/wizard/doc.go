// Package wizard provides an interactive configuration wizard for gamehost.
//
// It uses charmbracelet/huh for form-based input collection. RunWizard
// collects a WizardResult, BuildConfig converts it to a Config, and
// WriteConfig generates the YAML output file.
package wizard
