package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errPrefixInvalid   = errors.New("prefix must be 1-32 alphanumeric characters or hyphens, starting with a letter")
	errRegionRequired  = errors.New("region is required")
	errImageRequired   = errors.New("image is required")
	errSubnetNeedsZone = errors.New("availability zone is required when a subnet is set")
)
