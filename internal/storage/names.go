package storage

import (
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"
)

// maxBucketNameLength is the S3 limit shared by Hetzner Object Storage.
const maxBucketNameLength = 63

// GenerateName returns a new bucket name of the form
// <prefix>-saves-<petname>-<8 hex chars>. The random suffix keeps names
// unique across deployments sharing an account.
func GenerateName(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	parts := []string{"saves", petname.Generate(2, "-"), suffix}
	if p := sanitize(prefix); p != "" {
		parts = append([]string{p}, parts...)
	}

	name := strings.Join(parts, "-")
	if len(name) > maxBucketNameLength {
		// Keep the random suffix, trim the readable part.
		head := strings.TrimRight(name[:maxBucketNameLength-len(suffix)-1], "-")
		name = head + "-" + suffix
	}
	return name
}

// sanitize lowercases and drops characters that are not valid in bucket
// names.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == ' ' || r == '.':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
