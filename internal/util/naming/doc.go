// Package naming provides consistent names for deployment resources and
// the local files that track them.
//
// Cloud resources follow the pattern {prefix}-{type}. Local state lives
// under the state directory as {prefix}.yaml and {prefix}.env.
package naming
