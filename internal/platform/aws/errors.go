package aws

import (
	"errors"

	"github.com/aws/smithy-go"
)

// EC2 error codes handled explicitly.
const (
	codeVpcNotFound        = "InvalidVpcID.NotFound"
	codeInstanceNotFound   = "InvalidInstanceID.NotFound"
	codeDuplicatePermision = "InvalidPermission.Duplicate"
	codeDuplicateGroup     = "InvalidGroup.Duplicate"
)

// errorCode returns the API error code of err, or "".
func errorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

func isErrorCode(err error, codes ...string) bool {
	if err == nil {
		return false
	}
	code := errorCode(err)
	for _, c := range codes {
		if code == c {
			return true
		}
	}
	return false
}

// IsInstanceNotFound reports whether err means the instance id is unknown,
// which also happens briefly right after RunInstances.
func IsInstanceNotFound(err error) bool {
	return isErrorCode(err, codeInstanceNotFound)
}
