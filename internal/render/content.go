package render

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
	"github.com/flosch/pongo2"
)

// Page titles.
const (
	SuccessTitle = "Game Server Starting..."
	FailureTitle = "Error Starting Game Server"
)

// AddressPlaceholder is shown when the provider has not assigned a public
// address yet.
const AddressPlaceholder = "(not yet assigned, reload this page in a minute)"

var successTemplate = pongo2.Must(pongo2.FromString(`
<p>The game server is being started.</p>
<p>It may take a few minutes for the server to boot. Connection instructions:</p>
<ol>
  <li>Open the "Server Manager" from the Satisfactory title screen.</li>
  <li>If you have connected to the server before, click on it in the list, and click "Remove Server"</li>
  <li>Click "Add Server"</li>
  <li>
    In the box that appears, paste in the following IP address:
    <ul><li><code>{{ address }}</code>{% if copyable %} <button onclick="navigator.clipboard.writeText('{{ address|escapejs }}')">Copy</button>{% endif %}</li></ul>
  </li>
  <li>Click "OK"</li>
  <li>Click "Authenticate" and enter the admin OR player password.</li>
  <li>Click "Join Game" in the Status tab.</li>
</ol>
<p>
  Note that this IP address is temporary and will change if the server is restarted. If you have connected previously, you will
  need to remove the old server from the server manager, and re-add it with the new IP address. Your progress will not be lost.
</p>
<h2>Technical Details: <button onclick="document.getElementById('details').style.display = 'block'">Show</button></h2>
<pre id="details" style="display: none">
{{ details }}
</pre>`))

var failureTemplate = pongo2.Must(pongo2.FromString(`
<p>The game server failed to start. Error data:</p>
<pre>
{{ details }}
</pre>`))

// SuccessContent renders the body for a started instance.
func SuccessContent(address string, description any) (string, error) {
	copyable := address != ""
	if !copyable {
		address = AddressPlaceholder
	}
	return successTemplate.Execute(pongo2.Context{
		"address":  address,
		"copyable": copyable,
		"details":  prettyJSON(description),
	})
}

// FailureContent renders the body for a failed start.
func FailureContent(err error) (string, error) {
	return failureTemplate.Execute(pongo2.Context{
		"details": prettyJSON(ErrorPayload(err)),
	})
}

// ErrorPayload flattens err into the fields shown on the error page. Code,
// fault and request id are included when some error in the chain exposes
// them, as AWS API errors do.
func ErrorPayload(err error) map[string]string {
	if err == nil {
		return map[string]string{"message": "unknown error"}
	}
	payload := map[string]string{
		"message": err.Error(),
		"type":    fmt.Sprintf("%T", rootCause(err)),
	}

	var coded interface{ ErrorCode() string }
	if errors.As(err, &coded) && coded.ErrorCode() != "" {
		payload["code"] = coded.ErrorCode()
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorFault() != smithy.FaultUnknown {
		payload["fault"] = apiErr.ErrorFault().String()
	}
	var requested interface{ ServiceRequestID() string }
	if errors.As(err, &requested) && requested.ServiceRequestID() != "" {
		payload["requestId"] = requested.ServiceRequestID()
	}
	return payload
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

func prettyJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(data)
}
