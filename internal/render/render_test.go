package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockGetter struct {
	GetObjectFunc func(ctx context.Context, bucket, key string) ([]byte, error)
}

func (m *mockGetter) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	return m.GetObjectFunc(ctx, bucket, key)
}

type staticSource string

func (s staticSource) Fetch(context.Context) (string, error) { return string(s), nil }

type failingSource struct{ err error }

func (s failingSource) Fetch(context.Context) (string, error) { return "", s.err }

func TestSubstitute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"both markers", "<h1>{{TITLE}}</h1>{{CONTENT}}", "<h1>T</h1><p>C</p>"},
		{"first occurrence only", "{{TITLE}} {{TITLE}} {{CONTENT}} {{CONTENT}}", "T {{TITLE}} <p>C</p> {{CONTENT}}"},
		{"no markers", "<html></html>", "<html></html>"},
		{"other braces untouched", "{{ title }} {{TITLE}}", "{{ title }} T"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Substitute(tt.template, "T", "<p>C</p>"))
		})
	}
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()
	r := NewRenderer(staticSource("<title>{{TITLE}}</title><body>{{CONTENT}}</body>"))

	page, err := r.Render(context.Background(), SuccessTitle, "<p>hi</p>")
	require.NoError(t, err)
	assert.Equal(t, "<title>Game Server Starting...</title><body><p>hi</p></body>", page.Body)
}

func TestRenderer_TemplateUnavailable(t *testing.T) {
	t.Parallel()
	cause := errors.New("connection refused")
	r := NewRenderer(failingSource{err: cause})

	_, err := r.Render(context.Background(), SuccessTitle, "x")
	require.ErrorIs(t, err, ErrTemplateUnavailable)
	assert.ErrorIs(t, err, cause)
}

func TestObjectSource(t *testing.T) {
	t.Parallel()
	var gotBucket, gotKey string
	src := ObjectSource{
		Client: &mockGetter{GetObjectFunc: func(_ context.Context, bucket, key string) ([]byte, error) {
			gotBucket, gotKey = bucket, key
			return []byte("{{TITLE}}"), nil
		}},
		Bucket: "saves",
		Key:    "assets/html-template.html",
	}

	tpl, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "{{TITLE}}", tpl)
	assert.Equal(t, "saves", gotBucket)
	assert.Equal(t, "assets/html-template.html", gotKey)

	src.Client = &mockGetter{GetObjectFunc: func(context.Context, string, string) ([]byte, error) {
		return nil, errors.New("NoSuchKey")
	}}
	_, err = src.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrTemplateUnavailable)
}

func TestFileSource(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "tpl.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>{{CONTENT}}</p>"), 0o600))

	tpl, err := FileSource{Path: path}.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "<p>{{CONTENT}}</p>", tpl)

	_, err = FileSource{Path: filepath.Join(t.TempDir(), "missing.html")}.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrTemplateUnavailable)
}

func TestSuccessContent(t *testing.T) {
	t.Parallel()
	content, err := SuccessContent("203.0.113.7", map[string]string{"State": "pending"})
	require.NoError(t, err)

	assert.Contains(t, content, "<code>203.0.113.7</code>")
	assert.Contains(t, content, "navigator.clipboard.writeText")
	assert.Contains(t, content, `<pre id="details" style="display: none">`)
	assert.Contains(t, content, "&quot;State&quot;: &quot;pending&quot;")
	assert.Contains(t, content, "Server Manager")
}

func TestSuccessContent_EmptyAddress(t *testing.T) {
	t.Parallel()
	content, err := SuccessContent("", nil)
	require.NoError(t, err)

	assert.Contains(t, content, AddressPlaceholder)
	assert.NotContains(t, content, "navigator.clipboard.writeText")
	assert.Contains(t, content, "null")
}

func TestSuccessContent_EscapesDescription(t *testing.T) {
	t.Parallel()
	content, err := SuccessContent("1.2.3.4", map[string]string{"Name": "<script>alert(1)</script>"})
	require.NoError(t, err)
	assert.NotContains(t, content, "<script>")
	assert.Contains(t, content, "\\u003cscript\\u003e")
}

func TestRender_Deterministic(t *testing.T) {
	t.Parallel()
	description := map[string]any{
		"State":      "pending",
		"InstanceId": "i-0abc",
		"Tags":       map[string]string{"b": "2", "a": "1", "c": "3"},
		"Address":    "203.0.113.7",
	}
	r := NewRenderer(staticSource("<title>{{TITLE}}</title><body>{{CONTENT}}</body>"))

	render := func() (string, string, string) {
		success, err := SuccessContent("203.0.113.7", description)
		require.NoError(t, err)
		failure, err := FailureContent(&smithy.GenericAPIError{Code: "IncorrectInstanceState", Fault: smithy.FaultClient})
		require.NoError(t, err)
		page, err := r.Render(context.Background(), SuccessTitle, success)
		require.NoError(t, err)
		return success, failure, page.Body
	}

	success, failure, page := render()
	for range 5 {
		s, f, p := render()
		assert.Equal(t, success, s)
		assert.Equal(t, failure, f)
		assert.Equal(t, page, p)
	}
}

func TestFailureContent(t *testing.T) {
	t.Parallel()
	err := fmt.Errorf("start instance: %w", &smithy.GenericAPIError{
		Code:    "UnauthorizedOperation",
		Message: "You are not authorized to perform this operation.",
		Fault:   smithy.FaultClient,
	})

	content, renderErr := FailureContent(err)
	require.NoError(t, renderErr)
	assert.Contains(t, content, "The game server failed to start. Error data:")
	assert.Contains(t, content, "UnauthorizedOperation")
	assert.Contains(t, content, "&quot;fault&quot;: &quot;client&quot;")
}

func TestErrorPayload(t *testing.T) {
	t.Parallel()

	plain := ErrorPayload(errors.New("boom"))
	assert.Equal(t, "boom", plain["message"])
	assert.Equal(t, "*errors.errorString", plain["type"])
	assert.NotContains(t, plain, "code")
	assert.NotContains(t, plain, "fault")

	api := ErrorPayload(fmt.Errorf("wrapped: %w", &smithy.GenericAPIError{Code: "IncorrectInstanceState", Fault: smithy.FaultServer}))
	assert.Equal(t, "IncorrectInstanceState", api["code"])
	assert.Equal(t, "server", api["fault"])
	assert.Equal(t, "*smithy.GenericAPIError", api["type"])
	assert.True(t, strings.HasPrefix(api["message"], "wrapped: "))

	assert.Equal(t, "unknown error", ErrorPayload(nil)["message"])
}
