package s3

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// testClient creates a Client backed by a test HTTP server.
// The handler receives real S3 XML-protocol requests.
func testClient(t *testing.T, region, endpoint string, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(server.URL),
		UsePathStyle: true,
		Credentials:  credentials.NewStaticCredentialsProvider("test-key", "test-secret", ""),
	})

	return &Client{s3: client, region: region, endpoint: endpoint}
}

func xmlResponse(w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(body))
}

func errorBody(code string) string {
	return `<?xml version="1.0" encoding="UTF-8"?><Error><Code>` + code + `</Code><Message>` + code + `</Message></Error>`
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts Options
	}{
		{"hetzner with static keys", Options{Region: "fsn1", Endpoint: "https://fsn1.your-objectstorage.com", AccessKey: "ak", SecretKey: "sk"}},
		{"aws default chain", Options{Region: "eu-west-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client, err := NewClient(context.Background(), tt.opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if client.region != tt.opts.Region {
				t.Errorf("expected region %s, got %s", tt.opts.Region, client.region)
			}
			if client.endpoint != tt.opts.Endpoint {
				t.Errorf("expected endpoint %q, got %q", tt.opts.Endpoint, client.endpoint)
			}
		})
	}
}

func TestCreateBucket_LocationConstraint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		region   string
		endpoint string
		want     bool
	}{
		{"aws outside us-east-1", "eu-west-1", "", true},
		{"aws us-east-1", "us-east-1", "", false},
		{"custom endpoint", "fsn1", "https://fsn1.your-objectstorage.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var mu sync.Mutex
			var body string
			client := testClient(t, tt.region, tt.endpoint, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				b, _ := io.ReadAll(r.Body)
				mu.Lock()
				body = string(b)
				mu.Unlock()
				xmlResponse(w, 200, `<?xml version="1.0" encoding="UTF-8"?><CreateBucketResult/>`)
			}))

			if err := client.CreateBucket(context.Background(), "saves"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			mu.Lock()
			defer mu.Unlock()
			got := strings.Contains(body, "<LocationConstraint>"+tt.region+"</LocationConstraint>")
			if got != tt.want {
				t.Errorf("location constraint present = %v, want %v (body %q)", got, tt.want, body)
			}
		})
	}
}

func TestCreateBucket_AlreadyOwnedByYou(t *testing.T) {
	t.Parallel()

	client := testClient(t, "fsn1", "x", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		xmlResponse(w, 409, errorBody("BucketAlreadyOwnedByYou"))
	}))

	if err := client.CreateBucket(context.Background(), "saves"); err != nil {
		t.Fatalf("expected nil error for already owned bucket, got: %v", err)
	}
}

func TestCreateBucket_Errors(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"BucketAlreadyExists", "AccessDenied"} {
		t.Run(code, func(t *testing.T) {
			t.Parallel()
			client := testClient(t, "fsn1", "x", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				xmlResponse(w, 409, errorBody(code))
			}))

			err := client.CreateBucket(context.Background(), "saves")
			if err == nil {
				t.Fatal("expected error but got nil")
			}
			if !strings.Contains(err.Error(), "failed to create bucket saves") {
				t.Errorf("unexpected error message: %v", err)
			}
		})
	}
}

func TestBucketExists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		want    bool
		wantErr bool
	}{
		{"exists", 200, "", true, false},
		{"missing", 404, errorBody("NotFound"), false, false},
		{"forbidden", 403, errorBody("AccessDenied"), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := testClient(t, "eu-west-1", "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodHead {
					w.WriteHeader(405)
					return
				}
				xmlResponse(w, tt.status, tt.body)
			}))

			got, err := client.BucketExists(context.Background(), "saves")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("BucketExists() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPutObject_ContentType(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var contentType, path string
	client := testClient(t, "eu-west-1", "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		contentType = r.Header.Get("Content-Type")
		path = r.URL.Path
		mu.Unlock()
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(200)
	}))

	err := client.PutObject(context.Background(), "saves", "assets/html-template.html", "text/html", []byte("<html></html>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if contentType != "text/html" {
		t.Errorf("expected content type text/html, got %q", contentType)
	}
	if path != "/saves/assets/html-template.html" {
		t.Errorf("unexpected path %q", path)
	}
}

func TestPutObject_Error(t *testing.T) {
	t.Parallel()

	client := testClient(t, "eu-west-1", "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		xmlResponse(w, 403, errorBody("AccessDenied"))
	}))

	err := client.PutObject(context.Background(), "saves", "k", "", []byte("data"))
	if err == nil || !strings.Contains(err.Error(), "failed to put object k in bucket saves") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetObject(t *testing.T) {
	t.Parallel()

	client := testClient(t, "eu-west-1", "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/saves/missing" {
			xmlResponse(w, 404, errorBody("NoSuchKey"))
			return
		}
		w.WriteHeader(200)
		_, _ = w.Write([]byte("{{TITLE}}"))
	}))

	data, err := client.GetObject(context.Background(), "saves", "tpl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "{{TITLE}}" {
		t.Errorf("unexpected data %q", data)
	}

	_, err = client.GetObject(context.Background(), "saves", "missing")
	if err == nil || !strings.Contains(err.Error(), "failed to get object missing from bucket saves") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIsBucketAlreadyOwnedByYou(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"typed", &types.BucketAlreadyOwnedByYou{}, true},
		{"typed exists elsewhere", &types.BucketAlreadyExists{}, false},
		{"generic code", &smithy.GenericAPIError{Code: "BucketAlreadyOwnedByYou"}, true},
		{"other", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isBucketAlreadyOwnedByYou(tt.err); got != tt.want {
				t.Errorf("isBucketAlreadyOwnedByYou() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"no such bucket", &types.NoSuchBucket{}, true},
		{"not found", &types.NotFound{}, true},
		{"generic 404", &smithy.GenericAPIError{Code: "404"}, true},
		{"access denied", &smithy.GenericAPIError{Code: "AccessDenied"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isNotFoundError(tt.err); got != tt.want {
				t.Errorf("isNotFoundError() = %v, want %v", got, tt.want)
			}
		})
	}
}
