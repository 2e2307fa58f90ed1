package snapshot

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	derrors "github.com/vango-dev/declarative/internal/errors"
	"github.com/vango-dev/declarative/pkg/render"
	"github.com/vango-dev/declarative/pkg/vdom"
)

type fakeS3 struct {
	inputs []*s3.PutObjectInput
	bodies []string
	err    error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(in.Body)
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, string(body))
	return &s3.PutObjectOutput{}, nil
}

type failingStore struct{}

func (failingStore) Put(context.Context, string, []byte) (string, error) {
	return "", errors.New("disk full")
}

func TestS3StorePut(t *testing.T) {
	client := &fakeS3{}
	store := NewS3Store(client, "site", "previews/")

	loc, err := store.Put(context.Background(), "index.html", []byte("<p>hi</p>"))
	if err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if loc != "s3://site/previews/index.html" {
		t.Errorf("location = %q", loc)
	}
	if len(client.inputs) != 1 {
		t.Fatalf("expected 1 upload, got %d", len(client.inputs))
	}

	in := client.inputs[0]
	if *in.Bucket != "site" || *in.Key != "previews/index.html" {
		t.Errorf("bucket/key = %s/%s", *in.Bucket, *in.Key)
	}
	if *in.ContentType != ContentType {
		t.Errorf("content type = %q", *in.ContentType)
	}
	if *in.ContentLength != int64(len("<p>hi</p>")) {
		t.Errorf("content length = %d", *in.ContentLength)
	}
	if client.bodies[0] != "<p>hi</p>" {
		t.Errorf("body = %q", client.bodies[0])
	}
	if _, ok := in.Metadata["rendered-at"]; !ok {
		t.Error("expected rendered-at metadata")
	}
}

func TestS3StoreError(t *testing.T) {
	store := NewS3Store(&fakeS3{err: errors.New("access denied")}, "site", "")
	_, err := store.Put(context.Background(), "a.html", nil)
	if err == nil || !strings.Contains(err.Error(), "access denied") {
		t.Errorf("expected wrapped error, got %v", err)
	}
}

func TestNewS3Client(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	client := NewS3Client(S3Config{Region: "eu-west-1", Endpoint: "http://localhost:9000", PathStyle: true})
	opts := client.Options()
	if opts.Region != "eu-west-1" || !opts.UsePathStyle {
		t.Errorf("unexpected options %+v", opts)
	}
	if opts.BaseEndpoint == nil || *opts.BaseEndpoint != "http://localhost:9000" {
		t.Error("endpoint override not applied")
	}

	t.Setenv("AWS_ACCESS_KEY_ID", "id")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	creds, err := envCredentials().Retrieve(context.Background())
	if err != nil {
		t.Fatalf("Retrieve error: %v", err)
	}
	if creds.AccessKeyID != "id" || creds.SecretAccessKey != "secret" {
		t.Errorf("unexpected credentials %+v", creds)
	}
}

func TestDirStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	store, err := NewDirStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	path, err := store.Put(context.Background(), "nested/page.html", []byte("<html></html>"))
	if err != nil {
		t.Fatalf("Put error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<html></html>" {
		t.Errorf("file contents = %q", data)
	}

	entries, _ := os.ReadDir(filepath.Join(dir, "nested"))
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestDirStoreRejectsEscapingKeys(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"../x.html", "/etc/passwd", ""} {
		if _, err := store.Put(context.Background(), key, nil); err == nil {
			t.Errorf("key %q should be rejected", key)
		}
	}
}

func TestPublisher(t *testing.T) {
	client := &fakeS3{}
	var observed []string
	pub := NewPublisher(NewS3Store(client, "site", ""),
		WithRenderObserver(func(surface string, _ time.Duration) {
			observed = append(observed, surface)
		}))

	res, err := pub.Publish(context.Background(), "index.html",
		render.PageOptions{Title: "Demo"}, vdom.P(vdom.Text("hello")))
	if err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if res.Location != "s3://site/index.html" || res.Bytes == 0 {
		t.Errorf("unexpected result %+v", res)
	}
	body := client.bodies[0]
	if !strings.Contains(body, "<title>Demo</title>") || !strings.Contains(body, "<p>hello</p>") {
		t.Errorf("unexpected page %q", body)
	}
	if len(observed) != 1 || observed[0] != "snapshot" {
		t.Errorf("observer calls = %v", observed)
	}
}

func TestPublisherStoreFailure(t *testing.T) {
	pub := NewPublisher(failingStore{})
	_, err := pub.Publish(context.Background(), "x.html", render.PageOptions{}, vdom.Empty())
	if derrors.CodeOf(err) != "D030" {
		t.Errorf("expected D030, got %v", err)
	}
	if !strings.Contains(err.Error(), "x.html") {
		t.Errorf("error should name the key: %v", err)
	}
}
