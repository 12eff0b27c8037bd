package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

const indexHTML = `<!doctype html>
<html><body>
<h1>Models</h1>
<ul>
<li><a href="/files/teapot.stl">Utah teapot</a></li>
<li><a href="benchy.STL"></a></li>
<li><a href="/about.html">About</a></li>
<li><a>no href</a></li>
</ul>
</body></html>`

func newTestServer(t *testing.T, fetches *int64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(indexHTML))
	})
	mux.HandleFunc("/files/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files/teapot.stl" {
			http.NotFound(w, r)
			return
		}
		if fetches != nil {
			atomic.AddInt64(fetches, 1)
		}
		w.Write([]byte("solid teapot\nendsolid teapot\n"))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestListThings(t *testing.T) {
	server := newTestServer(t, nil)
	client := NewClient(server.URL, "")

	things, err := client.ListThings(context.Background())
	if err != nil {
		t.Fatalf("ListThings: %v", err)
	}
	if len(things) != 2 {
		t.Fatalf("len = %d, want 2 (non-STL links skipped)", len(things))
	}

	if things[0].Name != "Utah teapot" {
		t.Errorf("Name = %q, want %q", things[0].Name, "Utah teapot")
	}
	if things[0].FileURL != server.URL+"/files/teapot.stl" {
		t.Errorf("FileURL = %q, want resolved absolute URL", things[0].FileURL)
	}
	// Anchor without text falls back to the file name.
	if things[1].Name != "benchy" {
		t.Errorf("Name = %q, want %q", things[1].Name, "benchy")
	}
}

func TestListThingsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	if _, err := NewClient(server.URL, "").ListThings(context.Background()); err == nil {
		t.Error("ListThings did not surface the HTTP error")
	}
}

func TestFetchModel(t *testing.T) {
	var fetches int64
	server := newTestServer(t, &fetches)
	client := NewClient(server.URL, "")

	data, err := client.FetchModel(context.Background(), server.URL+"/files/teapot.stl")
	if err != nil {
		t.Fatalf("FetchModel: %v", err)
	}
	if string(data) != "solid teapot\nendsolid teapot\n" {
		t.Errorf("unexpected payload %q", data)
	}
}

func TestFetchModelCache(t *testing.T) {
	var fetches int64
	server := newTestServer(t, &fetches)
	client := NewClient(server.URL, t.TempDir())

	url := server.URL + "/files/teapot.stl"
	first, err := client.FetchModel(context.Background(), url)
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	second, err := client.FetchModel(context.Background(), url)
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	if string(first) != string(second) {
		t.Error("cached payload differs from fetched payload")
	}
	if n := atomic.LoadInt64(&fetches); n != 1 {
		t.Errorf("server saw %d fetches, want 1 (second should hit cache)", n)
	}
}

func TestFetchModelNotFound(t *testing.T) {
	server := newTestServer(t, nil)
	client := NewClient(server.URL, "")

	if _, err := client.FetchModel(context.Background(), server.URL+"/files/missing.stl"); err == nil {
		t.Error("FetchModel did not surface 404")
	}
}
