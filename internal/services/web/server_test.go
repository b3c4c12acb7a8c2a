package web

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/louisbranch/formdesk/internal/services/web/routepath"
)

func TestServerServesAndShutsDown(t *testing.T) {
	server, err := NewServer("127.0.0.1:0", &fakeAuth{}, testRenderer(t))
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.Serve(ctx)
	}()

	url := fmt.Sprintf("http://%s%s", server.Addr(), routepath.Health)
	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get(url)
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		cancel()
		t.Fatalf("health check: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
