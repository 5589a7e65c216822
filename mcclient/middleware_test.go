package mcclient

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/mcclient/mcclient/internal/logging"
	"github.com/mcclient/mcclient/internal/ratelimit"
)

func TestChainOrdersOuterToInner(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next HandlerFunc) HandlerFunc {
			return func(conn *Connection) (Packet, error) {
				order = append(order, name+":before")
				pkt, err := next(conn)
				order = append(order, name+":after")
				return pkt, err
			}
		}
	}
	base := func(conn *Connection) (Packet, error) { return Packet{Name: "X"}, nil }

	h := Chain(mark("A"), mark("B"))(base)
	if _, err := h(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"A:before", "B:before", "B:after", "A:after"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestRateLimitMiddlewareShortCircuits(t *testing.T) {
	limiter := ratelimit.New(1, 1)
	calls := 0
	base := func(conn *Connection) (Packet, error) {
		calls++
		return Packet{Name: "X"}, nil
	}
	h := RateLimitMiddleware(limiter)(base)

	if _, err := h(nil); err != nil {
		t.Fatalf("first call should be allowed: %v", err)
	}
	if _, err := h(nil); err == nil {
		t.Fatal("second call should be rejected by the exhausted bucket")
	}
	if calls != 1 {
		t.Fatalf("base handler called %d times, want 1 (second call should short-circuit)", calls)
	}
}

func TestTimeoutMiddlewareSetsDeadlineBeforeReceive(t *testing.T) {
	clientSide, serverSide := net.Pipe()
	defer clientSide.Close()
	defer serverSide.Close()

	conn := newConnection(clientSide, WithLogger(logging.Nop()))
	conn.SetPhase(PhaseStatus)

	h := TimeoutMiddleware(20 * time.Millisecond)(BaseHandler)
	_, err := h(conn)
	if err == nil {
		t.Fatal("expected a deadline-exceeded error since nothing was written to the pipe")
	}
	var netErr net.Error
	if !errors.As(err, &netErr) || !netErr.Timeout() {
		t.Fatalf("expected a net.Error timeout, got %v", err)
	}
}

func TestRunLoopStopsOnHandlerError(t *testing.T) {
	clientSide, serverSide := net.Pipe()
	defer clientSide.Close()
	defer serverSide.Close()
	serverSide.Close() // force the very first read to fail

	conn := newConnection(clientSide, WithLogger(logging.Nop()))
	conn.SetPhase(PhaseStatus)

	err := RunLoop(conn, BaseHandler, func(Packet) error { return nil })
	if err == nil {
		t.Fatal("expected RunLoop to stop on a closed connection")
	}
}
