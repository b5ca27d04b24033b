package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matzehuels/foilsweep/pkg/polar"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	s := NoopSweepHooks{}
	s.OnSweepStart(ctx, "naca2412", 12)
	s.OnRunComplete(ctx, 1, 12, polar.Entry{Reynolds: 1e5, Status: polar.StatusFailed})
	s.OnSweepComplete(ctx, "naca2412", nil, time.Second)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "curve")
	c.OnCacheMiss(ctx, "coords")
	c.OnCacheSet(ctx, "curve", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "m-selig.ae.illinois.edu", "/ads/coord/e387.dat")
	h.OnResponse(ctx, "GET", "m-selig.ae.illinois.edu", "/ads/coord/e387.dat", 200, time.Second)
	h.OnError(ctx, "GET", "m-selig.ae.illinois.edu", "/ads/coord/e387.dat", errors.New("timeout"))
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Sweep().(NoopSweepHooks); !ok {
		t.Error("Sweep() should return NoopSweepHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	sweep := &testSweepHooks{}
	SetSweepHooks(sweep)
	if Sweep() != sweep {
		t.Error("SetSweepHooks should set custom hooks")
	}

	cache := &testCacheHooks{}
	SetCacheHooks(cache)
	if Cache() != cache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	http := &testHTTPHooks{}
	SetHTTPHooks(http)
	if HTTP() != http {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Sweep().(NoopSweepHooks); !ok {
		t.Error("Reset() should restore NoopSweepHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	custom := &testSweepHooks{}
	SetSweepHooks(custom)
	SetSweepHooks(nil)
	if Sweep() != custom {
		t.Error("SetSweepHooks(nil) should be ignored")
	}
}

type testSweepHooks struct{ NoopSweepHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
