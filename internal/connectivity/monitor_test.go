package connectivity_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ghb72/Ranch-Finance/internal/connectivity"
)

type scriptedProber struct {
	answers []bool
	calls   int
}

func (p *scriptedProber) Ping(ctx context.Context) bool {
	answer := p.answers[p.calls%len(p.answers)]
	p.calls++
	return answer
}

func TestMonitorFiresOncePerTransition(t *testing.T) {
	prober := &scriptedProber{answers: []bool{false, false, true, true, false}}
	monitor := connectivity.NewMonitor(prober, time.Minute, nil)

	var onlineFired, offlineFired int
	monitor.OnOnline(func(ctx context.Context) { onlineFired++ })
	monitor.OnOffline(func(ctx context.Context) { offlineFired++ })

	ctx := context.Background()
	for i := 0; i < len(prober.answers); i++ {
		monitor.Check(ctx)
	}

	assert.Equal(t, 1, onlineFired, "offline, offline, online, online fires once")
	assert.Equal(t, 2, offlineFired, "initial offline plus the final drop")
	assert.False(t, monitor.Online())
}

func TestMonitorInitialOnlineFiresHook(t *testing.T) {
	prober := &scriptedProber{answers: []bool{true}}
	monitor := connectivity.NewMonitor(prober, time.Minute, nil)

	fired := 0
	monitor.OnOnline(func(ctx context.Context) { fired++ })

	monitor.Check(context.Background())

	assert.Equal(t, 1, fired)
	assert.True(t, monitor.Online())
}

func TestMonitorRunStopsOnCancel(t *testing.T) {
	prober := &scriptedProber{answers: []bool{true}}
	monitor := connectivity.NewMonitor(prober, time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- monitor.Run(ctx) }()

	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop after cancel")
	}
}
