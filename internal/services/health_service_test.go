package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(ctx context.Context) error {
	return f.err
}

func TestHealthStatusBeforeProbe(t *testing.T) {
	svc := NewHealthService(&fakePinger{}, nil, time.Second)

	status := svc.Status()
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "sibbap-admin", status.Service)
	assert.Nil(t, status.Upstream.CheckedAt)
	assert.Equal(t, 0, status.Screens)
}

func TestHealthProbe(t *testing.T) {
	pinger := &fakePinger{}
	screens := newTestScreenService(t, &fakeLoanSource{}, &fakeDepositSource{}, syncRunner{})
	_, err := screens.MountLoanMonitor("42")
	require.NoError(t, err)

	svc := NewHealthService(pinger, screens, time.Second)

	require.NoError(t, svc.Probe(context.Background()))
	status := svc.Status()
	assert.Equal(t, "ok", status.Status)
	assert.True(t, status.Upstream.Reachable)
	assert.NotNil(t, status.Upstream.CheckedAt)
	assert.Equal(t, 1, status.Screens)

	pinger.err = errors.New("connection refused")
	require.NoError(t, svc.Probe(context.Background()))
	status = svc.Status()
	assert.Equal(t, "degraded", status.Status)
	assert.False(t, status.Upstream.Reachable)
	assert.Equal(t, "connection refused", status.Upstream.Error)
}
