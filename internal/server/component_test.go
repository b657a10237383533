package server

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/steffann/dhcp6vppd/pkg/listener"
	"github.com/steffann/dhcp6vppd/pkg/metrics"
)

func TestDropReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{listener.ErrTruncated, "truncated"},
		{fmt.Errorf("wrapped: %w", listener.ErrUnknownAction), "unknown_action"},
		{listener.ErrNotDHCPv6, "not_dhcpv6"},
		{listener.ErrUnknownInterface, "unknown_interface"},
		{listener.ErrFiltered, "filtered"},
		{errors.New("read punt socket: connection refused"), "read_error"},
	}

	for _, tt := range tests {
		if got := dropReason(tt.err); got != tt.want {
			t.Errorf("dropReason(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}

func TestCountDropReadFailure(t *testing.T) {
	socket := "/run/test/read-failure.sock"

	countDrop(socket, errors.New("read punt socket: connection refused"))

	if got := testutil.ToFloat64(metrics.MessagesReceived.WithLabelValues(socket)); got != 0 {
		t.Errorf("received counter = %v, want 0 when no datagram was read", got)
	}
	if got := testutil.ToFloat64(metrics.MessagesDropped.WithLabelValues(socket, "read_error")); got != 1 {
		t.Errorf("dropped counter = %v, want 1", got)
	}
}

func TestCountDropDecodeFailure(t *testing.T) {
	socket := "/run/test/decode-failure.sock"

	countDrop(socket, fmt.Errorf("%w: 12 bytes", listener.ErrTruncated))

	if got := testutil.ToFloat64(metrics.MessagesReceived.WithLabelValues(socket)); got != 1 {
		t.Errorf("received counter = %v, want 1 for a decode failure", got)
	}
	if got := testutil.ToFloat64(metrics.MessagesDropped.WithLabelValues(socket, "truncated")); got != 1 {
		t.Errorf("dropped counter = %v, want 1", got)
	}
}
