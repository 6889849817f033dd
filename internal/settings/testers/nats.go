// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package testers

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/tomtom215/nmsconsole/internal/settings"
)

// TestNATS connects to NATS_URL and round-trips a flush.
func TestNATS(ctx context.Context, v settings.Values) (string, error) {
	url := v.String("NATS_URL")
	if url == "" {
		return "", fmt.Errorf("NATS_URL is not set")
	}

	timeout := 5 * time.Second
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}

	nc, err := nats.Connect(url,
		nats.Name(userAgent),
		nats.Timeout(timeout),
		nats.NoReconnect(),
	)
	if err != nil {
		return "", fmt.Errorf("connect to NATS at %s: %w", url, err)
	}
	defer nc.Close()

	if err := nc.FlushWithContext(ctx); err != nil {
		return "", fmt.Errorf("NATS flush: %w", err)
	}
	return fmt.Sprintf("Connected to NATS server %s", nc.ConnectedServerId()), nil
}
