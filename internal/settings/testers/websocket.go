// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package testers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/nmsconsole/internal/settings"
)

// TestWebSocket performs the WebSocket handshake against TELEMETRY_WS_URL
// and closes the connection cleanly.
func TestWebSocket(ctx context.Context, v settings.Values) (string, error) {
	url := v.String("TELEMETRY_WS_URL")
	if url == "" {
		return "", fmt.Errorf("TELEMETRY_WS_URL is not set")
	}

	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: 5 * time.Second,
	}
	header := http.Header{"User-Agent": []string{userAgent}}

	conn, resp, err := dialer.DialContext(ctx, url, header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		if resp != nil {
			return "", fmt.Errorf("handshake with %s failed with HTTP %d: %w", url, resp.StatusCode, err)
		}
		return "", fmt.Errorf("dial %s: %w", url, err)
	}
	defer conn.Close()

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "settings test"),
		time.Now().Add(time.Second))

	return fmt.Sprintf("WebSocket handshake with %s succeeded", url), nil
}
