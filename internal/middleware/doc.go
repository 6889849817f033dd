// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

/*
Package middleware provides HTTP middleware shared by the console's API.

Key Components:

  - RequestID: reuses or generates X-Request-ID and stores it in the
    request context so logging.Ctx(ctx) tags every log line
  - PrometheusMetrics: request count, latency histogram and in-flight gauge,
    labelled by chi route pattern, plus a slow-request warning

Both are standard func(http.Handler) http.Handler middleware:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
