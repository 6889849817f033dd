// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

/*
Package api exposes the settings engine over HTTP.

Routes:

	GET  /api/v1/health/live     liveness probe
	GET  /api/v1/settings        every registered setting, secrets masked
	POST /api/v1/settings        partial update, validated then applied
	POST /api/v1/settings/test   run connectivity testers, rate limited
	GET  /api/v1/features        feature flags and whether they are on
	GET  /metrics                Prometheus metrics

Every JSON response uses the APIResponse envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "..."}}

Update and test payloads are flat JSON objects keyed by setting name.
Null leaves a setting unchanged. A SECRET_STRING value equal to SecretMask
is treated as null so the masked value returned by GET can be posted back.
Invalid payloads are rejected with VALIDATION_FAILED before the store is
touched. When the settings file cannot be written the update is still
applied, the response reports persisted=false and a restart is scheduled.
*/
package api
