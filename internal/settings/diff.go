// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

package settings

// Diff returns the entries of submitted that would change current.
//
// Null entries never enter the diff: submitting null leaves the key as it
// is. When full is true every non-null submitted entry is returned, changed
// or not.
func Diff(current, submitted EnvMap, full bool) EnvMap {
	out := make(EnvMap)
	for k, v := range submitted {
		if v == nil {
			continue
		}
		if !full {
			if cur, ok := current.Get(k); ok && cur == *v {
				continue
			}
		}
		out[k] = Str(*v)
	}
	return out
}
