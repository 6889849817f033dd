// NMS Console - Network Management Web Console
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nmsconsole

/*
Package settings implements the console's settings engine.

Configuration values come from three sources, lowest precedence first:

 1. the dotenv file (.env, skipped when DISABLE_ENV_FILE is set)
 2. the process environment at startup
 3. the persisted settings file (settings.json, relocatable with NMS_SETTINGS_FILE)

Only keys declared in the Registry are read from any source. Merge resolves
each key to the highest-precedence non-null value, and the result is copied
back into the process environment so code reading os.Getenv sees merged
values. Compiled defaults are applied by readers through Values, never
merged in.

# Store

A Store owns one immutable State and replaces it wholesale:

	store := settings.NewStore(registry,
	    settings.WithRestarter(coordinator),
	    settings.WithTesters(testers.Default()),
	)
	if _, err := store.Initialize(ctx); err != nil {
	    return err
	}
	res, err := store.Update(ctx, settings.EnvMap{"PORT": settings.Str("8081")})

Update persists only changed values, recomputes the merge and starts a
restart cycle when a changed key requires one. Null values never change
anything.

# Restarts

RestartCoordinator cooperates with an optional external supervisor over
SIGUSR2. Signals arriving while an update is being applied are absorbed; the
coordinator then raises its own signal and forwards it, falling back to a
direct forward when nothing is delivered.

# Testers

Store.Test runs named connectivity checks against candidate values layered
over the persisted settings file, once per tester group.
*/
package settings
