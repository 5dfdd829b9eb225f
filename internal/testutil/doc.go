// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Fixture helpers (Source, WritePackage) lay out packages on any afero.Fs.
// Environment helpers (MustChdir, MustSetenv, MustUnsetenv, SetHomeDir)
// return cleanup functions restoring the previous state.
package testutil
