// SPDX-License-Identifier: MPL-2.0

// Package watch rebuilds on change. It monitors package roots with fsnotify
// and invokes a callback once a burst of events has settled.
package watch
