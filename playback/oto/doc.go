// SPDX-License-Identifier: EPL-2.0

// Package oto is the host playback.Device, built on
// github.com/ebitengine/oto/v3. It links against the platform audio
// library (ALSA on Linux), so it is kept apart from package playback.
package oto
