//go:build tinygo

package kernel

// Stack capture is not worth the flash on device builds.
func captureStack() []byte { return nil }
