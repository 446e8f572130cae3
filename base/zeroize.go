package base

import "runtime"

// Zero overwrites b with zeroes in place. Callers use it to scrub key
// material and intermediate keystream blocks once they are no longer
// needed. The runtime.KeepAlive call stops the compiler from proving the
// store dead and eliding it, the same failure mode the teacher's
// os_memzero in gcm/gcm.go guards against by looping over the slice
// directly instead of calling a helper that could get inlined away.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// ZeroAll scrubs every slice passed to it, in order.
func ZeroAll(bs ...[]byte) {
	for _, b := range bs {
		Zero(b)
	}
}
