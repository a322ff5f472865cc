// Package deviation expresses measurement tolerance for masses as a relative
// part (parts per million) combined with an absolute floor.
//
// The allowed error for a mass m is max(m·ppm·1e-6, absolute): relative error
// dominates at high masses, the absolute floor keeps small masses from getting
// an unusably narrow window.
//
//	dev := deviation.MustNew(10, 0.001) // 10 ppm, at least 1 mDa
//	from, to := dev.Window(180.0634)    // [180.0616, 180.0652]
package deviation
