// SPDX-License-Identifier: MIT

package timing

import "github.com/cwbudde/algo-vecmath/cpu"

// Host describes the machine a report was produced on.
type Host struct {
	Arch string
	SIMD string
}

// simdOrder lists levels from best to worst; the first supported one wins.
var simdOrder = []cpu.SIMDLevel{cpu.SIMDAVX2, cpu.SIMDAVX, cpu.SIMDSSE2, cpu.SIMDNEON}

// DetectHost reads the cached CPU feature set.
func DetectHost() Host {
	return hostFrom(cpu.DetectFeatures())
}

func hostFrom(f cpu.Features) Host {
	h := Host{Arch: f.Architecture, SIMD: cpu.SIMDNone.String()}
	for _, lvl := range simdOrder {
		if cpu.Supports(f, lvl) {
			h.SIMD = lvl.String()
			break
		}
	}

	return h
}
