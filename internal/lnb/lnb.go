// Package lnb holds the low-noise block downconverter arithmetic callers need
// when preparing tuner settings: transponder-to-L-band frequency conversion,
// 22 kHz tone selection, and the voltage-to-polarization mapping used by the
// receiver daemon.
package lnb

import "fmt"

// Band identifies the LNB type installed in front of the receiver.
type Band string

const (
	// BandKu is a North America Ku band LNB.
	BandKu Band = "k"
	// BandC is a C band LNB.
	BandC Band = "c"
	// BandUniversal is a Universal (Astra-style dual band) LNB.
	BandUniversal Band = "u"
)

// Local oscillator offsets in MHz.
const (
	cBandOffset         = 5150
	naKuOffset          = 10750
	universalLowOffset  = 9750
	universalHighOffset = 10600

	// Transponder frequency at which a Universal LNB switches to its high
	// band oscillator.
	universalHighSwitch = 11700
)

// Downconvert maps a transponder frequency in MHz to the L-band intermediate
// frequency the tuner actually sees.
func Downconvert(freq int64, band Band) (int64, error) {
	switch band {
	case BandKu:
		return freq - naKuOffset, nil
	case BandC:
		diff := freq - cBandOffset
		if diff < 0 {
			diff = -diff
		}
		return diff, nil
	case BandUniversal:
		if freq > universalHighSwitch {
			return freq - universalHighOffset, nil
		}
		return freq - universalLowOffset, nil
	default:
		return 0, fmt.Errorf("unknown LNB band %q", band)
	}
}

// NeedsTone reports whether the LNB requires the 22 kHz tone for the given
// transponder frequency. Only a Universal LNB tuned above the band switch
// needs it.
func NeedsTone(freq int64, band Band) bool {
	if band == BandKu || band == BandC {
		return false
	}
	return freq > universalHighSwitch
}

// Polarization maps the LNB supply voltage reported by the daemon to a
// polarization letter: 13 V selects vertical, 18 V horizontal. Anything else
// means the supply is off.
func Polarization(voltage int64) string {
	switch voltage {
	case 13:
		return "v"
	case 18:
		return "h"
	default:
		return "0"
	}
}
