package ipc

import (
	"time"

	"downlink/internal/lnb"
)

// TransferStatus is a snapshot of one download the daemon is processing. A
// STATUS snapshot carries state and progress; a LIST entry carries the
// per-transfer identity and byte counters. Fields absent from the stanza
// keep their zero values.
type TransferStatus struct {
	ID       string
	Path     string
	Hash     string
	Size     int64
	Received int64
	Progress int64
	State    string
	Complete bool
}

// Percent reports completion as 0-100. A completed transfer is always 100;
// otherwise the daemon-reported progress wins, falling back to the byte
// counters when the daemon did not send one.
func (t TransferStatus) Percent() int64 {
	if t.Complete {
		return 100
	}
	if t.Progress > 0 {
		return t.Progress
	}
	if t.Size <= 0 {
		return 0
	}
	return t.Received * 100 / t.Size
}

// CacheInfo describes the daemon's download cache storage.
type CacheInfo struct {
	Used  int64
	Free  int64
	Files int64
}

// Total is the cache capacity in bytes.
func (c CacheInfo) Total() int64 { return c.Used + c.Free }

// TunerStatus is the live signal state of the tuner frontend.
type TunerStatus struct {
	Lock   bool
	Signal int64
	SNR    float64
}

// TunerSettings is the tuning configuration the daemon is currently using.
type TunerSettings struct {
	Frequency  int64
	SymbolRate int64
	Delivery   string
	Modulation string
	Voltage    int64
	Tone       bool
	Azimuth    int64
}

// Polarization derives the polarization letter from the LNB supply voltage.
func (s TunerSettings) Polarization() string { return lnb.Polarization(s.Voltage) }

// Stream is one data stream carried on the tuned transponder.
type Stream struct {
	Ident   string
	Bitrate int64
}

// FileEntry is a file the broadcast carousel has announced for delivery.
type FileEntry struct {
	Path string
	Size int64
}

// Event is one entry from the daemon's event log.
type Event struct {
	Type   string
	At     time.Time
	Detail string
}
