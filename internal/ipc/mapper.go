package ipc

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"downlink/internal/stanza"
)

// fieldReader applies a record kind's field table to one stanza. Each
// accessor declares one field: its protocol key, coercion, and whether it is
// required. The first failure sticks; later accessors become no-ops. Keys
// present in the stanza but never declared are ignored, so the daemon can
// grow its protocol without breaking older clients.
type fieldReader struct {
	record string
	st     stanza.Stanza
	err    error
}

func newFieldReader(record string, st stanza.Stanza) *fieldReader {
	return &fieldReader{record: record, st: st}
}

func (r *fieldReader) raw(field, key string, required bool) (string, bool) {
	if r.err != nil {
		return "", false
	}
	value, ok := r.st.Get(key)
	if !ok && required {
		r.err = &MissingFieldError{Record: r.record, Field: field, Key: key}
	}
	return value, ok && r.err == nil
}

func (r *fieldReader) typeErr(field, key, raw string, err error) {
	if r.err == nil {
		r.err = &FieldTypeError{Record: r.record, Field: field, Key: key, Raw: raw, Err: err}
	}
}

func (r *fieldReader) str(field, key string, required bool) string {
	value, _ := r.raw(field, key, required)
	return value
}

func (r *fieldReader) integer(field, key string, required bool) int64 {
	raw, ok := r.raw(field, key, required)
	if !ok {
		return 0
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		r.typeErr(field, key, raw, errors.New("not an integer"))
		return 0
	}
	return value
}

func (r *fieldReader) float(field, key string, required bool) float64 {
	raw, ok := r.raw(field, key, required)
	if !ok {
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.typeErr(field, key, raw, errors.New("not a number"))
		return 0
	}
	return value
}

// boolean accepts exactly the daemon's token set: "yes" and "no".
func (r *fieldReader) boolean(field, key string, required bool) bool {
	raw, ok := r.raw(field, key, required)
	if !ok {
		return false
	}
	switch raw {
	case "yes":
		return true
	case "no":
		return false
	default:
		r.typeErr(field, key, raw, errors.New("want yes or no"))
		return false
	}
}

// unixTime coerces a Unix-seconds timestamp.
func (r *fieldReader) unixTime(field, key string, required bool) time.Time {
	raw, ok := r.raw(field, key, required)
	if !ok {
		return time.Time{}
	}
	seconds, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		r.typeErr(field, key, raw, errors.New("not a unix timestamp"))
		return time.Time{}
	}
	return time.Unix(seconds, 0).UTC()
}

func mapTransferStatus(st stanza.Stanza) (TransferStatus, error) {
	r := newFieldReader("TransferStatus", st)
	record := TransferStatus{
		ID:       r.str("ID", "id", false),
		Path:     r.str("Path", "path", false),
		Hash:     r.str("Hash", "hash", false),
		Size:     r.integer("Size", "size", false),
		Received: r.integer("Received", "received", false),
		Progress: r.integer("Progress", "progress", false),
		State:    r.str("State", "state", false),
		Complete: r.boolean("Complete", "complete", false),
	}
	return record, r.err
}

func mapCacheInfo(st stanza.Stanza) (CacheInfo, error) {
	r := newFieldReader("CacheInfo", st)
	record := CacheInfo{
		Used:  r.integer("Used", "used", true),
		Free:  r.integer("Free", "free", true),
		Files: r.integer("Files", "files", false),
	}
	return record, r.err
}

func mapTunerStatus(st stanza.Stanza) (TunerStatus, error) {
	r := newFieldReader("TunerStatus", st)
	record := TunerStatus{
		Lock:   r.boolean("Lock", "lock", true),
		Signal: r.integer("Signal", "signal", false),
		SNR:    r.float("SNR", "snr", false),
	}
	return record, r.err
}

func mapTunerSettings(st stanza.Stanza) (TunerSettings, error) {
	r := newFieldReader("TunerSettings", st)
	record := TunerSettings{
		Frequency:  r.integer("Frequency", "frequency", true),
		SymbolRate: r.integer("SymbolRate", "symbolrate", true),
		Delivery:   r.str("Delivery", "delivery", false),
		Modulation: r.str("Modulation", "modulation", false),
		Voltage:    r.integer("Voltage", "voltage", false),
		Tone:       r.boolean("Tone", "tone", false),
		Azimuth:    r.integer("Azimuth", "azimuth", false),
	}
	return record, r.err
}

func mapStream(st stanza.Stanza) (Stream, error) {
	r := newFieldReader("Stream", st)
	record := Stream{
		Ident:   r.str("Ident", "ident", true),
		Bitrate: r.integer("Bitrate", "bitrate", false),
	}
	return record, r.err
}

func mapFileEntry(st stanza.Stanza) (FileEntry, error) {
	r := newFieldReader("FileEntry", st)
	record := FileEntry{
		Path: r.str("Path", "path", true),
		Size: r.integer("Size", "size", false),
	}
	return record, r.err
}

func mapEvent(st stanza.Stanza) (Event, error) {
	r := newFieldReader("Event", st)
	record := Event{
		Type:   r.str("Type", "type", true),
		At:     r.unixTime("At", "at", false),
		Detail: r.str("Detail", "detail", false),
	}
	return record, r.err
}

func mapOutputPath(st stanza.Stanza) (string, error) {
	r := newFieldReader("OutputPath", st)
	path := r.str("Path", "path", true)
	return path, r.err
}

// mapAck interprets a control command acknowledgement stanza.
func mapAck(command string, st stanza.Stanza) error {
	r := newFieldReader("Ack", st)
	status := r.str("Status", "status", true)
	reason := r.str("Reason", "reason", false)
	if r.err != nil {
		return r.err
	}
	switch status {
	case "ok":
		return nil
	case "error":
		if reason == "" {
			reason = "no reason given"
		}
		return fmt.Errorf("%w: %s: %s", ErrDaemonRejected, command, reason)
	default:
		return fmt.Errorf("%w: %s: unknown ack status %q", ErrMalformedResponse, command, status)
	}
}

func mapEach[T any](stanzas []stanza.Stanza, mapOne func(stanza.Stanza) (T, error)) ([]T, error) {
	records := make([]T, 0, len(stanzas))
	for _, st := range stanzas {
		record, err := mapOne(st)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
