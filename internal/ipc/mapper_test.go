package ipc

import (
	"errors"
	"testing"
	"time"

	"downlink/internal/stanza"
)

func TestMapTransferStatus(t *testing.T) {
	st := stanza.Stanza{
		{Key: "id", Value: "f2b7"},
		{Key: "path", Value: "/srv/files/pack.tar"},
		{Key: "size", Value: "1000"},
		{Key: "received", Value: "250"},
		{Key: "complete", Value: "no"},
		{Key: "carousel", Value: "7"}, // undeclared key, must be ignored
	}
	record, err := mapTransferStatus(st)
	if err != nil {
		t.Fatalf("mapTransferStatus: %v", err)
	}
	if record.ID != "f2b7" || record.Size != 1000 || record.Received != 250 {
		t.Fatalf("record = %+v", record)
	}
	if record.Complete {
		t.Fatal("complete should be false")
	}
	if got := record.Percent(); got != 25 {
		t.Fatalf("Percent = %d, want 25", got)
	}
}

func TestTransferStatusPercent(t *testing.T) {
	tests := []struct {
		name   string
		record TransferStatus
		want   int64
	}{
		{"complete wins", TransferStatus{Complete: true, Size: 10, Received: 1}, 100},
		{"daemon progress wins", TransferStatus{Progress: 40, Size: 10, Received: 1}, 40},
		{"derived from counters", TransferStatus{Size: 200, Received: 50}, 25},
		{"no size means zero", TransferStatus{Received: 50}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.Percent(); got != tt.want {
				t.Fatalf("Percent = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMapCacheInfoMissingRequiredField(t *testing.T) {
	st := stanza.Stanza{{Key: "used", Value: "1024"}}
	_, err := mapCacheInfo(st)
	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want MissingFieldError", err)
	}
	if missing.Field != "Free" || missing.Key != "free" {
		t.Fatalf("missing field = %+v", missing)
	}
}

func TestMapCacheInfoTotal(t *testing.T) {
	st := stanza.Stanza{
		{Key: "used", Value: "300"},
		{Key: "free", Value: "700"},
	}
	record, err := mapCacheInfo(st)
	if err != nil {
		t.Fatalf("mapCacheInfo: %v", err)
	}
	if record.Total() != 1000 {
		t.Fatalf("Total = %d, want 1000", record.Total())
	}
}

func TestCoercionFailureNamesFieldAndRawValue(t *testing.T) {
	st := stanza.Stanza{
		{Key: "used", Value: "a-lot"},
		{Key: "free", Value: "700"},
	}
	_, err := mapCacheInfo(st)
	var typeErr *FieldTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("error = %v, want FieldTypeError", err)
	}
	if typeErr.Field != "Used" || typeErr.Raw != "a-lot" {
		t.Fatalf("type error = %+v", typeErr)
	}
}

func TestMapTunerStatusBooleanTokens(t *testing.T) {
	record, err := mapTunerStatus(stanza.Stanza{
		{Key: "lock", Value: "yes"},
		{Key: "signal", Value: "82"},
		{Key: "snr", Value: "11.5"},
	})
	if err != nil {
		t.Fatalf("mapTunerStatus: %v", err)
	}
	if !record.Lock || record.Signal != 82 || record.SNR != 11.5 {
		t.Fatalf("record = %+v", record)
	}

	_, err = mapTunerStatus(stanza.Stanza{{Key: "lock", Value: "true"}})
	var typeErr *FieldTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("error = %v, want FieldTypeError for non yes/no token", err)
	}
}

func TestMapTunerSettingsPolarization(t *testing.T) {
	record, err := mapTunerSettings(stanza.Stanza{
		{Key: "frequency", Value: "1721"},
		{Key: "symbolrate", Value: "27500"},
		{Key: "voltage", Value: "18"},
	})
	if err != nil {
		t.Fatalf("mapTunerSettings: %v", err)
	}
	if record.Polarization() != "h" {
		t.Fatalf("Polarization = %q, want h", record.Polarization())
	}
}

func TestMapEventTimestamp(t *testing.T) {
	record, err := mapEvent(stanza.Stanza{
		{Key: "type", Value: "carousel_restart"},
		{Key: "at", Value: "1700000000"},
		{Key: "detail", Value: "signaling carousel restarted"},
	})
	if err != nil {
		t.Fatalf("mapEvent: %v", err)
	}
	if record.At != time.Unix(1700000000, 0).UTC() {
		t.Fatalf("At = %v", record.At)
	}

	_, err = mapEvent(stanza.Stanza{
		{Key: "type", Value: "x"},
		{Key: "at", Value: "yesterday"},
	})
	var typeErr *FieldTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("error = %v, want FieldTypeError", err)
	}
}

func TestMapAck(t *testing.T) {
	if err := mapAck("CACHE-RESET", stanza.Stanza{{Key: "status", Value: "ok"}}); err != nil {
		t.Fatalf("ok ack: %v", err)
	}

	err := mapAck("CACHE-RESET", stanza.Stanza{
		{Key: "status", Value: "error"},
		{Key: "reason", Value: "cache busy"},
	})
	if !errors.Is(err, ErrDaemonRejected) {
		t.Fatalf("error = %v, want ErrDaemonRejected", err)
	}

	err = mapAck("CACHE-RESET", stanza.Stanza{{Key: "status", Value: "maybe"}})
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("error = %v, want ErrMalformedResponse", err)
	}

	err = mapAck("CACHE-RESET", stanza.Stanza{{Key: "reason", Value: "no status"}})
	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want MissingFieldError", err)
	}
}
