package walshadow

import (
	"bytes"
	"path/filepath"
	"testing"

	"bpmap/diskfile"
)

func Test_recoverAppliesPendingWalRecord(t *testing.T) {
	dir := t.TempDir()
	primary := openTempPrimary(t, dir)
	defer primary.Close()
	wal := openTempLog(t)
	defer wal.Close()
	shadow := openTempShadow(t)
	defer shadow.Close()

	if err := wal.WriteRecord([]Write{{Offset: 0, Data: []byte("recovered")}}); err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}

	applyShadow := func(payload []byte) error { t.Fatalf("unexpected shadow apply"); return nil }
	if err := Recover(primary, wal, shadow, applyShadow); err != nil {
		t.Fatalf("Recover: %v", err)
	}

	got := make([]byte, len("recovered"))
	if err := primary.ReadAt(0, got); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if !bytes.Equal(got, []byte("recovered")) {
		t.Fatalf("got %q, want recovered", got)
	}

	_, ok, err := wal.ReadPendingRecord()
	if err != nil {
		t.Fatalf("ReadPendingRecord: %v", err)
	}
	if ok {
		t.Fatalf("Recover must clear the WAL once applied")
	}
}

func Test_recoverAdoptsStagedShadow(t *testing.T) {
	dir := t.TempDir()
	primary := openTempPrimary(t, dir)
	defer primary.Close()
	wal := openTempLog(t)
	defer wal.Close()
	shadow := openTempShadow(t)
	defer shadow.Close()

	if err := shadow.Stage([]byte("staged header bytes")); err != nil {
		t.Fatalf("Stage: %v", err)
	}

	var applied []byte
	applyShadow := func(payload []byte) error {
		applied = payload
		return nil
	}
	if err := Recover(primary, wal, shadow, applyShadow); err != nil {
		t.Fatalf("Recover: %v", err)
	}
	if !bytes.Equal(applied, []byte("staged header bytes")) {
		t.Fatalf("got %q applied, want staged header bytes", applied)
	}

	_, ok, err := shadow.ReadStaged()
	if err != nil {
		t.Fatalf("ReadStaged: %v", err)
	}
	if ok {
		t.Fatalf("Recover must discard the shadow once adopted")
	}
}

func Test_recoverIsNoOpWithNothingPending(t *testing.T) {
	dir := t.TempDir()
	primary := openTempPrimary(t, dir)
	defer primary.Close()
	wal := openTempLog(t)
	defer wal.Close()
	shadow := openTempShadow(t)
	defer shadow.Close()

	applyShadow := func(payload []byte) error { t.Fatalf("unexpected shadow apply"); return nil }
	if err := Recover(primary, wal, shadow, applyShadow); err != nil {
		t.Fatalf("Recover: %v", err)
	}
}

func openTempPrimary(t *testing.T, dir string) *diskfile.File {
	t.Helper()
	f, err := diskfile.Open(filepath.Join(dir, "primary.bpmap"), diskfile.OpenOptions{})
	if err != nil {
		t.Fatalf("diskfile.Open: %v", err)
	}
	return f
}
