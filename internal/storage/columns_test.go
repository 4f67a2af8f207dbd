package storage

import (
	"testing"

	"github.com/mmynk/rigbudget/internal/models"
)

func TestEncodeColumnsNilOthers(t *testing.T) {
	rec := models.NewChecklistRecord("u1")
	rec.OtherComponents = nil

	cols, err := EncodeColumns(&rec)
	if err != nil {
		t.Fatalf("EncodeColumns failed: %v", err)
	}
	if cols.OtherComponents != "[]" {
		t.Errorf("OtherComponents = %q, want []", cols.OtherComponents)
	}
}

func TestDecodeIntoKeepsDefaultsForEmptyColumns(t *testing.T) {
	rec := models.NewChecklistRecord("u1")
	cols := Columns{Checklist: `{"cpu":true}`, Prices: "{}", OtherComponents: "[]"}

	if err := cols.DecodeInto(&rec); err != nil {
		t.Fatalf("DecodeInto failed: %v", err)
	}
	if !rec.Checklist["cpu"] {
		t.Error("cpu should be checked")
	}
	if _, ok := rec.Checklist["gpu"]; !ok {
		t.Error("default slots should survive decoding")
	}
	if len(rec.PartNames) != len(models.Slots) {
		t.Errorf("part names = %d entries, want %d", len(rec.PartNames), len(models.Slots))
	}
}

func TestDecodeIntoRejectsBadJSON(t *testing.T) {
	rec := models.NewChecklistRecord("u1")
	if err := (Columns{Prices: "{"}).DecodeInto(&rec); err == nil {
		t.Error("expected decode error")
	}
}
