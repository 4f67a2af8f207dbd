package storage

import (
	"encoding/json"
	"fmt"

	"github.com/mmynk/rigbudget/internal/models"
)

// Columns is the column form of a checklist record. The map and list fields
// are stored as JSON text so both backends share one schema.
type Columns struct {
	Checklist       string
	Prices          string
	PartNames       string
	OtherComponents string
}

// EncodeColumns serializes the JSON columns of rec.
func EncodeColumns(rec *models.ChecklistRecord) (Columns, error) {
	var (
		c   Columns
		err error
	)
	if c.Checklist, err = encode(rec.Checklist); err != nil {
		return Columns{}, fmt.Errorf("failed to encode checklist: %w", err)
	}
	if c.Prices, err = encode(rec.Prices); err != nil {
		return Columns{}, fmt.Errorf("failed to encode prices: %w", err)
	}
	if c.PartNames, err = encode(rec.PartNames); err != nil {
		return Columns{}, fmt.Errorf("failed to encode part names: %w", err)
	}
	others := rec.OtherComponents
	if others == nil {
		others = []models.OtherComponent{}
	}
	if c.OtherComponents, err = encode(others); err != nil {
		return Columns{}, fmt.Errorf("failed to encode other components: %w", err)
	}
	return c, nil
}

// DecodeInto fills the JSON-backed fields of rec from c. Empty columns leave
// the defaults from models.NewChecklistRecord in place.
func (c Columns) DecodeInto(rec *models.ChecklistRecord) error {
	if err := decode(c.Checklist, &rec.Checklist); err != nil {
		return fmt.Errorf("failed to decode checklist: %w", err)
	}
	if err := decode(c.Prices, &rec.Prices); err != nil {
		return fmt.Errorf("failed to decode prices: %w", err)
	}
	if err := decode(c.PartNames, &rec.PartNames); err != nil {
		return fmt.Errorf("failed to decode part names: %w", err)
	}
	if err := decode(c.OtherComponents, &rec.OtherComponents); err != nil {
		return fmt.Errorf("failed to decode other components: %w", err)
	}
	return nil
}

func encode(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decode(s string, v any) error {
	if s == "" {
		return nil
	}
	return json.Unmarshal([]byte(s), v)
}
