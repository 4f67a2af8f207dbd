package api

import "github.com/mmynk/rigbudget/internal/models"

// FromRecord converts a stored record to its wire form.
func FromRecord(rec *models.ChecklistRecord) *Checklist {
	if rec == nil {
		return nil
	}
	c := rec.Clone()
	others := make([]OtherComponent, len(c.OtherComponents))
	for i, o := range c.OtherComponents {
		others[i] = OtherComponent(o)
	}
	return &Checklist{
		UserID:          c.UserID,
		Checklist:       c.Checklist,
		Prices:          c.Prices,
		PartNames:       c.PartNames,
		TotalBudget:     c.TotalBudget,
		Currency:        c.Currency,
		OtherComponents: others,
		UpdatedAt:       c.UpdatedAt,
	}
}

// ToRecord converts a wire checklist to a record. Missing maps and slot
// entries are filled with the defaults of models.NewChecklistRecord.
func ToRecord(c *Checklist) models.ChecklistRecord {
	if c == nil {
		return models.NewChecklistRecord("")
	}
	rec := models.NewChecklistRecord(c.UserID)
	for k, v := range c.Checklist {
		rec.Checklist[k] = v
	}
	for k, v := range c.Prices {
		rec.Prices[k] = v
	}
	for k, v := range c.PartNames {
		rec.PartNames[k] = v
	}
	rec.TotalBudget = c.TotalBudget
	rec.Currency = c.Currency
	rec.OtherComponents = make([]models.OtherComponent, len(c.OtherComponents))
	for i, o := range c.OtherComponents {
		rec.OtherComponents[i] = models.OtherComponent(o)
	}
	rec.UpdatedAt = c.UpdatedAt
	return rec
}

// FromUser converts an account to its public wire form.
func FromUser(u *models.User) *User {
	if u == nil {
		return nil
	}
	return &User{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}
