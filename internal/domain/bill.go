package domain

import (
	"math"
	"time"
)

// PeriodLayout is the time layout of a bill period key
const PeriodLayout = "2006-01"

// Category is a billing category with its own meter and unit price
type Category string

const (
	CategoryWater       Category = "water"
	CategoryElectricity Category = "electricity"
)

// ParseCategory accepts the category names used in URLs
func ParseCategory(s string) (Category, bool) {
	switch s {
	case "water":
		return CategoryWater, true
	case "electricity", "electric":
		return CategoryElectricity, true
	}
	return "", false
}

// Page returns the console page where the category is read
func (c Category) Page() Page {
	if c == CategoryWater {
		return PageWater
	}
	return PageElectric
}

// ValidPeriod reports whether s is a "YYYY-MM" key
func ValidPeriod(s string) bool {
	if len(s) != len(PeriodLayout) {
		return false
	}
	_, err := time.Parse(PeriodLayout, s)
	return err == nil
}

// PeriodOf returns the period key containing t
func PeriodOf(t time.Time) string {
	return t.Format(PeriodLayout)
}

// BillData is one room's utility charges for one month
type BillData struct {
	Water            float64  `json:"water"`                      // Water amount
	Electricity      float64  `json:"electricity"`                // Electricity amount
	WaterUnits       *float64 `json:"waterUnits,omitempty"`       // Water meter units
	ElectricityUnits *float64 `json:"electricityUnits,omitempty"` // Electricity meter units
}

// Units returns the committed unit count for the category, nil when never read
func (b BillData) Units(c Category) *float64 {
	if c == CategoryWater {
		return b.WaterUnits
	}
	return b.ElectricityUnits
}

// Amount returns the charged amount for the category
func (b BillData) Amount(c Category) float64 {
	if c == CategoryWater {
		return b.Water
	}
	return b.Electricity
}

// Clone copies the optional unit pointers
func (b BillData) Clone() BillData {
	if b.WaterUnits != nil {
		v := *b.WaterUnits
		b.WaterUnits = &v
	}
	if b.ElectricityUnits != nil {
		v := *b.ElectricityUnits
		b.ElectricityUnits = &v
	}
	return b
}

// BillPatch is a partial bill update; nil fields are left unchanged
type BillPatch struct {
	Water            *float64 `json:"water,omitempty"`
	Electricity      *float64 `json:"electricity,omitempty"`
	WaterUnits       *float64 `json:"waterUnits,omitempty"`
	ElectricityUnits *float64 `json:"electricityUnits,omitempty"`
}

// UnitsPatch builds a patch that sets the units of one category
func UnitsPatch(c Category, units float64) BillPatch {
	if c == CategoryWater {
		return BillPatch{WaterUnits: &units}
	}
	return BillPatch{ElectricityUnits: &units}
}

// Price computes round(units * unitPrice)
func Price(units, unitPrice float64) float64 {
	return math.Round(units * unitPrice)
}

// Tariff holds the unit price of each category
type Tariff struct {
	WaterUnitPrice       float64 `json:"water_unit_price"`
	ElectricityUnitPrice float64 `json:"electricity_unit_price"`
}

// UnitPrice returns the price of one unit in the category
func (t Tariff) UnitPrice(c Category) float64 {
	if c == CategoryWater {
		return t.WaterUnitPrice
	}
	return t.ElectricityUnitPrice
}
