package tree

import (
	"fmt"
	"math"

	"house_management/internal/domain"
)

// UpdateBill merges a partial bill into the room's record for the period.
// Units given without an explicit amount recompute that amount from the tariff.
func (w *World) UpdateBill(roomID, period string, patch domain.BillPatch) (domain.BillData, []Change, error) {
	if !domain.ValidPeriod(period) {
		return domain.BillData{}, nil, fmt.Errorf("period %q: %w", period, ErrValidation)
	}
	for _, v := range []*float64{patch.Water, patch.Electricity, patch.WaterUnits, patch.ElectricityUnits} {
		if v != nil && (*v < 0 || math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return domain.BillData{}, nil, fmt.Errorf("bill value %v: %w", *v, ErrValidation)
		}
	}
	loc, _, err := w.room(roomID)
	if err != nil {
		return domain.BillData{}, nil, err
	}

	bill := loc.Room.Bill(period).Clone()
	if patch.WaterUnits != nil {
		units := *patch.WaterUnits
		bill.WaterUnits = &units
		bill.Water = domain.Price(units, w.Tariff.WaterUnitPrice)
	}
	if patch.ElectricityUnits != nil {
		units := *patch.ElectricityUnits
		bill.ElectricityUnits = &units
		bill.Electricity = domain.Price(units, w.Tariff.ElectricityUnitPrice)
	}
	if patch.Water != nil {
		bill.Water = *patch.Water
	}
	if patch.Electricity != nil {
		bill.Electricity = *patch.Electricity
	}

	if loc.Room.Bills == nil {
		loc.Room.Bills = map[string]domain.BillData{}
	}
	loc.Room.Bills[period] = bill
	return bill.Clone(), []Change{upsert(billRecord(roomID, period, bill))}, nil
}

// MeterReading is one room's committed reading for a category and period.
type MeterReading struct {
	BuildingID   string   `json:"building_id"`
	BuildingName string   `json:"building_name"`
	FloorID      string   `json:"floor_id"`
	FloorName    string   `json:"floor_name"`
	RoomID       string   `json:"room_id"`
	RoomNumber   string   `json:"room_number"`
	Units        *float64 `json:"units,omitempty"`
	Amount       float64  `json:"amount"`
}

// MeterReadings lists every room's reading for the category in tree order.
func (w *World) MeterReadings(c domain.Category, period string) []MeterReading {
	var out []MeterReading
	for _, b := range w.Buildings {
		for _, f := range b.Floors {
			for _, r := range f.Rooms {
				bill := r.Bill(period).Clone()
				out = append(out, MeterReading{
					BuildingID:   b.ID,
					BuildingName: b.Name,
					FloorID:      f.ID,
					FloorName:    f.Label(),
					RoomID:       r.ID,
					RoomNumber:   r.Number,
					Units:        bill.Units(c),
					Amount:       bill.Amount(c),
				})
			}
		}
	}
	return out
}
