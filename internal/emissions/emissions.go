// Package emissions converts user-logged activities into carbon impact
// figures (kg of CO2). Positive values are emissions, negative values are
// sequestration. The calculator is pure and allocation-local, so it is safe
// to call from any number of request handlers concurrently.
package emissions

import (
	"fmt"
	"time"
)

// ActivityType discriminates the activity payload.
type ActivityType string

const (
	ActivityTransport   ActivityType = "transport"
	ActivityElectricity ActivityType = "electricity"
	ActivityGas         ActivityType = "gas"
	ActivityFood        ActivityType = "food"
	ActivityTree        ActivityType = "tree"
)

// FuelType is the fuel burned by a transport activity.
type FuelType string

const (
	FuelPetrol FuelType = "petrol"
	FuelDiesel FuelType = "diesel"
)

// GasUnit is the metering unit for natural gas consumption.
type GasUnit string

const (
	GasCubicMeters GasUnit = "m3"
	GasTherms      GasUnit = "therm"
)

// FoodType is a food category with a known carbon intensity.
type FoodType string

const (
	FoodBeef       FoodType = "beef"
	FoodChicken    FoodType = "chicken"
	FoodVegetables FoodType = "vegetables"
	FoodLentils    FoodType = "lentils"
)

// TransportData describes a vehicle trip.
type TransportData struct {
	Distance   float64  `json:"distance"`   // km
	Efficiency float64  `json:"efficiency"` // km per liter
	FuelType   FuelType `json:"fuelType"`
}

// ElectricityData describes grid electricity consumption.
type ElectricityData struct {
	KWh float64 `json:"kWh"`
}

// GasData describes natural gas consumption.
type GasData struct {
	Amount float64 `json:"amount"`
	Unit   GasUnit `json:"unit"`
}

// FoodData describes food consumption.
type FoodData struct {
	FoodType FoodType `json:"foodType"`
	Grams    float64  `json:"grams"`
}

// TreeData describes planted trees.
type TreeData struct {
	Trees int `json:"trees"`
}

// Activity is a tagged union over the five activity categories. Exactly one
// payload field matching Type is expected to be set; inputs are validated
// upstream (positive quantities, known enum values) before they reach the
// calculator.
type Activity struct {
	Type ActivityType `json:"type"`
	Date time.Time    `json:"date"`

	Transport   *TransportData   `json:"transport,omitempty"`
	Electricity *ElectricityData `json:"electricity,omitempty"`
	Gas         *GasData         `json:"gas,omitempty"`
	Food        *FoodData        `json:"food,omitempty"`
	Tree        *TreeData        `json:"tree,omitempty"`
}

// EmissionResult is the computed carbon impact for a single activity.
// ActivityID is the activity timestamp in Unix milliseconds; the calculator
// has no persistence, so the timestamp doubles as an ephemeral identifier.
type EmissionResult struct {
	ActivityID   int64        `json:"activityId"`
	ActivityType ActivityType `json:"activityType"`
	Emissions    float64      `json:"emissions"` // kg CO2, negative = absorbed
	Details      string       `json:"details"`
}

// Emission factors. Kept as package-level tables rather than inline
// literals so the formulas stay auditable in one place.
var (
	// FuelFactors is kg CO2 emitted per liter of fuel burned.
	FuelFactors = map[FuelType]float64{
		FuelPetrol: 2.31,
		FuelDiesel: 2.68,
	}

	// GasFactors is kg CO2 per unit of natural gas consumed.
	GasFactors = map[GasUnit]float64{
		GasCubicMeters: 1.9,
		GasTherms:      5.3,
	}

	// FoodFactors is kg CO2 per gram of food produced.
	FoodFactors = map[FoodType]float64{
		FoodBeef:       0.025,
		FoodChicken:    0.0069,
		FoodVegetables: 0.002,
		FoodLentils:    0.0009,
	}
)

const (
	// ElectricityFactor is kg CO2 per kWh of grid electricity.
	ElectricityFactor = 0.5

	// TreeFactor is kg CO2 absorbed per tree per month (hence negative).
	TreeFactor = -1.75
)

// Calculate converts an activity into its carbon impact. It is total over
// every activity type: an unrecognized type (or a missing payload) yields a
// zero-emission result with a diagnostic detail string, never an error.
func Calculate(a Activity) EmissionResult {
	id := a.Date.UnixMilli()

	switch {
	case a.Type == ActivityTransport && a.Transport != nil:
		return transportEmissions(id, *a.Transport)
	case a.Type == ActivityElectricity && a.Electricity != nil:
		return electricityEmissions(id, *a.Electricity)
	case a.Type == ActivityGas && a.Gas != nil:
		return gasEmissions(id, *a.Gas)
	case a.Type == ActivityFood && a.Food != nil:
		return foodEmissions(id, *a.Food)
	case a.Type == ActivityTree && a.Tree != nil:
		return treeEmissions(id, *a.Tree)
	default:
		return EmissionResult{
			ActivityID:   id,
			ActivityType: "unknown",
			Emissions:    0,
			Details:      "Unknown activity type",
		}
	}
}

// Total sums the emissions of a batch of activities, returning the
// individual results alongside the signed net total.
func Total(activities []Activity) ([]EmissionResult, float64) {
	results := make([]EmissionResult, 0, len(activities))
	var net float64
	for _, a := range activities {
		r := Calculate(a)
		results = append(results, r)
		net += r.Emissions
	}
	return results, net
}

func transportEmissions(id int64, d TransportData) EmissionResult {
	liters := d.Distance / d.Efficiency
	return EmissionResult{
		ActivityID:   id,
		ActivityType: ActivityTransport,
		Emissions:    liters * FuelFactors[d.FuelType],
		Details:      fmt.Sprintf("%v km traveled using %s (%v km/l)", d.Distance, d.FuelType, d.Efficiency),
	}
}

func electricityEmissions(id int64, d ElectricityData) EmissionResult {
	return EmissionResult{
		ActivityID:   id,
		ActivityType: ActivityElectricity,
		Emissions:    d.KWh * ElectricityFactor,
		Details:      fmt.Sprintf("%v kWh of electricity consumed", d.KWh),
	}
}

func gasEmissions(id int64, d GasData) EmissionResult {
	return EmissionResult{
		ActivityID:   id,
		ActivityType: ActivityGas,
		Emissions:    d.Amount * GasFactors[d.Unit],
		Details:      fmt.Sprintf("%v %s of gas consumed", d.Amount, d.Unit),
	}
}

func foodEmissions(id int64, d FoodData) EmissionResult {
	return EmissionResult{
		ActivityID:   id,
		ActivityType: ActivityFood,
		Emissions:    d.Grams * FoodFactors[d.FoodType],
		Details:      fmt.Sprintf("%v grams of %s consumed", d.Grams, d.FoodType),
	}
}

func treeEmissions(id int64, d TreeData) EmissionResult {
	return EmissionResult{
		ActivityID:   id,
		ActivityType: ActivityTree,
		Emissions:    float64(d.Trees) * TreeFactor,
		Details:      fmt.Sprintf("%d trees planted", d.Trees),
	}
}
