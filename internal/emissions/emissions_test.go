package emissions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-9

func TestCalculateTransport(t *testing.T) {
	result := Calculate(Activity{
		Type: ActivityTransport,
		Date: time.Now(),
		Transport: &TransportData{
			Distance:   100,
			Efficiency: 20,
			FuelType:   FuelDiesel,
		},
	})

	assert.Equal(t, ActivityTransport, result.ActivityType)
	// (100 km / 20 km/l) = 5 liters * 2.68 kg/l
	assert.InDelta(t, 13.4, result.Emissions, tolerance)
	assert.Contains(t, result.Details, "diesel")
}

func TestCalculateTransportPetrol(t *testing.T) {
	result := Calculate(Activity{
		Type: ActivityTransport,
		Transport: &TransportData{
			Distance:   50,
			Efficiency: 10,
			FuelType:   FuelPetrol,
		},
	})

	assert.InDelta(t, 5*2.31, result.Emissions, tolerance)
}

func TestCalculateElectricity(t *testing.T) {
	result := Calculate(Activity{
		Type:        ActivityElectricity,
		Electricity: &ElectricityData{KWh: 120},
	})

	assert.Equal(t, ActivityElectricity, result.ActivityType)
	assert.InDelta(t, 60.0, result.Emissions, tolerance)
}

func TestCalculateGas(t *testing.T) {
	cases := []struct {
		name   string
		amount float64
		unit   GasUnit
		want   float64
	}{
		{"cubic meters", 10, GasCubicMeters, 19.0},
		{"therms", 10, GasTherms, 53.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Calculate(Activity{
				Type: ActivityGas,
				Gas:  &GasData{Amount: tc.amount, Unit: tc.unit},
			})
			assert.InDelta(t, tc.want, result.Emissions, tolerance)
		})
	}
}

func TestCalculateFood(t *testing.T) {
	cases := []struct {
		food  FoodType
		grams float64
		want  float64
	}{
		{FoodBeef, 500, 12.5},
		{FoodChicken, 1000, 6.9},
		{FoodVegetables, 1000, 2.0},
		{FoodLentils, 1000, 0.9},
	}

	for _, tc := range cases {
		t.Run(string(tc.food), func(t *testing.T) {
			result := Calculate(Activity{
				Type: ActivityFood,
				Food: &FoodData{FoodType: tc.food, Grams: tc.grams},
			})
			assert.InDelta(t, tc.want, result.Emissions, tolerance)
		})
	}
}

func TestCalculateTree(t *testing.T) {
	result := Calculate(Activity{
		Type: ActivityTree,
		Tree: &TreeData{Trees: 4},
	})

	assert.InDelta(t, -7.0, result.Emissions, tolerance)
}

func TestTreeEmissionsNeverPositive(t *testing.T) {
	for trees := 1; trees <= 100; trees++ {
		result := Calculate(Activity{Type: ActivityTree, Tree: &TreeData{Trees: trees}})
		assert.LessOrEqual(t, result.Emissions, 0.0, "trees=%d", trees)
	}
}

func TestCalculateUnknownType(t *testing.T) {
	result := Calculate(Activity{Type: "spaceflight"})

	assert.Equal(t, ActivityType("unknown"), result.ActivityType)
	assert.Zero(t, result.Emissions)
	assert.Equal(t, "Unknown activity type", result.Details)
}

func TestCalculateMissingPayload(t *testing.T) {
	// Tagged as transport but the payload is absent.
	result := Calculate(Activity{Type: ActivityTransport})

	assert.Equal(t, ActivityType("unknown"), result.ActivityType)
	assert.Zero(t, result.Emissions)
}

func TestActivityIDIsTimestamp(t *testing.T) {
	date := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	result := Calculate(Activity{Type: ActivityTree, Date: date, Tree: &TreeData{Trees: 1}})

	assert.Equal(t, date.UnixMilli(), result.ActivityID)
}

func TestTotal(t *testing.T) {
	activities := []Activity{
		{Type: ActivityElectricity, Electricity: &ElectricityData{KWh: 100}}, // +50
		{Type: ActivityTree, Tree: &TreeData{Trees: 4}},                      // -7
	}

	results, net := Total(activities)

	assert.Len(t, results, 2)
	assert.InDelta(t, 43.0, net, tolerance)
}

func TestTotalEmpty(t *testing.T) {
	results, net := Total(nil)

	assert.Empty(t, results)
	assert.Zero(t, net)
}
