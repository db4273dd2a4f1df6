package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ecomate/carbon-server/internal/emissions"
	"go.uber.org/zap"
)

// CalculatorHandler exposes the standalone carbon footprint calculator.
// Nothing here touches storage; activities live only in the client session.
type CalculatorHandler struct {
	logger *zap.SugaredLogger
}

// NewCalculatorHandler creates a new calculator handler
func NewCalculatorHandler(logger *zap.SugaredLogger) *CalculatorHandler {
	return &CalculatorHandler{logger: logger}
}

// Calculate handles POST /api/v1/calculator/emissions
func (h *CalculatorHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var activity emissions.Activity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validateActivity(activity); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, emissions.Calculate(activity))
}

// CalculateBatch handles POST /api/v1/calculator/emissions/batch
func (h *CalculatorHandler) CalculateBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Activities []emissions.Activity `json:"activities"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	for i, activity := range req.Activities {
		if err := validateActivity(activity); err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("activity %d: %v", i, err))
			return
		}
	}

	results, net := emissions.Total(req.Activities)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"results":        results,
		"totalEmissions": net,
	})
}

// validateActivity enforces the calculator's preconditions (positive
// quantities, known enum values) so the pure calculator never sees invalid
// numbers. Activities tagged with an unrecognized type pass through: the
// calculator reports those as zero-emission unknowns by contract.
func validateActivity(a emissions.Activity) error {
	switch a.Type {
	case emissions.ActivityTransport:
		if a.Transport == nil {
			return fmt.Errorf("transport payload is required")
		}
		if a.Transport.Distance <= 0 {
			return fmt.Errorf("distance must be positive")
		}
		if a.Transport.Efficiency <= 0 {
			return fmt.Errorf("efficiency must be positive")
		}
		if _, ok := emissions.FuelFactors[a.Transport.FuelType]; !ok {
			return fmt.Errorf("unknown fuel type %q", a.Transport.FuelType)
		}
	case emissions.ActivityElectricity:
		if a.Electricity == nil {
			return fmt.Errorf("electricity payload is required")
		}
		if a.Electricity.KWh <= 0 {
			return fmt.Errorf("kWh must be positive")
		}
	case emissions.ActivityGas:
		if a.Gas == nil {
			return fmt.Errorf("gas payload is required")
		}
		if a.Gas.Amount <= 0 {
			return fmt.Errorf("gas amount must be positive")
		}
		if _, ok := emissions.GasFactors[a.Gas.Unit]; !ok {
			return fmt.Errorf("unknown gas unit %q", a.Gas.Unit)
		}
	case emissions.ActivityFood:
		if a.Food == nil {
			return fmt.Errorf("food payload is required")
		}
		if a.Food.Grams <= 0 {
			return fmt.Errorf("grams must be positive")
		}
		if _, ok := emissions.FoodFactors[a.Food.FoodType]; !ok {
			return fmt.Errorf("unknown food type %q", a.Food.FoodType)
		}
	case emissions.ActivityTree:
		if a.Tree == nil {
			return fmt.Errorf("tree payload is required")
		}
		if a.Tree.Trees <= 0 {
			return fmt.Errorf("tree count must be positive")
		}
	}
	return nil
}
