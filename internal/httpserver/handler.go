package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/costcompass/costcompass/internal/domain"
	"github.com/costcompass/costcompass/internal/observability"
	"go.uber.org/zap"
)

// Handler handles HTTP requests.
type Handler struct {
	calculator    *domain.CostCalculator
	customization *domain.CostCustomizationEngine
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(
	calculator *domain.CostCalculator,
	customization *domain.CostCustomizationEngine,
) *Handler {
	return &Handler{
		calculator:    calculator,
		customization: customization,
	}
}

// HandleCalculate processes cost calculation requests.
func (h *Handler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.InfrastructureRequirements
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	logger := observability.FromContext(ctx)
	logger.Info("cost calculation request received",
		zap.Int("compute_specs", len(req.Compute)),
		zap.Float64("storage_gb", req.Storage.SizeGB),
	)

	result, err := h.calculator.CalculateCosts(ctx, &req)
	if err != nil {
		logger.Error("cost calculation failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logger.Info("cost calculation succeeded",
		zap.String("cheapest", result.Cheapest.Name),
		zap.Float64("potential_savings", result.PotentialSavings),
	)

	writeJSON(ctx, w, result)
}

// customizationRequest is the payload for cost customization requests.
type customizationRequest struct {
	BaseMonthlyCost float64                  `json:"baseMonthlyCost"`
	Customization   domain.CostCustomization `json:"customization"`
}

// HandleCustomization processes cost customization requests.
func (h *Handler) HandleCustomization(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req customizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.BaseMonthlyCost < 0 {
		http.Error(w, "baseMonthlyCost cannot be negative", http.StatusBadRequest)
		return
	}

	logger := observability.FromContext(ctx)
	logger.Info("cost customization request received",
		zap.Float64("base_cost", req.BaseMonthlyCost),
		zap.String("environment", req.Customization.Environment.Type),
		zap.String("pricing_model", req.Customization.PricingModel.Type),
	)

	result := h.customization.CalculateCustomizedCost(req.BaseMonthlyCost, req.Customization)
	writeJSON(ctx, w, result)
}

// HandleScheduleTemplates lists the preset running schedules.
func (h *Handler) HandleScheduleTemplates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(r.Context(), w, h.customization.ScheduleTemplates())
}

// HandleCacheClear drops every cached price quotation.
func (h *Handler) HandleCacheClear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.calculator.ClearCache(ctx); err != nil {
		observability.FromContext(ctx).Error("cache clear failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(ctx, w, map[string]string{"status": "cleared"})
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	}); err != nil {
		// Already written status, can't change it, just log.
		return
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		observability.FromContext(ctx).Error("failed to encode response", zap.Error(err))
	}
}
