package handler

import (
	"time"

	"sichrplace/internal/screening/service"
	id "sichrplace/pkg/domain"
)

// ScreeningResponse is the wire shape of a screening request with its
// decision, when one exists.
type ScreeningResponse struct {
	ID          id.ScreeningID    `json:"id"`
	TenantID    id.TenantID       `json:"tenantId"`
	ApartmentID id.ApartmentID    `json:"apartmentId"`
	MonthlyRent float64           `json:"monthlyRent"`
	Status      string            `json:"status"`
	Note        string            `json:"note,omitempty"`
	Reused      bool              `json:"reused,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Decision    *DecisionResponse `json:"decision,omitempty"`
}

// DecisionResponse is the wire shape of a completed decision.
type DecisionResponse struct {
	Approved         bool      `json:"approved"`
	Outcome          string    `json:"outcome"`
	MeetsRentRule    bool      `json:"meetsRentRule"`
	FinalRiskLevel   string    `json:"finalRiskLevel"`
	CreditValidUntil time.Time `json:"creditValidUntil"`
	Notes            string    `json:"notes,omitempty"`
	CompletedAt      time.Time `json:"completedAt"`
}

func fromResult(result *service.Result) ScreeningResponse {
	resp := ScreeningResponse{
		ID:          result.Request.ID,
		TenantID:    result.Request.TenantID,
		ApartmentID: result.Request.ApartmentID,
		MonthlyRent: result.Request.MonthlyRent,
		Status:      string(result.Request.Status),
		Note:        result.Request.Note,
		Reused:      result.Reused,
		CreatedAt:   result.Request.CreatedAt,
		UpdatedAt:   result.Request.UpdatedAt,
	}
	if result.Decision != nil {
		resp.Decision = &DecisionResponse{
			Approved:         result.Decision.Approved,
			Outcome:          string(result.Decision.Outcome),
			MeetsRentRule:    result.Decision.MeetsRentRule,
			FinalRiskLevel:   string(result.Decision.FinalRiskLevel),
			CreditValidUntil: result.Decision.CreditValidUntil,
			Notes:            result.Decision.Notes,
			CompletedAt:      result.Decision.CompletedAt,
		}
	}
	return resp
}
