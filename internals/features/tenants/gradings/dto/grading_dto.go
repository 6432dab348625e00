package dto

import (
	"time"

	"github.com/google/uuid"

	"inkubator_backend/internals/features/tenants/gradings/model"
	regDTO "inkubator_backend/internals/features/tenants/registrations/dto"
)

type AssignLecturerRequest struct {
	LecturerID string `json:"lecturer_id" validate:"required,uuid"`
}

// GradeRequest skor 0..100 untuk delapan kriteria (pointer supaya 0 tetap dianggap diisi).
type GradeRequest struct {
	Background        *int    `json:"background" validate:"required,min=0,max=100"`
	NoblePurpose      *int    `json:"noble_purpose" validate:"required,min=0,max=100"`
	PotentialConsumer *int    `json:"potential_consumer" validate:"required,min=0,max=100"`
	InnovativeProduct *int    `json:"innovative_product" validate:"required,min=0,max=100"`
	MarketingStrategy *int    `json:"marketing_strategy" validate:"required,min=0,max=100"`
	Resources         *int    `json:"resources" validate:"required,min=0,max=100"`
	FinancialReport   *int    `json:"financial_report" validate:"required,min=0,max=100"`
	RAB               *int    `json:"rab" validate:"required,min=0,max=100"`
	Notes             *string `json:"notes" validate:"omitempty,max=2000"`
}

func (r GradeRequest) Scores() map[model.Criterion]int {
	get := func(p *int) int {
		if p == nil {
			return 0
		}
		return *p
	}
	return map[model.Criterion]int{
		model.CriterionBackground:        get(r.Background),
		model.CriterionNoblePurpose:      get(r.NoblePurpose),
		model.CriterionPotentialConsumer: get(r.PotentialConsumer),
		model.CriterionInnovativeProduct: get(r.InnovativeProduct),
		model.CriterionMarketingStrategy: get(r.MarketingStrategy),
		model.CriterionResources:         get(r.Resources),
		model.CriterionFinancialReport:   get(r.FinancialReport),
		model.CriterionRAB:               get(r.RAB),
	}
}

type GradingResponse struct {
	ID         uuid.UUID                    `json:"id"`
	TenantID   uuid.UUID                    `json:"tenant_id"`
	LecturerID uuid.UUID                    `json:"lecturer_id"`
	Scores     map[model.Criterion]int      `json:"scores"`
	TotalScore *float64                     `json:"total_score"`
	Notes      *string                      `json:"notes"`
	Graded     bool                         `json:"graded"`
	GradedAt   *time.Time                   `json:"graded_at"`
	Tenant     *regDTO.RegistrationResponse `json:"tenant,omitempty"`
}

func FromModel(g *model.TenantGradingModel) GradingResponse {
	resp := GradingResponse{
		ID:         g.ID,
		TenantID:   g.TenantID,
		LecturerID: g.LecturerID,
		Scores:     g.Scores(),
		TotalScore: g.TotalScore,
		Notes:      g.Notes,
		Graded:     g.Graded(),
		GradedAt:   g.GradedAt,
	}
	if g.Registration != nil {
		t := regDTO.FromModel(g.Registration)
		resp.Tenant = &t
	}
	return resp
}

// Weights bobot kriteria untuk ditampilkan di form penilaian.
func Weights() map[model.Criterion]int {
	out := make(map[model.Criterion]int, len(model.Criteria))
	for _, c := range model.Criteria {
		out[c] = c.Weight()
	}
	return out
}
