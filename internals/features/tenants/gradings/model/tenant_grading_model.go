// file: internals/features/tenants/gradings/model/tenant_grading_model.go
package model

import (
	"math"
	"time"

	"github.com/google/uuid"

	regModel "inkubator_backend/internals/features/tenants/registrations/model"
)

/* ======================================================
   Kriteria penilaian & bobot (total bobot = 100)
====================================================== */

type Criterion string

const (
	CriterionBackground        Criterion = "background"
	CriterionNoblePurpose      Criterion = "noble_purpose"
	CriterionPotentialConsumer Criterion = "potential_consumer"
	CriterionInnovativeProduct Criterion = "innovative_product"
	CriterionMarketingStrategy Criterion = "marketing_strategy"
	CriterionResources         Criterion = "resources"
	CriterionFinancialReport   Criterion = "financial_report"
	CriterionRAB               Criterion = "rab"
)

var Criteria = []Criterion{
	CriterionBackground,
	CriterionNoblePurpose,
	CriterionPotentialConsumer,
	CriterionInnovativeProduct,
	CriterionMarketingStrategy,
	CriterionResources,
	CriterionFinancialReport,
	CriterionRAB,
}

func (c Criterion) Weight() int {
	switch c {
	case CriterionBackground:
		return 5
	case CriterionNoblePurpose, CriterionPotentialConsumer, CriterionFinancialReport, CriterionRAB:
		return 10
	case CriterionMarketingStrategy, CriterionResources:
		return 15
	case CriterionInnovativeProduct:
		return 25
	}
	return 0
}

const (
	MinScore = 0
	MaxScore = 100
)

// ComputeTotal = Σ skor × bobot / 100, dibulatkan 2 desimal.
func ComputeTotal(scores map[Criterion]int) float64 {
	total := 0.0
	for _, c := range Criteria {
		total += float64(scores[c]*c.Weight()) / 100
	}
	return math.Round(total*100) / 100
}

/* ======================================================
   Model: tenant_gradings (1 penilaian per registrasi)
====================================================== */

type TenantGradingModel struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	TenantID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:tenant_id" json:"tenant_id"`
	LecturerID uuid.UUID `gorm:"type:uuid;not null;index;column:lecturer_id" json:"lecturer_id"`
	AssignedBy uuid.UUID `gorm:"type:uuid;not null;column:assigned_by" json:"assigned_by"`

	// skor 0..100, NULL = belum dinilai
	Background        *int `gorm:"check:background BETWEEN 0 AND 100;column:background" json:"background"`
	NoblePurpose      *int `gorm:"check:noble_purpose BETWEEN 0 AND 100;column:noble_purpose" json:"noble_purpose"`
	PotentialConsumer *int `gorm:"check:potential_consumer BETWEEN 0 AND 100;column:potential_consumer" json:"potential_consumer"`
	InnovativeProduct *int `gorm:"check:innovative_product BETWEEN 0 AND 100;column:innovative_product" json:"innovative_product"`
	MarketingStrategy *int `gorm:"check:marketing_strategy BETWEEN 0 AND 100;column:marketing_strategy" json:"marketing_strategy"`
	Resources         *int `gorm:"check:resources BETWEEN 0 AND 100;column:resources" json:"resources"`
	FinancialReport   *int `gorm:"check:financial_report BETWEEN 0 AND 100;column:financial_report" json:"financial_report"`
	RAB               *int `gorm:"check:rab BETWEEN 0 AND 100;column:rab" json:"rab"`

	TotalScore *float64   `gorm:"type:numeric(5,2);column:total_score" json:"total_score"`
	Notes      *string    `gorm:"type:text;column:notes" json:"notes"`
	GradedAt   *time.Time `gorm:"column:graded_at" json:"graded_at"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:updated_at" json:"updated_at"`

	Registration *regModel.TenantRegistrationModel `gorm:"foreignKey:TenantID;references:ID;constraint:OnDelete:CASCADE" json:"registration,omitempty"`
}

func (TenantGradingModel) TableName() string { return "tenant_gradings" }

func (g *TenantGradingModel) Graded() bool { return g.GradedAt != nil }

// Scores skor yang sudah terisi, per kriteria.
func (g *TenantGradingModel) Scores() map[Criterion]int {
	out := map[Criterion]int{}
	for c, p := range g.scoreFields() {
		if *p != nil {
			out[c] = **p
		}
	}
	return out
}

// SetScores menulis skor ke kolom lalu menghitung ulang total.
func (g *TenantGradingModel) SetScores(scores map[Criterion]int, at time.Time) {
	for c, p := range g.scoreFields() {
		v := scores[c]
		*p = &v
	}
	total := ComputeTotal(scores)
	g.TotalScore = &total
	g.GradedAt = &at
}

func (g *TenantGradingModel) scoreFields() map[Criterion]**int {
	return map[Criterion]**int{
		CriterionBackground:        &g.Background,
		CriterionNoblePurpose:      &g.NoblePurpose,
		CriterionPotentialConsumer: &g.PotentialConsumer,
		CriterionInnovativeProduct: &g.InnovativeProduct,
		CriterionMarketingStrategy: &g.MarketingStrategy,
		CriterionResources:         &g.Resources,
		CriterionFinancialReport:   &g.FinancialReport,
		CriterionRAB:               &g.RAB,
	}
}
