package contract

import (
	"github.com/shopspring/decimal"
)

type AuditMemo struct {
	ID         int64  `json:"id"`
	ContractID int64  `json:"contract_id"`
	MemoText   string `json:"memo_text,omitempty"`
	CreatedAt  Date   `json:"created_at"`
}

// StructuredAuditMemo is the sectioned ASC 606 memo document.
type StructuredAuditMemo struct {
	Metadata             MemoMetadata         `json:"metadata"`
	Purpose              TitledText           `json:"purpose"`
	ContractSummary      ContractSummary      `json:"contract_summary"`
	Steps                ASC606Steps          `json:"asc606_steps"`
	RevenueSchedule      ScheduleRollup       `json:"revenue_schedule"`
	AccountingAssessment AccountingAssessment `json:"accounting_assessment"`
	RiskAssessment       RiskAssessment       `json:"risk_assessment"`
	Conclusion           Conclusion           `json:"conclusion"`
}

type MemoMetadata struct {
	Standard     string `json:"standard"`
	ContractID   string `json:"contract_id"`
	AnalysisDate string `json:"analysis_date"`
	PreparedBy   string `json:"prepared_by"`
	Version      string `json:"version,omitempty"`
}

type TitledText struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ContractSummary struct {
	Title              string `json:"title"`
	Provider           string `json:"provider"`
	Customer           string `json:"customer"`
	ContractID         string `json:"contract_id"`
	EffectiveDate      string `json:"effective_date"`
	EndDate            string `json:"end_date"`
	TotalConsideration string `json:"total_consideration"`
	Currency           string `json:"currency"`
	Description        string `json:"description"`
}

type ASC606Steps struct {
	Title       string          `json:"title"`
	Contract    ContractStep    `json:"step1_contract"`
	Obligations ObligationsStep `json:"step2_obligations"`
	Price       PriceStep       `json:"step3_price"`
	Allocation  AllocationStep  `json:"step4_allocation"`
	Recognition RecognitionStep `json:"step5_recognition"`
}

type ContractStep struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Criteria    []string `json:"criteria"`
}

type ObligationsStep struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Obligations []MemoObligation `json:"obligations"`
}

type MemoObligation struct {
	Name               string          `json:"name"`
	Type               string          `json:"type"`
	RecognitionMethod  string          `json:"recognition_method"`
	SSP                decimal.Decimal `json:"ssp"`
	AllocatedValue     decimal.Decimal `json:"allocated_value"`
	RecognitionTrigger string          `json:"recognition_trigger"`
}

type NamedNote struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type PriceStep struct {
	Title                  string      `json:"title"`
	Description            string      `json:"description"`
	TotalPrice             string      `json:"total_price"`
	VariableConsiderations []NamedNote `json:"variable_considerations"`
	Discounts              []NamedNote `json:"discounts"`
}

type AllocationStep struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Allocations []Allocation `json:"allocations"`
}

type Allocation struct {
	Obligation      string          `json:"obligation"`
	SSP             decimal.Decimal `json:"ssp"`
	AllocatedAmount decimal.Decimal `json:"allocated_amount"`
	Percentage      float64         `json:"percentage"`
}

type RecognitionStep struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Details     []RecognitionDetail `json:"recognition_details"`
}

type RecognitionDetail struct {
	Obligation string `json:"obligation"`
	Method     string `json:"method"`
	Timing     string `json:"timing"`
	Trigger    string `json:"trigger"`
}

type ScheduleRollup struct {
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	TotalEntries int            `json:"total_entries"`
	Periods      []PeriodRollup `json:"periods"`
	TotalPeriods int            `json:"total_periods"`
}

type PeriodRollup struct {
	Period      string          `json:"period"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Methods     []string        `json:"methods"`
	Statuses    []string        `json:"statuses"`
}

type AccountingAssessment struct {
	Title      string     `json:"title"`
	Compliance TitledList `json:"compliance"`
	Judgments  TitledList `json:"judgments"`
}

type TitledList struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

type RiskAssessment struct {
	Title string     `json:"title"`
	Areas []RiskArea `json:"areas"`
}

type RiskArea struct {
	Area       string `json:"area"`
	Level      string `json:"level"`
	Mitigation string `json:"mitigation"`
}

type Conclusion struct {
	Title             string `json:"title"`
	Summary           string `json:"summary"`
	TotalRevenue      string `json:"total_revenue"`
	RecognitionPeriod string `json:"recognition_period"`
	MemoDate          string `json:"memo_date"`
	PreparedBy        string `json:"prepared_by"`
	ReviewedBy        string `json:"reviewed_by"`
}
