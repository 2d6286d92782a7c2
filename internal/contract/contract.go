package contract

import (
	"strconv"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusUploaded   Status = "uploaded"
	StatusProcessing Status = "processing"
	StatusProcessed  Status = "processed"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

// Terminal reports whether the backend is done with a contract in this status.
func (s Status) Terminal() bool {
	switch s {
	case StatusProcessed, StatusCompleted, StatusError:
		return true
	}

	return false
}

// Label is the human-readable badge text. Unknown statuses render as uploaded.
func (s Status) Label() string {
	switch s {
	case StatusProcessing:
		return "Processing"
	case StatusProcessed:
		return "Processed"
	case StatusCompleted:
		return "Completed"
	case StatusError:
		return "Error"
	}

	return "Uploaded"
}

// Contract mirrors the backend contract record. The client never mutates it.
type Contract struct {
	ID             int64               `json:"id"`
	ExternalID     string              `json:"external_id,omitempty"`
	CustomerName   string              `json:"customer_name,omitempty"`
	FileName       string              `json:"file_name,omitempty"`
	ContentType    string              `json:"content_type,omitempty"`
	TotalValue     decimal.NullDecimal `json:"total_value"`
	Currency       string              `json:"currency,omitempty"`
	StartDate      Date                `json:"start_date"`
	EndDate        Date                `json:"end_date"`
	Status         Status              `json:"status"`
	TimeSavedHours *float64            `json:"time_saved_hours,omitempty"`
	CreatedAt      Date                `json:"created_at"`
	UpdatedAt      Date                `json:"updated_at"`
}

// Ref returns the identifier used in contract-scoped paths: the external id
// when the backend assigned one, the numeric id otherwise.
func (c Contract) Ref() string {
	if c.ExternalID != "" {
		return c.ExternalID
	}

	return strconv.FormatInt(c.ID, 10)
}

// DisplayName picks the most useful label for lists.
func (c Contract) DisplayName() string {
	switch {
	case c.CustomerName != "":
		return c.CustomerName
	case c.FileName != "":
		return c.FileName
	}

	return "Contract " + c.Ref()
}

// ContractStatus is the payload of the status endpoint.
type ContractStatus struct {
	ContractID   string              `json:"contract_id"`
	Status       Status              `json:"status"`
	FileName     string              `json:"file_name,omitempty"`
	CustomerName string              `json:"customer_name,omitempty"`
	TotalValue   decimal.NullDecimal `json:"total_value"`
	Currency     string              `json:"currency,omitempty"`
	CreatedAt    Date                `json:"created_at"`
	UpdatedAt    Date                `json:"updated_at"`
}
