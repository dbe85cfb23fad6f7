package create

import (
	"context"
	"time"

	"rma-desk/internal/common/logger"
	"rma-desk/internal/rma"
)

// Input is the operator-supplied request for a new RMA record.
type Input struct {
	Email           string `json:"email"`
	Category        string `json:"category,omitempty"`
	Complaint       string `json:"complaint,omitempty"`
	Reply           string `json:"reply,omitempty"`
	Condition       string `json:"condition,omitempty"`
	Product         string `json:"product,omitempty"`
	Status          string `json:"status,omitempty"`
	Decontamination string `json:"decontamination,omitempty"`
	SerialNumber    string `json:"serialNumber,omitempty"`
}

// request snapshots the record-specific fields of the input.
func (in *Input) request() rma.Request {
	return rma.Request{
		Category:        in.Category,
		Complaint:       in.Complaint,
		Reply:           in.Reply,
		Condition:       in.Condition,
		Product:         in.Product,
		Status:          in.Status,
		Decontamination: in.Decontamination,
		SerialNumber:    in.SerialNumber,
	}
}

type Output struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Number    int       `json:"number,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Directory resolves customers and organization addresses.
type Directory interface {
	FindByEmail(ctx context.Context, email string) (*rma.Contact, error)
	OrganizationAddress(ctx context.Context, orgID int64) (name, details string, err error)
}

// Store appends issued records to the register.
type Store interface {
	Append(contact rma.Contact, req rma.Request) (*rma.Issued, error)
}

// Auditor records issued RMAs in the audit trail. Best effort after the
// workbook save.
type Auditor interface {
	RecordIssued(ctx context.Context, issued *rma.Issued, requestID string) error
}

// Notifier delivers the customer confirmation. Best effort after the
// workbook save.
type Notifier interface {
	SendIssued(ctx context.Context, issued *rma.Issued) error
}

// Renderer writes the printable RMA form and returns its path. Best effort
// after the workbook save.
type Renderer interface {
	Render(issued *rma.Issued) (string, error)
}

// ConfirmFunc is the human yes/no gate, injected so the pipeline itself
// stays headless. It receives the fully assembled record before any number
// is allocated or any row written.
type ConfirmFunc func(contact rma.Contact, req rma.Request) bool

type ServiceDependencies struct {
	Logger    logger.Logger
	Directory Directory
	Store     Store
	Confirm   ConfirmFunc

	// Optional side effects; nil disables them.
	Auditor  Auditor
	Notifier Notifier
	Renderer Renderer
}
