// Package rma holds the data entities shared across the RMA pipeline.
package rma

import "time"

// PhoneUnknown is the sentinel written when the directory has no phone on
// file for a contact.
const PhoneUnknown = "unknown"

// Contact is the normalized customer record assembled from one directory
// fetch pass. Fields are overwritten wholesale on each fetch, never merged.
type Contact struct {
	ExternalID     string `json:"externalId,omitempty"`
	OrganizationID int64  `json:"organizationId,omitempty"`
	Name           string `json:"name,omitempty"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	Company        string `json:"company,omitempty"`

	// Structured address, populated only when the organization details blob
	// had enough comma-separated segments. Best effort, not authoritative.
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
}

// Request carries the record-specific fields of a return. All free-form
// strings; the register does not validate beyond presence.
type Request struct {
	Category        string `json:"category,omitempty"`
	Complaint       string `json:"complaint,omitempty"`
	Reply           string `json:"reply,omitempty"`
	Condition       string `json:"condition,omitempty"`
	Product         string `json:"product,omitempty"`
	Status          string `json:"status,omitempty"`
	Decontamination string `json:"decontamination,omitempty"`
	SerialNumber    string `json:"serialNumber,omitempty"`
}

// Issued is one persisted row of the register: the allocated number plus a
// snapshot of the contact and request. Immutable once persisted.
type Issued struct {
	Number   int       `json:"number"`
	Contact  Contact   `json:"contact"`
	Request  Request   `json:"request"`
	IssuedAt time.Time `json:"issuedAt"`
}
