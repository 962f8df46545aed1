package models

// ContactInput upserts a CRM contact.
type ContactInput struct {
	LocationID   string
	Email        string
	Name         string
	Phone        string
	CompanyName  string
	CustomFields map[string]string
}

// Message is an outbound CRM conversation message.
type Message struct {
	LocationID string
	ContactID  string
	Type       string
	Subject    string
	HTML       string
}

// MessageTypeEmail sends the message as email.
const MessageTypeEmail = "Email"

// Opportunity is a CRM pipeline deal.
type Opportunity struct {
	PipelineID      string
	LocationID      string
	Name            string
	PipelineStageID string
	Status          string
	ContactID       string
	MonetaryValue   float64
	AssignedTo      string
}

// BusinessDetails is the seller shown on CRM invoices.
type BusinessDetails struct {
	Name    string
	Phone   string
	Address string
	Website string
}

// InvoiceSchedule is a monthly recurring CRM invoice.
type InvoiceSchedule struct {
	LocationID   string
	Name         string
	Contact      ClientInfo
	ContactID    string
	StartDate    string
	StartTime    string
	Currency     string
	ItemName     string
	ItemDesc     string
	Amount       float64
	Business     BusinessDetails
	NumberPrefix string
}
