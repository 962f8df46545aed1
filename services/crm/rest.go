package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"salesnav/models"
)

// APIError carries a non-2xx CRM response.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("crm responded %d: %s", e.Status, e.Body)
}

// RESTClient is a bearer-token client for the versioned LeadConnector API.
type RESTClient struct {
	baseURL    string
	apiKey     string
	apiVersion string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewRESTClient(baseURL, apiKey, apiVersion string, timeout time.Duration, logger *zap.Logger) *RESTClient {
	return &RESTClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		apiVersion: apiVersion,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type customField struct {
	Key        string `json:"key"`
	FieldValue string `json:"field_value"`
}

type upsertContactBody struct {
	LocationID   string        `json:"locationId"`
	Email        string        `json:"email"`
	Name         string        `json:"name"`
	Phone        string        `json:"phone,omitempty"`
	CompanyName  string        `json:"companyName,omitempty"`
	CustomFields []customField `json:"customFields,omitempty"`
}

type upsertContactResponse struct {
	Contact struct {
		ID string `json:"id"`
	} `json:"contact"`
}

// UpsertContact creates or updates a contact by email and returns its id.
func (c *RESTClient) UpsertContact(ctx context.Context, in models.ContactInput) (string, error) {
	body := upsertContactBody{
		LocationID:  in.LocationID,
		Email:       in.Email,
		Name:        in.Name,
		Phone:       in.Phone,
		CompanyName: in.CompanyName,
	}
	for k, v := range in.CustomFields {
		body.CustomFields = append(body.CustomFields, customField{Key: k, FieldValue: v})
	}
	var out upsertContactResponse
	if err := c.post(ctx, "/contacts/upsert", body, &out); err != nil {
		return "", fmt.Errorf("upsert contact: %w", err)
	}
	if out.Contact.ID == "" {
		return "", fmt.Errorf("upsert contact: response carried no contact id")
	}
	return out.Contact.ID, nil
}

type messageBody struct {
	Type      string `json:"type"`
	ContactID string `json:"contactId"`
	Subject   string `json:"subject"`
	HTML      string `json:"html"`
}

// SendMessage sends an email through the contact's conversation.
func (c *RESTClient) SendMessage(ctx context.Context, msg models.Message) error {
	body := messageBody{Type: msg.Type, ContactID: msg.ContactID, Subject: msg.Subject, HTML: msg.HTML}
	if err := c.post(ctx, "/conversations/messages", body, nil); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

type opportunityBody struct {
	PipelineID      string        `json:"pipelineId"`
	LocationID      string        `json:"locationId"`
	Name            string        `json:"name"`
	PipelineStageID string        `json:"pipelineStageId"`
	Status          string        `json:"status"`
	ContactID       string        `json:"contactId"`
	MonetaryValue   float64       `json:"monetaryValue"`
	AssignedTo      string        `json:"assignedTo"`
	CustomFields    []customField `json:"customFields"`
}

type opportunityResponse struct {
	Opportunity struct {
		ID string `json:"id"`
	} `json:"opportunity"`
}

// CreateOpportunity opens a deal in the given pipeline stage.
func (c *RESTClient) CreateOpportunity(ctx context.Context, o models.Opportunity) (string, error) {
	body := opportunityBody{
		PipelineID:      o.PipelineID,
		LocationID:      o.LocationID,
		Name:            o.Name,
		PipelineStageID: o.PipelineStageID,
		Status:          o.Status,
		ContactID:       o.ContactID,
		MonetaryValue:   o.MonetaryValue,
		AssignedTo:      o.AssignedTo,
		CustomFields:    []customField{},
	}
	var out opportunityResponse
	if err := c.post(ctx, "/opportunities/", body, &out); err != nil {
		return "", fmt.Errorf("create opportunity: %w", err)
	}
	return out.Opportunity.ID, nil
}

type invoiceContact struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNo     string `json:"phoneNo"`
	CompanyName string `json:"companyName"`
}

type rrule struct {
	IntervalType string `json:"intervalType"`
	Interval     int    `json:"interval"`
	StartDate    string `json:"startDate"`
	StartTime    string `json:"startTime"`
	EndType      string `json:"endType"`
}

type invoiceBusiness struct {
	Name    string `json:"name"`
	PhoneNo string `json:"phoneNo"`
	Address string `json:"address"`
	Website string `json:"website"`
}

type invoiceItem struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Amount      float64       `json:"amount"`
	Qty         int           `json:"qty"`
	Type        string        `json:"type"`
	Taxes       []interface{} `json:"taxes"`
}

type invoiceDiscount struct {
	Value float64 `json:"value"`
	Type  string  `json:"type"`
}

type invoiceScheduleBody struct {
	AltID          string         `json:"altId"`
	AltType        string         `json:"altType"`
	Name           string         `json:"name"`
	LiveMode       bool           `json:"liveMode"`
	ContactDetails invoiceContact `json:"contactDetails"`
	Schedule       struct {
		RRule rrule `json:"rrule"`
	} `json:"schedule"`
	BusinessDetails       invoiceBusiness `json:"businessDetails"`
	Currency              string          `json:"currency"`
	Items                 []invoiceItem   `json:"items"`
	AutomaticTaxesEnabled bool            `json:"automaticTaxesEnabled"`
	Discount              invoiceDiscount `json:"discount"`
	Title                 string          `json:"title"`
	TermsNotes            string          `json:"termsNotes"`
	InvoiceNumberPrefix   string          `json:"invoiceNumberPrefix"`
}

type invoiceScheduleResponse struct {
	ID string `json:"_id"`
}

// CreateInvoiceSchedule sets up a never-ending monthly invoice for the contact.
func (c *RESTClient) CreateInvoiceSchedule(ctx context.Context, s models.InvoiceSchedule) (string, error) {
	body := invoiceScheduleBody{
		AltID:    s.LocationID,
		AltType:  "location",
		Name:     s.Name,
		LiveMode: true,
		ContactDetails: invoiceContact{
			ID:          s.ContactID,
			Name:        s.Contact.Name,
			Email:       s.Contact.Email,
			PhoneNo:     s.Contact.Phone,
			CompanyName: s.Contact.BusinessName,
		},
		BusinessDetails: invoiceBusiness{
			Name:    s.Business.Name,
			PhoneNo: s.Business.Phone,
			Address: s.Business.Address,
			Website: s.Business.Website,
		},
		Currency: s.Currency,
		Items: []invoiceItem{{
			Name:        s.ItemName,
			Description: s.ItemDesc,
			Amount:      s.Amount,
			Qty:         1,
			Type:        "one_time",
			Taxes:       []interface{}{},
		}},
		Discount:            invoiceDiscount{Value: 0, Type: "percentage"},
		Title:               "INVOICE",
		TermsNotes:          "Thank you for your business!",
		InvoiceNumberPrefix: s.NumberPrefix,
	}
	body.Schedule.RRule = rrule{
		IntervalType: "monthly",
		Interval:     1,
		StartDate:    s.StartDate,
		StartTime:    s.StartTime,
		EndType:      "never",
	}
	var out invoiceScheduleResponse
	if err := c.post(ctx, "/invoices/schedule", body, &out); err != nil {
		return "", fmt.Errorf("create invoice schedule: %w", err)
	}
	return out.ID, nil
}

func (c *RESTClient) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Version", c.apiVersion)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Body: string(raw)}
	}
	c.logger.Debug("CRM call succeeded", zap.String("path", path), zap.Int("status", resp.StatusCode))
	if out == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}
