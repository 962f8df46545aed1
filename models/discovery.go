package models

import "time"

// QuestionType controls how the wizard front end renders a question.
type QuestionType string

const (
	QuestionSelect   QuestionType = "select"
	QuestionEmail    QuestionType = "email"
	QuestionTel      QuestionType = "tel"
	QuestionText     QuestionType = "text"
	QuestionTextarea QuestionType = "textarea"
	QuestionRadio    QuestionType = "radio"
	QuestionCheckbox QuestionType = "checkbox"
)

// Question is one scripted discovery question.
type Question struct {
	ID          string       `json:"id"`
	Type        QuestionType `json:"type"`
	Label       string       `json:"label"`
	Required    bool         `json:"required"`
	Options     []string     `json:"options,omitempty"`
	AllowCustom bool         `json:"allowCustom,omitempty"`
}

// IsMulti reports whether the question takes a list of choices.
func (q Question) IsMulti() bool {
	return q.Type == QuestionCheckbox
}

// Stage groups the questions of one conversation phase.
type Stage struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	Icon      string     `json:"icon"`
	Questions []Question `json:"questions"`
}

// DiscoverySession is the server-side state of one wizard run.
type DiscoverySession struct {
	ID               string             `json:"id"`
	Stage            int                `json:"stage"`
	Question         int                `json:"question"`
	Answers          AnswerSet          `json:"answers"`
	PackageReady     bool               `json:"packageReady"`
	SelectedServices []string           `json:"selectedServices"`
	Proposal         *ProposalTerms     `json:"proposal,omitempty"`
	Signature        *Signature         `json:"signature,omitempty"`
	TOMSteps         map[int]StepStatus `json:"tomSteps,omitempty"`
	Assets           map[string]bool    `json:"assets,omitempty"`
	Checkout         *CheckoutResult    `json:"checkout,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

// ProposalTerms are the negotiated terms priced for a session.
type ProposalTerms struct {
	// ServiceIDs is the selection the terms were priced for.
	ServiceIDs      []string         `json:"serviceIds"`
	DiscountPercent float64          `json:"discountPercent"`
	WaiveSetupFees  bool             `json:"waiveSetupFees"`
	Pricing         PricingBreakdown `json:"pricing"`
}

// Signature references the client's stored e-signature image.
type Signature struct {
	URL      string    `json:"url"`
	PublicID string    `json:"publicId"`
	SignedAt time.Time `json:"signedAt"`
}

// StepStatus tracks a TOM checklist step.
type StepStatus struct {
	Completed bool `json:"completed"`
	Flagged   bool `json:"flagged"`
}

// WizardView is what the front end renders for the current position.
type WizardView struct {
	SessionID      string    `json:"sessionId"`
	StageIndex     int       `json:"stageIndex"`
	StageTitle     string    `json:"stageTitle"`
	StageIcon      string    `json:"stageIcon"`
	StageCount     int       `json:"stageCount"`
	QuestionIndex  int       `json:"questionIndex"`
	QuestionCount  int       `json:"questionCount"`
	Question       Question  `json:"question"`
	Progress       float64   `json:"progress"`
	CanAdvance     bool      `json:"canAdvance"`
	CanGoBack      bool      `json:"canGoBack"`
	IsLastQuestion bool      `json:"isLastQuestion"`
	PackageReady   bool      `json:"packageReady"`
	Answers        AnswerSet `json:"answers"`
}
