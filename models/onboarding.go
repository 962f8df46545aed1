package models

// TOMStep is one Technical Onboarding Meeting setup step.
type TOMStep struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Prompt      string   `json:"prompt"`
	ManualSteps []string `json:"manualSteps"`
	Completed   bool     `json:"completed"`
	Flagged     bool     `json:"flagged"`
}

// TOMChecklist is the TOM view for a session.
type TOMChecklist struct {
	Steps     []TOMStep `json:"steps"`
	Completed int       `json:"completed"`
	Total     int       `json:"total"`
}

// Asset is a file the client hands over before onboarding.
type Asset struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Required bool   `json:"required"`
	Provided bool   `json:"provided"`
}

// AssetChecklist reports asset collection progress.
type AssetChecklist struct {
	Assets           []Asset `json:"assets"`
	RequiredComplete bool    `json:"requiredComplete"`
}

// EmailDraft is generated email copy.
type EmailDraft struct {
	Type      string `json:"type"`
	Content   string `json:"content"`
	Generated bool   `json:"generated"`
}
