package quote

// QuoteRequest carries the raw form values as the frontend sends them. Age
// stays a string on the wire; the rule set parses and range-checks it before
// anything is persisted.
type QuoteRequest struct {
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Age               string `json:"age"`
	Gender            string `json:"gender"`
	TobaccoUse        string `json:"tobaccoUse"`
	CoverageAmount    string `json:"coverageAmount"`
	BestTimeToContact string `json:"bestTimeToContact"`
	ZipCode           string `json:"zipCode"`
}

// StepInfo describes one form step for the frontend.
type StepInfo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Steps mirrors the three-step layout of the quote form.
var Steps = []StepInfo{
	{Title: "Basic Info", Description: "Tell us about yourself"},
	{Title: "Coverage Details", Description: "Customize your coverage"},
	{Title: "Contact Preferences", Description: "How should we reach you?"},
}
