package domain

import "time"

type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadQualified LeadStatus = "qualified"
	LeadConverted LeadStatus = "converted"
	LeadRejected  LeadStatus = "rejected"
	LeadLost      LeadStatus = "lost"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type TobaccoUse string

const (
	TobaccoYes TobaccoUse = "yes"
	TobaccoNo  TobaccoUse = "no"
)

type ContactTime string

const (
	ContactMorning   ContactTime = "morning"
	ContactAfternoon ContactTime = "afternoon"
	ContactEvening   ContactTime = "evening"
)

// CoverageTiers lists the fixed coverage amounts offered on the quote form.
var CoverageTiers = []string{
	"$50,000",
	"$100,000",
	"$250,000",
	"$500,000",
	"$1,000,000",
}

// Lead is a submitted quote request. The ID is assigned by the persistence
// layer on create and is the reference key for all outbound notifications.
// A lead is never edited after submission; only its status moves.
type Lead struct {
	ID int64 `json:"id"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	Age               int         `json:"age"`
	Gender            Gender      `json:"gender"`
	TobaccoUse        TobaccoUse  `json:"tobacco_use"`
	CoverageAmount    string      `json:"coverage_amount"`
	BestTimeToContact ContactTime `json:"best_time_to_contact"`
	ZipCode           string      `json:"zip_code"`

	Status LeadStatus `json:"status"`
	Source string     `json:"source,omitempty"`

	IPAddress string `json:"-"`
	UserAgent string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName returns the lead's display name for outbound messages.
func (l *Lead) FullName() string {
	return l.FirstName + " " + l.LastName
}

// IsConverted returns true if the lead reached the terminal converted status.
func (l *Lead) IsConverted() bool {
	return l.Status == LeadConverted
}
