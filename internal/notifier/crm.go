package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"quotelinker/internal/domain"
)

// CRMClient upserts a contact in a HubSpot-compatible CRM. Failures here are
// never surfaced to the end user as blocking errors.
type CRMClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewCRMClient(apiKey, baseURL string) *CRMClient {
	return &CRMClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *CRMClient) Channel() string { return "crm" }

type crmContactRequest struct {
	Properties crmContactProperties `json:"properties"`
}

type crmContactProperties struct {
	FirstName              string `json:"firstname"`
	LastName               string `json:"lastname"`
	Email                  string `json:"email"`
	Phone                  string `json:"phone"`
	Age                    string `json:"age"`
	Gender                 string `json:"gender"`
	TobaccoUse             string `json:"tobacco_use"`
	CoverageAmount         string `json:"coverage_amount"`
	PreferredContactMethod string `json:"preferred_contact_method"`
	Zip                    string `json:"zip"`
	LeadReference          string `json:"lead_reference"`
	LifecycleStage         string `json:"lifecyclestage"`
	LeadSource             string `json:"lead_source"`
	LeadStatus             string `json:"lead_status"`
}

type crmContactResponse struct {
	ID string `json:"id"`
}

// Notify creates the CRM contact with the full lead attribute set, keyed by
// email on the provider side.
func (c *CRMClient) Notify(ctx context.Context, leadID int64, lead *domain.Lead) (*Ack, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	payload, err := json.Marshal(crmContactRequest{
		Properties: crmContactProperties{
			FirstName:              lead.FirstName,
			LastName:               lead.LastName,
			Email:                  lead.Email,
			Phone:                  lead.Phone,
			Age:                    strconv.Itoa(lead.Age),
			Gender:                 string(lead.Gender),
			TobaccoUse:             string(lead.TobaccoUse),
			CoverageAmount:         lead.CoverageAmount,
			PreferredContactMethod: string(lead.BestTimeToContact),
			Zip:                    lead.ZipCode,
			LeadReference:          strconv.FormatInt(leadID, 10),
			LifecycleStage:         "lead",
			LeadSource:             "website",
			LeadStatus:             "new",
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/crm/v3/objects/contacts", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out crmContactResponse
	if err := json.Unmarshal(body, &out); err != nil || out.ID == "" {
		return nil, &Error{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return &Ack{ProviderID: out.ID}, nil
}
