package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"quotelinker/internal/domain"
)

// EmailClient sends the confirmation email through a Resend-compatible API.
type EmailClient struct {
	apiKey  string
	baseURL string
	from    string
	http    *http.Client
}

func NewEmailClient(apiKey, baseURL, from string) *EmailClient {
	return &EmailClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		from:    from,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *EmailClient) Channel() string { return "email" }

type emailRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type emailResponse struct {
	ID string `json:"id"`
}

// Notify sends the quote-request confirmation to the lead's address. The
// message references the lead id so the recipient has a record number.
func (c *EmailClient) Notify(ctx context.Context, leadID int64, lead *domain.Lead) (*Ack, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	payload, err := json.Marshal(emailRequest{
		From:    c.from,
		To:      lead.Email,
		Subject: "Your Life Insurance Quote Request",
		HTML:    confirmationBody(leadID, lead.FirstName),
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(payload))
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

	var out emailResponse
	if err := json.Unmarshal(body, &out); err != nil || out.ID == "" {
		return nil, &Error{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return &Ack{ProviderID: out.ID}, nil
}

func confirmationBody(leadID int64, firstName string) string {
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
			<h2 style="color: #0056b3;">Thank you for your quote request, %s!</h2>
			<p>We've received your life insurance quote request and our team is reviewing your information.</p>
			<p>One of our licensed insurance professionals will contact you shortly to discuss your options.</p>
			<div style="background-color: #F3F4F6; padding: 15px; border-radius: 5px; margin: 20px 0;">
				<p style="margin: 0; font-weight: bold;">Reference Number: %d</p>
				<p style="margin: 5px 0 0;">Please keep this for your records.</p>
			</div>
			<p>If you have any questions in the meantime, please reply to this email.</p>
			<p>Best regards,<br>The QuoteLinker Team</p>
		</div>`, firstName, leadID)
}
