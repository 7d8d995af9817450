package main

import (
	"fmt"

	"github.com/Shadykom/ealaani/mailer"
)

func buildEnquiryEmail(to string, e Enquiry, view BillboardView) mailer.Message {
	subject := fmt.Sprintf("New billboard enquiry %s - %s", e.PublicID, view.Title)

	phone := e.Phone
	if phone == "" {
		phone = "-"
	}

	html := fmt.Sprintf(`
		<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto; line-height: 1.6; color: #333;">
			<h2>New enquiry %s</h2>
			<p>A visitor asked about <strong>%s</strong> (%s).</p>
			<table style="border-collapse: collapse;">
				<tr><td style="padding: 4px 12px 4px 0; color: #666;">Name</td><td>%s</td></tr>
				<tr><td style="padding: 4px 12px 4px 0; color: #666;">Email</td><td>%s</td></tr>
				<tr><td style="padding: 4px 12px 4px 0; color: #666;">Phone</td><td>%s</td></tr>
			</table>
			<p style="white-space: pre-wrap; border-left: 3px solid #d32f2f; padding-left: 12px;">%s</p>
		</div>
	`, e.PublicID, view.Title, view.Location, e.Name, e.Email, phone, e.Message)

	text := fmt.Sprintf(
		"New enquiry %s\n\nBillboard: %s (%s)\nName: %s\nEmail: %s\nPhone: %s\n\n%s",
		e.PublicID, view.Title, view.Location, e.Name, e.Email, phone, e.Message,
	)

	return mailer.Message{
		To:      []string{to},
		ReplyTo: e.Email,
		Subject: subject,
		HTML:    html,
		Text:    text,
	}
}
