package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendBookingRequest(ctx context.Context, ownerEmail, borrowerName, productTitle string) error {
	subject := fmt.Sprintf("New booking request: %s", productTitle)
	body := fmt.Sprintf("%s wants to rent your %s.\n\nOpen your dashboard to approve or reject the request.", borrowerName, productTitle)
	return s.send(ownerEmail, subject, body)
}

func (s *emailService) SendBookingDecision(ctx context.Context, borrowerEmail, productTitle string, approved bool) error {
	verdict := "approved"
	if !approved {
		verdict = "rejected"
	}
	subject := fmt.Sprintf("Booking %s: %s", verdict, productTitle)
	body := fmt.Sprintf("Your booking for %s was %s by the owner.", productTitle, verdict)
	return s.send(borrowerEmail, subject, body)
}

func (s *emailService) SendExtensionRequest(ctx context.Context, ownerEmail, borrowerName, productTitle, requestedEndDate string) error {
	subject := fmt.Sprintf("Extension requested: %s", productTitle)
	body := fmt.Sprintf("%s asked to keep %s until %s.\n\nOpen your dashboard to approve or reject the extension.", borrowerName, productTitle, requestedEndDate)
	return s.send(ownerEmail, subject, body)
}

func (s *emailService) SendExtensionDecision(ctx context.Context, borrowerEmail, productTitle string, approved bool) error {
	verdict := "approved"
	if !approved {
		verdict = "rejected"
	}
	subject := fmt.Sprintf("Extension %s: %s", verdict, productTitle)
	body := fmt.Sprintf("Your extension request for %s was %s.", productTitle, verdict)
	return s.send(borrowerEmail, subject, body)
}

func (s *emailService) SendRentalCompleted(ctx context.Context, borrowerEmail, productTitle string, totalPaise int64) error {
	subject := fmt.Sprintf("Rental complete: %s", productTitle)
	body := fmt.Sprintf("Your rental of %s is complete. Total charged: ₹%d.%02d.", productTitle, totalPaise/100, totalPaise%100)
	return s.send(borrowerEmail, subject, body)
}
