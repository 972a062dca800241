package models

import "time"

// InquiryRequest represents a generic contact form submission. It shares
// the honeypot gating pattern with the review workflow but is otherwise
// independent of it.
type InquiryRequest struct {
	InquiryType string `json:"inquiry_type" binding:"required,max=50"`
	Name        string `json:"name" binding:"required,max=200"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"max=30"`
	Subject     string `json:"subject" binding:"max=200"`
	Message     string `json:"message" binding:"required,max=5000"`

	// Website is the honeypot field
	Website string `json:"website"`
}

// InquiryResponse represents the response after submitting an inquiry
type InquiryResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Inquiry is the persisted contact record
type Inquiry struct {
	ID          string    `json:"id"`
	InquiryType string    `json:"inquiryType"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       *string   `json:"phone,omitempty"`
	Subject     *string   `json:"subject,omitempty"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"createdAt"`
}
