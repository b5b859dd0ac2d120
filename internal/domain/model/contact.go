package model

import "time"

// ContactRequest is a message left through the contact form.
type ContactRequest struct {
	ID             string    `bson:"_id" json:"id" example:"CR_01J9Z3K8Q4W5E6R7T8Y9U0I1O2"`
	Name           string    `bson:"name" json:"name"`
	Email          string    `bson:"email" json:"email"`
	Phone          string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Message        string    `bson:"message" json:"message"`
	QuoteReference string    `bson:"quote_reference,omitempty" json:"quote_reference,omitempty"`
	Handled        bool      `bson:"handled" json:"handled"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}
