package dto

// SendEmailRequest — context is the template data; unknown template
// names are rejected by the mailer with a 400.
type SendEmailRequest struct {
	Email    string                 `json:"email" validate:"required,email"`
	Template string                 `json:"template" validate:"required"`
	Context  map[string]interface{} `json:"context"`
	Subject  string                 `json:"subject"`
}
