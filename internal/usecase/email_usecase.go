package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/city-tourism-backend/internal/usecase/dto"
)

type EmailUseCase struct {
	mailer Mailer
	logger *zap.Logger
}

func NewEmailUseCase(mailer Mailer, logger *zap.Logger) *EmailUseCase {
	return &EmailUseCase{mailer: mailer, logger: logger}
}

// Send renders the named template with the request context and
// dispatches it over SMTP.
func (uc *EmailUseCase) Send(ctx context.Context, req dto.SendEmailRequest) error {
	subject := req.Subject
	if subject == "" {
		subject = "City tourism notification"
	}

	if err := uc.mailer.Send(ctx, req.Email, req.Template, req.Context, subject); err != nil {
		uc.logger.Error("Failed to send email",
			zap.String("to", req.Email),
			zap.String("template", req.Template),
			zap.Error(err))
		return err
	}

	uc.logger.Info("Email sent", zap.String("to", req.Email), zap.String("template", req.Template))
	return nil
}
