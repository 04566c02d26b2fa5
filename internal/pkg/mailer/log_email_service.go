package mailer

import "personal-notes-be/internal/pkg/logger"

// logEmailService writes the OTP to the server log instead of sending
// mail. Development stub only: the code ends up in the log, so it must
// never be selected in production-like deployments.
type logEmailService struct {
	logger logger.ILogger
}

func NewLogEmailService(l logger.ILogger) IEmailService {
	return &logEmailService{logger: l}
}

func (s *logEmailService) SendOTP(toEmail, otp string) error {
	s.logger.Info("Mailer", "OTP issued (SMTP not configured, logging instead)", map[string]interface{}{
		"to":  toEmail,
		"otp": otp,
	})
	return nil
}
