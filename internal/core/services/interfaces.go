package services

// EmailSender dispatches transactional mail. The auth service only ever
// needs fire-and-forget sends.
type EmailSender interface {
	Send(to, subject, body string) error
}
