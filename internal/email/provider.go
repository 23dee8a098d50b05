package email

// Provider определяет интерфейс для отправки писем сервиса
type Provider interface {
	// SendVerification отправляет письмо с ссылкой подтверждения email
	SendVerification(to string, link string) error

	// SendResetPassword отправляет письмо с ссылкой сброса пароля
	SendResetPassword(to string, link string) error

	// SendApproveJobNotice уведомляет соискателя об одобрении отклика.
	// message - текст решения владельца вакансии.
	SendApproveJobNotice(to string, jobTitle string, contactEmail string, message string) error

	// SendRejectJobNotice уведомляет соискателя об отклонении отклика
	SendRejectJobNotice(to string, jobTitle string, message string) error
}

// NoopProvider используется в тестах и в окружениях без SMTP
type NoopProvider struct {
	Sent []SentMessage
}

// SentMessage - запись об отправленном письме (для ассертов в тестах)
type SentMessage struct {
	To       string
	Template string
}

func NewNoopProvider() *NoopProvider {
	return &NoopProvider{}
}

func (p *NoopProvider) SendVerification(to, link string) error {
	p.Sent = append(p.Sent, SentMessage{To: to, Template: templateVerification})
	return nil
}

func (p *NoopProvider) SendResetPassword(to, link string) error {
	p.Sent = append(p.Sent, SentMessage{To: to, Template: templateResetPassword})
	return nil
}

func (p *NoopProvider) SendApproveJobNotice(to, jobTitle, contactEmail, message string) error {
	p.Sent = append(p.Sent, SentMessage{To: to, Template: templateApproveNotice})
	return nil
}

func (p *NoopProvider) SendRejectJobNotice(to, jobTitle, message string) error {
	p.Sent = append(p.Sent, SentMessage{To: to, Template: templateRejectNotice})
	return nil
}
