package email

// Provider определяет интерфейс для отправки email.
// Все вызовы best-effort: сбой отправки логируется вызывающим кодом
// и никогда не роняет основную операцию.
type Provider interface {
	// Send отправляет простое email сообщение
	Send(email *Email) error

	// SendTemplate отправляет email по именованному шаблону
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error

	// Validate проверяет конфигурацию провайдера
	Validate() error
}
