package mailer

import (
	"fmt"
	"math/rand"
	"net/smtp"

	"teamtrack/internal/config"
	"teamtrack/internal/logging"

	"github.com/sony/gobreaker"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer шлёт письма в фоне: запрос только кладёт письмо в очередь
// и никогда не ждёт и не падает из-за доставки.
type Mailer struct {
	cfg     *config.Config
	queue   chan Message
	breaker *gobreaker.CircuitBreaker
}

func New(cfg *config.Config) *Mailer {
	return &Mailer{
		cfg:   cfg,
		queue: make(chan Message, 64),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "smtp",
		}),
	}
}

// Start запускает фонового воркера доставки.
func (m *Mailer) Start() {
	go func() {
		for msg := range m.queue {
			if _, err := m.breaker.Execute(func() (interface{}, error) {
				return nil, m.send(msg)
			}); err != nil {
				logging.Logger.Warnf("failed to send mail to %s: %v", msg.To, err)
			}
		}
	}()
}

// Enqueue не блокирует: при переполненной очереди письмо теряем с warning-ом.
func (m *Mailer) Enqueue(msg Message) {
	select {
	case m.queue <- msg:
	default:
		logging.Logger.Warnf("mail queue full, dropping message to %s", msg.To)
	}
}

func (m *Mailer) send(msg Message) error {
	if m.cfg.MailHost == "" {
		return fmt.Errorf("mail host is not configured")
	}

	body := []byte("Subject: " + msg.Subject + "\r\n" +
		"From: " + m.cfg.MailSender + "\r\n" +
		"To: " + msg.To + "\r\n" +
		"Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n" +
		msg.Body + "\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.MailHost, m.cfg.MailPort)
	auth := smtp.PlainAuth("", m.cfg.MailUser, m.cfg.MailPass, m.cfg.MailHost)
	return smtp.SendMail(addr, auth, m.cfg.MailSender, []string{msg.To}, body)
}

// GenerateVerificationCode — случайный цифровой код заданной длины.
func GenerateVerificationCode(length int) string {
	const digits = "0123456789"
	code := make([]byte, length)
	for i := range code {
		code[i] = digits[rand.Intn(len(digits))]
	}
	return string(code)
}
