package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"

	"gopkg.in/gomail.v2"
)

const (
	defaultSMTPHost = "smtp.gmail.com"
	defaultSMTPPort = 465
	emailSubject    = "Quiz Answer"
)

var emailBodyTemplate = template.Must(template.New("email").Parse(`
	<html>
	<body>
		<h2>Quiz Question</h2>
		<p>{{.Question}}</p>

		<h2>Answer</h2>
		<p>{{.Answer}}</p>

		<hr>
		<p><em>Sent from quizsnap</em></p>
	</body>
	</html>
`))

// smtpAccount holds the account used to send quiz answers.
type smtpAccount struct {
	Host     string
	Port     int
	Address  string
	Password string
}

// senderAccount builds the sending account from the environment,
// falling back to the stored config. Missing credentials are reported
// synchronously so the sequence can abort before dialing.
func senderAccount() (*smtpAccount, error) {
	address := os.Getenv("EMAIL_ADDRESS")
	if address == "" {
		address = config.SenderEmail
	}
	password := os.Getenv("EMAIL_APP_PASSWORD")
	if password == "" {
		password = config.SenderPassword
	}

	if address == "" {
		return nil, fmt.Errorf("Sender email is not set")
	}
	if password == "" {
		return nil, fmt.Errorf("Email app password is not set")
	}

	account := &smtpAccount{
		Host:     defaultSMTPHost,
		Port:     defaultSMTPPort,
		Address:  address,
		Password: password,
	}
	if config.SMTPHost != "" {
		account.Host = config.SMTPHost
	}
	if config.SMTPPort != 0 {
		account.Port = config.SMTPPort
	}
	return account, nil
}

// buildQuizAnswerMessage assembles the HTML mail with the screenshot
// attached.
func buildQuizAnswerMessage(account *smtpAccount, recipients []*Recipient, questionText, answerText string, image []byte) (*gomail.Message, error) {
	var body bytes.Buffer
	err := emailBodyTemplate.Execute(&body, map[string]string{
		"Question": questionText,
		"Answer":   answerText,
	})
	if err != nil {
		return nil, fmt.Errorf("Error rendering email body: %v", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", account.Address)

	to := make([]string, len(recipients))
	for i, r := range recipients {
		to[i] = m.FormatAddress(r.Email, r.Name)
	}
	m.SetHeader("To", to...)
	m.SetHeader("Subject", emailSubject)
	m.SetBody("text/html", body.String())

	if len(image) > 0 {
		m.Attach("screenshot.png", gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(image)
			return err
		}))
	}
	return m, nil
}

// sendQuizAnswer delivers the question/answer mail over SMTP.
func sendQuizAnswer(account *smtpAccount, recipients []*Recipient, questionText, answerText string, image []byte) error {
	m, err := buildQuizAnswerMessage(account, recipients, questionText, answerText, image)
	if err != nil {
		return err
	}

	d := gomail.NewDialer(account.Host, account.Port, account.Address, account.Password)
	d.SSL = account.Port == 465

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("Error sending email: %v", err)
	}
	return nil
}
