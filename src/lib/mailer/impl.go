package mailer

import (
	"log"
	"os"
	"strconv"

	"cems/src/lib"
	"cems/src/models"

	"gorm.io/gorm"
)

// Config is an explicit value assembled per use. Nothing holds a live
// client between sends, so settings updates take effect on the next send.
type Config struct {
	Server        string
	Port          int
	Username      string
	Password      string
	UseTLS        bool
	UseSSL        bool
	DefaultSender string
}

func (c Config) Enabled() bool {
	return c.Server != ""
}

const (
	KeyMailServer        = "MAIL_SERVER"
	KeyMailPort          = "MAIL_PORT"
	KeyMailUsername      = "MAIL_USERNAME"
	KeyMailPassword      = "MAIL_PASSWORD"
	KeyMailUseTLS        = "MAIL_USE_TLS"
	KeyMailUseSSL        = "MAIL_USE_SSL"
	KeyMailDefaultSender = "MAIL_DEFAULT_SENDER"
)

// LoadConfig reads SMTP settings from the settings table, falling back to
// env for any key without a row. A nil handle skips the table entirely.
func LoadConfig(tx *gorm.DB) Config {
	get := func(key string) string {
		if tx != nil {
			var setting models.Setting
			err := tx.Where(&models.Setting{Key: key}).First(&setting).Error
			if err == nil && setting.Value != "" {
				return setting.Value
			}
		}
		return os.Getenv(key)
	}
	port, err := strconv.Atoi(get(KeyMailPort))
	if err != nil {
		port = 587
	}
	return Config{
		Server:        get(KeyMailServer),
		Port:          port,
		Username:      get(KeyMailUsername),
		Password:      get(KeyMailPassword),
		UseTLS:        get(KeyMailUseTLS) == "true",
		UseSSL:        get(KeyMailUseSSL) == "true",
		DefaultSender: get(KeyMailDefaultSender),
	}
}

type Notifier struct {
	cfg Config
}

func New(cfg Config) *Notifier {
	return &Notifier{cfg: cfg}
}

// Send dispatches one message per recipient so a bad address cannot sink
// the rest of the batch. Zero recipients is a no-op. Returns false only
// when mail is not configured at all.
func (n *Notifier) Send(recipients []string, subject, body string, attachments ...string) bool {
	if !n.cfg.Enabled() {
		log.Println("[mailer] not configured, skipping send")
		return false
	}
	sender := n.cfg.DefaultSender
	if sender == "" {
		sender = n.cfg.Username
	}
	smtpCfg := lib.SMTPConfig{
		Host:     n.cfg.Server,
		Port:     n.cfg.Port,
		Username: n.cfg.Username,
		Password: n.cfg.Password,
		UseTLS:   n.cfg.UseTLS,
		UseSSL:   n.cfg.UseSSL,
	}
	for _, rcpt := range recipients {
		input := &lib.SendMailInput{
			From:        sender,
			To:          []string{rcpt},
			Subject:     subject,
			Body:        body,
			Attachments: attachments,
		}
		if err := lib.SendMail(smtpCfg, input); err != nil {
			log.Printf("[mailer] Failed to send to %s: %s\n", rcpt, err.Error())
		}
	}
	return true
}
