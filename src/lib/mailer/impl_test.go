package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigEnvFallback(t *testing.T) {
	t.Setenv(KeyMailServer, "smtp.campus.edu")
	t.Setenv(KeyMailPort, "2525")
	t.Setenv(KeyMailUsername, "events")
	t.Setenv(KeyMailUseTLS, "true")
	t.Setenv(KeyMailDefaultSender, "events@campus.edu")

	cfg := LoadConfig(nil)
	assert.Equal(t, "smtp.campus.edu", cfg.Server)
	assert.Equal(t, 2525, cfg.Port)
	assert.Equal(t, "events", cfg.Username)
	assert.True(t, cfg.UseTLS)
	assert.False(t, cfg.UseSSL)
	assert.Equal(t, "events@campus.edu", cfg.DefaultSender)
	assert.True(t, cfg.Enabled())
}

func TestLoadConfigDefaultsPort(t *testing.T) {
	t.Setenv(KeyMailServer, "smtp.campus.edu")
	t.Setenv(KeyMailPort, "")

	cfg := LoadConfig(nil)
	assert.Equal(t, 587, cfg.Port)
}

func TestSendSkipsWhenUnconfigured(t *testing.T) {
	n := New(Config{})
	sent := n.Send([]string{"someone@campus.edu"}, "subject", "body")
	assert.False(t, sent)
}

func TestSendZeroRecipientsIsNoop(t *testing.T) {
	n := New(Config{Server: "smtp.campus.edu", Port: 2525})
	sent := n.Send(nil, "subject", "body")
	assert.True(t, sent)
}
