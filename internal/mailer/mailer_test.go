package mailer

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/teacherly/teacherly-backend/internal/config"
)

func TestSendDropsWhenUnconfigured(t *testing.T) {
	cases := map[string]*config.Config{
		"empty":        {},
		"no host":      {SMTPUser: "u", SMTPPassword: "p", EmailFromAddress: "noreply@x.com"},
		"no user":      {SMTPHost: "smtp.x.com", SMTPPassword: "p", EmailFromAddress: "noreply@x.com"},
		"no password":  {SMTPHost: "smtp.x.com", SMTPUser: "u", EmailFromAddress: "noreply@x.com"},
		"no from addr": {SMTPHost: "smtp.x.com", SMTPUser: "u", SMTPPassword: "p"},
	}

	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			m := NewSMTPMailer(cfg, zerolog.Nop())
			// Incomplete settings mean drop-and-log, not an error.
			require.NoError(t, m.Send(context.Background(), "subject", "to@x.com", "<p>hi</p>"))
		})
	}
}

func TestConfigured(t *testing.T) {
	cfg := &config.Config{
		SMTPHost:         "smtp.x.com",
		SMTPPort:         587,
		SMTPUser:         "u",
		SMTPPassword:     "p",
		EmailFromAddress: "noreply@x.com",
	}
	require.True(t, NewSMTPMailer(cfg, zerolog.Nop()).configured())
}
