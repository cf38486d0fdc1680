package stub

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
)

// Provider does not deliver anything. It logs the code and, when echo is on,
// hands it back so the login screen can show it.
type Provider struct {
	echo bool
	sent atomic.Int64
}

func New(echo bool) *Provider {
	return &Provider{echo: echo}
}

func (p *Provider) Name() string { return "stub" }

func (p *Provider) Send(ctx context.Context, phone, code string) (reference, echo string, err error) {
	n := p.sent.Add(1)
	reference = fmt.Sprintf("stub-%d", n)
	slog.InfoContext(ctx, "otp issued", "action", "otp.send", "provider", p.Name(), "phone", phone, "reference", reference)
	if p.echo {
		slog.DebugContext(ctx, "otp code", "phone", phone, "code", code)
		return reference, code, nil
	}
	return reference, "", nil
}
