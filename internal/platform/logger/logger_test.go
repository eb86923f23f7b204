package logger

import (
	"bytes"
	"context"
	"testing"

	kit "delivery-date-service/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{" WARN ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, c := range cases {
		if got := parseLevel(c.in); got != c.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestInitAndRequestFields(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "debug", Format: "json", Service: "svc-test", Writer: &buf})

	ctx := WithTenant(WithRequestID(context.Background(), "req-1"), "acme")
	C(ctx).Info().Msg("hello")
	out := buf.String()
	kit.MustContain(t, out, `"request_id":"req-1"`)
	kit.MustContain(t, out, `"tenant_id":"acme"`)
	kit.MustContain(t, out, `"service":"svc-test"`)

	buf.Reset()
	C(WithTenant(context.Background(), "")).Info().Msg("anonymous")
	if bytes.Contains(buf.Bytes(), []byte("tenant_id")) {
		t.Fatalf("empty tenant logged: %s", buf.String())
	}

	buf.Reset()
	Named("holiday").Warn().Msg("skip")
	kit.MustContain(t, buf.String(), `"component":"holiday"`)
}
