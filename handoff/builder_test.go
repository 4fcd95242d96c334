package handoff

import (
	"errors"
	"testing"
)

func TestShapeForBridgeHost(t *testing.T) {
	bridgeHosts := []string{"portal.partner.example"}

	if got := ShapeFor("https://portal.partner.example/billing", bridgeHosts); got != ShapeBridge {
		t.Fatalf("expected bridge shape, got %v", got)
	}
	if got := ShapeFor("https://PORTAL.PARTNER.EXAMPLE/billing", bridgeHosts); got != ShapeBridge {
		t.Fatalf("expected case-insensitive host match, got %v", got)
	}
	if got := ShapeFor("https://other.example/billing", bridgeHosts); got != ShapeDirect {
		t.Fatalf("expected direct shape, got %v", got)
	}
	if got := ShapeFor("https://portal.partner.example/billing", nil); got != ShapeDirect {
		t.Fatalf("expected direct shape with no bridge hosts, got %v", got)
	}
}

func TestShapeForIgnoresPorts(t *testing.T) {
	portedHosts := []string{"portal.partner.example:8443"}

	if got := ShapeFor("https://portal.partner.example/billing", portedHosts); got != ShapeBridge {
		t.Fatalf("expected ported config entry to match, got %v", got)
	}
	if got := ShapeFor("https://portal.partner.example:8443/billing", []string{"portal.partner.example"}); got != ShapeBridge {
		t.Fatalf("expected ported URL to match, got %v", got)
	}
	if got := ShapeFor("https://other.example/billing", portedHosts); got != ShapeDirect {
		t.Fatalf("expected direct shape, got %v", got)
	}
}

func TestBuildBridgeShape(t *testing.T) {
	got, err := Build(ShapeBridge, "https://portal.partner.example/account/billing?tab=invoices", "tok123")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	want := "https://portal.partner.example/sso-login?token=tok123&redirect=%2Faccount%2Fbilling%3Ftab%3Dinvoices"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestBuildBridgeShapeRootPath(t *testing.T) {
	got, err := Build(ShapeBridge, "https://portal.partner.example", "tok123")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	want := "https://portal.partner.example/sso-login?token=tok123&redirect=%2F"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestBuildDirectShapeWithQuery(t *testing.T) {
	got, err := Build(ShapeDirect, "https://app.example.com/start?plan=gold&ref=demo", "tok123")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// Existing parameters keep their order; the token is appended.
	want := "https://app.example.com/start?plan=gold&ref=demo&token=tok123"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestBuildDirectShapeWithoutQuery(t *testing.T) {
	got, err := Build(ShapeDirect, "https://app.example.com/start", "tok123")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	want := "https://app.example.com/start?token=tok123"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestBuildEscapesToken(t *testing.T) {
	got, err := Build(ShapeDirect, "https://app.example.com/start", "a b+c")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	want := "https://app.example.com/start?token=a+b%2Bc"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestBuildInvalidURL(t *testing.T) {
	for _, raw := range []string{"", "not a url", "/relative/only"} {
		if _, err := Build(ShapeDirect, raw, "tok123"); !errors.Is(err, ErrInvalidPartnerURL) {
			t.Fatalf("expected ErrInvalidPartnerURL for %q, got %v", raw, err)
		}
	}
}
