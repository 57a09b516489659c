package channels

import (
	"strings"
	"testing"
	"time"
)

func TestParseSettings(t *testing.T) {
	settings, warnings := ParseSettings(map[string]string{
		SettingCurrency:     "EUR",
		SettingShopID:       "42",
		SettingLeadTimeDays: "3",
		SettingTimeout:      "5",
	})

	if len(warnings) != 0 {
		t.Errorf("recognized keys should not produce warnings, got %v", warnings)
	}
	if settings.Currency != "EUR" {
		t.Errorf("expected currency EUR, got %q", settings.Currency)
	}
	if settings.ShopID != "42" {
		t.Errorf("expected shop id 42, got %q", settings.ShopID)
	}
	if settings.LeadTimeDays != 3 {
		t.Errorf("expected lead time 3, got %d", settings.LeadTimeDays)
	}
	if settings.Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %s", settings.Timeout)
	}
}

func TestParseSettingsWarnsOnUnrecognizedKey(t *testing.T) {
	_, warnings := ParseSettings(map[string]string{
		"color_scheme": "dark",
	})

	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
	if !strings.Contains(warnings[0], "color_scheme") {
		t.Errorf("warning should name the unrecognized key, got %q", warnings[0])
	}
}

func TestParseSettingsWarnsOnInvalidNumber(t *testing.T) {
	settings, warnings := ParseSettings(map[string]string{
		SettingLeadTimeDays: "soon",
	})

	if settings.LeadTimeDays != 0 {
		t.Errorf("invalid value should not be applied, got %d", settings.LeadTimeDays)
	}
	if len(warnings) != 1 {
		t.Errorf("invalid value should produce a warning, got %v", warnings)
	}
}

func TestParseSettingsDefaultTimeout(t *testing.T) {
	settings, _ := ParseSettings(nil)
	if settings.Timeout != DefaultRequestTimeout {
		t.Errorf("expected default timeout %s, got %s", DefaultRequestTimeout, settings.Timeout)
	}
}

func TestParseChannel(t *testing.T) {
	for _, name := range []string{"storefront", "auction", "multioperator", "operator-rest"} {
		channel, err := ParseChannel(name)
		if err != nil {
			t.Errorf("channel %q should be known: %v", name, err)
		}
		if channel.String() != name {
			t.Errorf("expected %q, got %q", name, channel)
		}
	}

	if _, err := ParseChannel("ultra-market"); err == nil {
		t.Error("unknown channel name should be rejected")
	}
}

func TestCloneIdentifiers(t *testing.T) {
	account := &Account{Identifiers: map[string]string{"product_1": "100"}}

	cloned := account.CloneIdentifiers()
	cloned["product_2"] = "200"

	if _, ok := account.Identifiers["product_2"]; ok {
		t.Error("mutating the clone should not affect the account")
	}
}

func TestAccountAccessorsOnNilMaps(t *testing.T) {
	account := &Account{}

	if account.Credential("api_key") != "" {
		t.Error("credential lookup on nil map should return an empty string")
	}
	if account.Setting(SettingShopID) != "" {
		t.Error("setting lookup on nil map should return an empty string")
	}
	if account.Identifier("product_1") != "" {
		t.Error("identifier lookup on nil map should return an empty string")
	}
}
