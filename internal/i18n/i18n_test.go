package i18n

import "testing"

func TestT_KnownKey(t *testing.T) {
	c := New("en")
	if got := c.T("en", "cancel"); got != "Cancel" {
		t.Errorf("expected Cancel, got %q", got)
	}
	if got := c.T("ro", "cancel"); got != "Renunță" {
		t.Errorf("expected Renunță, got %q", got)
	}
}

func TestT_MissingKeyFallsBackToKey(t *testing.T) {
	c := New("en")
	if got := c.T("en", "noSuchKey"); got != "noSuchKey" {
		t.Errorf("expected key echo, got %q", got)
	}
}

func TestT_UnknownLocaleFallsBackToDefault(t *testing.T) {
	c := New("en")
	if got := c.T("de", "cancel"); got != "Cancel" {
		t.Errorf("expected default-locale text, got %q", got)
	}
}

func TestNew_UnknownDefaultLocale(t *testing.T) {
	c := New("klingon")
	if got := c.T("klingon", "cancel"); got != "Cancel" {
		t.Errorf("expected english fallback, got %q", got)
	}
}

func TestSupported(t *testing.T) {
	c := New("en")
	if !c.Supported("ro") {
		t.Error("expected ro to be supported")
	}
	if c.Supported("fr") {
		t.Error("expected fr to be unsupported")
	}
}

func TestFunc_BindsLocale(t *testing.T) {
	c := New("en")
	tr := c.Func("ro")
	if got := tr("back"); got != "Înapoi" {
		t.Errorf("expected Înapoi, got %q", got)
	}
}

func TestCatalogsCoverSameKeys(t *testing.T) {
	for key := range locales["en"] {
		if _, ok := locales["ro"][key]; !ok {
			t.Errorf("ro catalog missing key %q", key)
		}
	}
	for key := range locales["ro"] {
		if _, ok := locales["en"][key]; !ok {
			t.Errorf("en catalog missing key %q", key)
		}
	}
}
