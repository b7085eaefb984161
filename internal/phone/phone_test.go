package phone

import "testing"

func TestDigits(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"12a 34-56", "123456"},
		{"+47 (22) 33 44 55", "4722334455"},
		{"abc", ""},
		{"", ""},
		{"١٢٣4", "4"},
	}
	for _, tc := range cases {
		if got := Digits(tc.raw); got != tc.want {
			t.Fatalf("Digits(%q)=%q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestLookupDefaultsToFirstEntry(t *testing.T) {
	for _, code := range []string{"", "+999", "47"} {
		got := Lookup(code)
		if got.Code != "+47" || got.Name != "Norway" {
			t.Fatalf("Lookup(%q)=%+v, want Norway +47", code, got)
		}
	}
	if got := Lookup("+46"); got.Name != "Sweden" {
		t.Fatalf("expected Sweden for +46, got %+v", got)
	}
}

func TestCountriesTable(t *testing.T) {
	list := Countries()
	if len(list) < 2 {
		t.Fatalf("expected a populated table, got %d entries", len(list))
	}
	if list[0].ISO != "NO" {
		t.Fatalf("expected NO as first ISO code, got %q", list[0].ISO)
	}
	list[0].Code = "+0"
	if Countries()[0].Code != "+47" {
		t.Fatalf("Countries must return a copy")
	}
}

func TestParseCountriesRejectsBadTable(t *testing.T) {
	if _, err := parseCountries([]byte("[]")); err == nil {
		t.Fatalf("expected error for empty table")
	}
	if _, err := parseCountries([]byte("- code: \"47\"\n  name: Norway\n")); err == nil {
		t.Fatalf("expected error for code without +")
	}
}

func TestInputCallbacks(t *testing.T) {
	var code, number string
	in := Input{
		CountryCode:   "+999",
		OnCountryCode: func(c string) { code = c },
		OnNumber:      func(n string) { number = n },
	}
	if in.Selected().Code != "+47" {
		t.Fatalf("expected fallback selection +47, got %s", in.Selected().Code)
	}
	in.ChangeNumber("12a 34-56")
	if number != "123456" {
		t.Fatalf("expected 123456, got %q", number)
	}
	in.ChangeCountryCode("+45")
	if code != "+45" {
		t.Fatalf("expected +45, got %q", code)
	}
	in.ChangeCountryCode("bogus")
	if code != "+47" {
		t.Fatalf("expected unknown code to map to +47, got %q", code)
	}
}

func TestInputValue(t *testing.T) {
	if got := (Input{CountryCode: "+46", Number: "70-123 45"}).Value(); got != "+467012345" {
		t.Fatalf("unexpected value %q", got)
	}
	if got := (Input{CountryCode: "+46"}).Value(); got != "" {
		t.Fatalf("expected empty value without digits, got %q", got)
	}
}
