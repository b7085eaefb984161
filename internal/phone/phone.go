// Package phone backs the phone number input: a fixed dialing-code table and
// digit-only local numbers. The parent form owns the value.
package phone

import (
	_ "embed"
	"fmt"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

type Country struct {
	Code string `yaml:"code"`
	ISO  string `yaml:"iso"`
	Name string `yaml:"name"`
}

func (c Country) Label() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Code)
}

//go:embed countries.yaml
var countriesYAML []byte

var countries = mustParse(countriesYAML)

func mustParse(raw []byte) []Country {
	list, err := parseCountries(raw)
	if err != nil {
		panic(fmt.Sprintf("phone: %v", err))
	}
	return list
}

func parseCountries(raw []byte) ([]Country, error) {
	var list []Country
	if err := yaml.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("parse country table: %w", err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("country table is empty")
	}
	for i, c := range list {
		if !strings.HasPrefix(c.Code, "+") || Digits(c.Code) == "" {
			return nil, fmt.Errorf("country %d (%s): invalid code %q", i, c.Name, c.Code)
		}
	}
	return list, nil
}

// Countries returns the table in display order.
func Countries() []Country {
	out := make([]Country, len(countries))
	copy(out, countries)
	return out
}

// Lookup finds a country by dialing code, falling back to the first entry.
func Lookup(code string) Country {
	code = strings.TrimSpace(code)
	for _, c := range countries {
		if c.Code == code {
			return c
		}
	}
	return countries[0]
}

// Digits drops every character that is not 0-9.
func Digits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Input is the phone widget. It reports edits through the callbacks and
// keeps no state of its own.
type Input struct {
	CountryCode   string
	Number        string
	OnCountryCode func(code string)
	OnNumber      func(number string)
}

func (in Input) Selected() Country {
	return Lookup(in.CountryCode)
}

func (in Input) Options() []Country {
	return Countries()
}

func (in Input) ChangeCountryCode(code string) {
	if in.OnCountryCode != nil {
		in.OnCountryCode(Lookup(code).Code)
	}
}

func (in Input) ChangeNumber(raw string) {
	if in.OnNumber != nil {
		in.OnNumber(Digits(raw))
	}
}

// Value is the composed number, e.g. "+4712345678", or "" without digits.
func (in Input) Value() string {
	number := Digits(in.Number)
	if number == "" {
		return ""
	}
	return in.Selected().Code + number
}
