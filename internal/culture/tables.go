// Package culture holds the festival calendar, regional investment patterns,
// religious investment filters, the government scheme catalog and localized
// greetings. The tables are embedded, parsed once, and read-only afterwards.
package culture

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v2"
)

// AllStates in a scheme's applicable states matches every state.
const AllStates = "All States"

// DefaultLanguage is used when a language has no localized text.
const DefaultLanguage = "en"

//go:embed tables.yaml
var embedded []byte

type Festival struct {
	Key         string   `yaml:"key"`
	Name        string   `yaml:"name"`
	Months      []int    `yaml:"months"`
	Suggestions []string `yaml:"savings_suggestions"`
}

// InMonth reports whether the festival falls in month.
func (f Festival) InMonth(month time.Month) bool {
	for _, m := range f.Months {
		if time.Month(m) == month {
			return true
		}
	}
	return false
}

type StatePattern struct {
	CommonGoals           []string `yaml:"common_goals"`
	CulturalEvents        []string `yaml:"cultural_events"`
	InvestmentPreferences []string `yaml:"investment_preferences"`
}

type ReligiousFilter struct {
	ExcludedSectors      []string `yaml:"excluded_sectors"`
	PreferredInstruments []string `yaml:"preferred_instruments"`
	Principles           []string `yaml:"principles"`
}

// Scheme is a government scheme and its eligibility criteria. Nil bounds
// are not checked.
type Scheme struct {
	Name               string   `yaml:"name" json:"name"`
	Description        string   `yaml:"description" json:"description"`
	AgeMin             *int     `yaml:"age_min" json:"ageMin,omitempty"`
	AgeMax             *int     `yaml:"age_max" json:"ageMax,omitempty"`
	IncomeMax          *float64 `yaml:"income_max" json:"incomeMax,omitempty"`
	DocumentsRequired  []string `yaml:"documents_required" json:"documentsRequired"`
	ApplicationProcess string   `yaml:"application_process" json:"applicationProcess"`
	OfficialWebsite    string   `yaml:"official_website" json:"officialWebsite"`
	ApplicableStates   []string `yaml:"applicable_states" json:"applicableStates"`
}

// AvailableIn reports whether the scheme applies in state.
func (s Scheme) AvailableIn(state string) bool {
	if len(s.ApplicableStates) == 0 {
		return true
	}
	for _, st := range s.ApplicableStates {
		if st == AllStates || strings.EqualFold(st, state) {
			return true
		}
	}
	return false
}

type Tables struct {
	Version          string                     `yaml:"version"`
	Festivals        []Festival                 `yaml:"festivals"`
	States           map[string]StatePattern    `yaml:"states"`
	ReligiousFilters map[string]ReligiousFilter `yaml:"religious_filters"`
	Schemes          []Scheme                   `yaml:"schemes"`
	Greetings        map[string]string          `yaml:"greetings"`
	Suggestions      map[string][]string        `yaml:"suggestions"`
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
	defaultErr    error
)

// Default returns the embedded tables. It panics if they fail to parse,
// which can only happen with a broken build.
func Default() *Tables {
	defaultOnce.Do(func() {
		defaultTables, defaultErr = Parse(embedded)
	})
	if defaultErr != nil {
		panic(defaultErr)
	}
	return defaultTables
}

// Parse decodes and checks a tables document.
func Parse(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse culture tables: %w", err)
	}

	for _, f := range t.Festivals {
		if f.Key == "" || f.Name == "" || len(f.Suggestions) == 0 {
			return nil, fmt.Errorf("festival %q: key, name and suggestions are required", f.Key)
		}
		for _, m := range f.Months {
			if m < 1 || m > 12 {
				return nil, fmt.Errorf("festival %q: month %d out of range", f.Key, m)
			}
		}
	}
	if _, ok := t.Greetings[DefaultLanguage]; !ok {
		return nil, fmt.Errorf("greetings must include %q", DefaultLanguage)
	}
	if _, ok := t.Suggestions[DefaultLanguage]; !ok {
		return nil, fmt.Errorf("suggestions must include %q", DefaultLanguage)
	}
	return &t, nil
}

// NormalizeKey turns a display name such as "Tamil Nadu" into a table key.
func NormalizeKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// FestivalsInMonth returns festivals falling in month, in declared order.
func (t *Tables) FestivalsInMonth(month time.Month) []Festival {
	var out []Festival
	for _, f := range t.Festivals {
		if f.InMonth(month) {
			out = append(out, f)
		}
	}
	return out
}

// UpcomingFestival returns the first festival in declared order that falls
// in now's month or the month after. December looks ahead to January.
func (t *Tables) UpcomingFestival(now time.Time) (Festival, bool) {
	current := now.Month()
	next := current%12 + 1
	for _, f := range t.Festivals {
		if f.InMonth(current) || f.InMonth(next) {
			return f, true
		}
	}
	return Festival{}, false
}

func (t *Tables) State(name string) (StatePattern, bool) {
	p, ok := t.States[NormalizeKey(name)]
	return p, ok
}

func (t *Tables) ReligiousFilter(background string) (ReligiousFilter, bool) {
	f, ok := t.ReligiousFilters[strings.ToLower(strings.TrimSpace(background))]
	return f, ok
}

// Scheme looks a scheme up by name, ignoring case.
func (t *Tables) Scheme(name string) (Scheme, bool) {
	for _, s := range t.Schemes {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			return s, true
		}
	}
	return Scheme{}, false
}

// Greeting returns the localized greeting for name, falling back to English.
func (t *Tables) Greeting(language, name string) string {
	tmpl, ok := t.Greetings[language]
	if !ok {
		tmpl = t.Greetings[DefaultLanguage]
	}
	return fmt.Sprintf(tmpl, name)
}

// LanguageSuggestions returns the default quick replies for language. The
// returned slice is a copy.
func (t *Tables) LanguageSuggestions(language string) []string {
	s, ok := t.Suggestions[language]
	if !ok {
		s = t.Suggestions[DefaultLanguage]
	}
	return append([]string(nil), s...)
}

// SupportsLanguage reports whether language has localized text.
func (t *Tables) SupportsLanguage(language string) bool {
	_, ok := t.Greetings[language]
	return ok
}
