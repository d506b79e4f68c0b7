package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type FieldType string

const (
	FieldText        FieldType = "text"
	FieldNumber      FieldType = "number"
	FieldDate        FieldType = "date"
	FieldSelect      FieldType = "select"
	FieldMultiSelect FieldType = "multiselect"
)

type FormField struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Options  []string  `json:"options,omitempty"`
}

// CustomForm is bound one-to-one to a Service. Fields keep the order in which
// the host defined them.
type CustomForm struct {
	ID        uint        `json:"id"`
	HostID    uint        `json:"hostId"`
	ServiceID uint        `json:"serviceId"`
	Name      string      `json:"name"`
	Fields    []FormField `json:"fields"`
}

// FormAnswers are the answers of a form keyed by field id. Values are strings,
// numbers or lists of strings, which is what survives a JSON round trip as is.
type FormAnswers map[string]any

func (a FormAnswers) Encode() (string, error) {
	if len(a) == 0 {
		return "", nil
	}

	b, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("json.Marshal -> %w", err)
	}
	return string(b), nil
}

func DecodeFormAnswers(raw string) (FormAnswers, error) {
	answers := FormAnswers{}
	if strings.TrimSpace(raw) == "" {
		return answers, nil
	}

	if err := json.Unmarshal([]byte(raw), &answers); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormAnswers, err)
	}
	return answers, nil
}

func (f CustomForm) ValidateAnswers(answers FormAnswers) error {
	errs := validation.Errors{}
	for _, field := range f.Fields {
		value, ok := answers[field.ID]
		if !ok || isBlank(value) {
			if field.Required {
				errs[field.ID] = errors.New("is required")
			}
			continue
		}
		if err := field.check(value); err != nil {
			errs[field.ID] = err
		}
	}

	if err := errs.Filter(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormAnswers, err)
	}
	return nil
}

func (f FormField) check(value any) error {
	switch f.Type {
	case FieldNumber:
		switch v := value.(type) {
		case float64, int, int64, json.Number:
			return nil
		case string:
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				return errors.New("must be a number")
			}
			return nil
		}
		return errors.New("must be a number")
	case FieldDate:
		s, ok := value.(string)
		if !ok || !isDate(s) {
			return errors.New("must be a date (YYYY-MM-DD)")
		}
	case FieldSelect:
		s, ok := value.(string)
		if !ok {
			return errors.New("must be a single choice")
		}
		if !f.allows(s) {
			return fmt.Errorf("%q is not an option", s)
		}
	case FieldMultiSelect:
		values, ok := stringList(value)
		if !ok {
			return errors.New("must be a list of choices")
		}
		for _, s := range values {
			if !f.allows(s) {
				return fmt.Errorf("%q is not an option", s)
			}
		}
	default:
		if _, ok := value.(string); !ok {
			return errors.New("must be text")
		}
	}
	return nil
}

func (f FormField) allows(choice string) bool {
	if len(f.Options) == 0 {
		return true
	}
	for _, o := range f.Options {
		if o == choice {
			return true
		}
	}
	return false
}

// ResolveOptionNames maps the option ids chosen for each option group of a
// menu item to display names. A group's answer is looked up by group id, then
// by group name; an option matches on id or name. Unknown values are kept raw.
func ResolveOptionNames(groups []OptionGroup, answers FormAnswers) map[string][]string {
	resolved := make(map[string][]string)
	for _, g := range groups {
		value, ok := answers[g.ID]
		if !ok {
			value, ok = answers[g.Name]
		}
		if !ok {
			continue
		}

		chosen, ok := stringList(value)
		if !ok {
			continue
		}

		names := make([]string, 0, len(chosen))
		for _, c := range chosen {
			names = append(names, g.optionName(c))
		}
		resolved[g.Name] = names
	}
	return resolved
}

func (g OptionGroup) optionName(idOrName string) string {
	for _, o := range g.Options {
		if o.ID == idOrName || o.Name == idOrName {
			return o.Name
		}
	}
	return idOrName
}

func stringList(value any) ([]string, bool) {
	switch v := value.(type) {
	case string:
		return []string{v}, true
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func isBlank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	}
	return false
}

func isDate(s string) bool {
	if _, err := time.Parse(time.DateOnly, s); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}
