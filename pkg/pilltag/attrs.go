package pilltag

import (
	"fmt"
	"strings"

	"github.com/buger/jsonparser"
)

// ParseSuggestions decodes an auto-complete attribute: a JSON array of strings.
// A blank attribute is an empty list.
func ParseSuggestions(raw string) ([]string, error) {
	data := []byte(strings.TrimSpace(raw))
	if len(data) == 0 {
		return nil, nil
	}

	_, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSuggestions, err)
	}
	if dataType != jsonparser.Array {
		return nil, fmt.Errorf("%w: got %s", ErrMalformedSuggestions, dataType)
	}

	out := []string{}
	var elemErr error
	_, err = jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if elemErr != nil {
			return
		}
		if err != nil {
			elemErr = err
			return
		}
		if dataType != jsonparser.String {
			elemErr = fmt.Errorf("element at offset %d is %s", offset, dataType)
			return
		}
		s, err := jsonparser.ParseString(value)
		if err != nil {
			elemErr = err
			return
		}
		out = append(out, s)
	})
	if err == nil {
		err = elemErr
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSuggestions, err)
	}
	return out, nil
}

// AttributeChanged applies one declarative attribute change. A nil value means
// the attribute is absent. editable and removable are true when present,
// whatever their text. A malformed auto-complete list is logged and returned,
// and the previous suggestions are kept. Unrecognised names are ignored.
func (m *Model) AttributeChanged(name string, oldValue, newValue *string) error {
	if oldValue != nil && newValue != nil && *oldValue == *newValue {
		return nil
	}

	switch name {
	case OptionValue:
		v := ""
		if newValue != nil {
			v = *newValue
		}
		m.SetValue(v)
	case OptionEditable:
		m.SetEditable(newValue != nil)
	case OptionRemovable:
		m.SetRemovable(newValue != nil)
	case OptionAutoComplete:
		if newValue == nil {
			m.SetAutoComplete(nil)
			return nil
		}
		list, err := ParseSuggestions(*newValue)
		if err != nil {
			m.log.Error(err, "ignoring attribute", "attribute", name)
			return fmt.Errorf("attribute %s: %w", name, err)
		}
		m.SetAutoComplete(list)
	default:
		m.log.V(1).Info("ignoring unknown attribute", "attribute", name)
	}
	return nil
}

// ApplyAttributes sets every recognised attribute from attrs. Names missing
// from attrs are treated as absent.
func (m *Model) ApplyAttributes(attrs map[string]string) error {
	var firstErr error
	for _, name := range []string{OptionValue, OptionEditable, OptionRemovable, OptionAutoComplete} {
		var v *string
		if s, ok := attrs[name]; ok {
			v = &s
		}
		if err := m.AttributeChanged(name, nil, v); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
