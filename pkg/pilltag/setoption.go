package pilltag

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOption reports a value of the wrong type for an option.
	ErrInvalidOption = errors.New("invalid option value")
	// ErrUnknownOption reports an option name the tag does not recognise.
	ErrUnknownOption = errors.New("unknown option")
	// ErrMalformedSuggestions reports an auto-complete list that is not a JSON string array.
	ErrMalformedSuggestions = errors.New("malformed auto-complete list")
)

// Option and attribute names.
const (
	OptionValue        = "value"
	OptionEditable     = "editable"
	OptionRemovable    = "removable"
	OptionAutoComplete = "auto-complete"
)

// SetOption assigns a loosely typed option. Values of the wrong type and
// unknown names are logged and ignored; the tag keeps its prior state.
func (m *Model) SetOption(name string, value any) {
	if err := m.setOption(name, value); err != nil {
		m.log.Error(err, "ignoring option", "option", name, "type", fmt.Sprintf("%T", value))
	}
}

func (m *Model) setOption(name string, value any) error {
	switch name {
	case OptionValue:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%s must be a string: %w", name, ErrInvalidOption)
		}
		m.SetValue(s)
	case OptionEditable, OptionRemovable:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%s must be a bool: %w", name, ErrInvalidOption)
		}
		if name == OptionEditable {
			m.SetEditable(b)
		} else {
			m.SetRemovable(b)
		}
	case OptionAutoComplete, "autoComplete":
		list, err := stringList(value)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		m.SetAutoComplete(list)
	default:
		return fmt.Errorf("%q: %w", name, ErrUnknownOption)
	}
	return nil
}

func stringList(value any) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("element %d is %T: %w", i, item, ErrInvalidOption)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected a list, got %T: %w", value, ErrInvalidOption)
}
