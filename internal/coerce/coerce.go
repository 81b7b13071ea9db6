// Package coerce normalizes checkbox input from the public
// status-update form into canonical booleans.
//
// The mapping is a closed allow-list, not a general truthy test:
// exactly "on", "1", the number 1, and true are checked. Anything
// else, including plausible values like "yes", is unchecked — absence
// of the expected marker means the box was not ticked, never an error.
package coerce

// Checkbox group keys recognized in a submission payload.
const (
	FieldClasses = "discipleship_classes"
	FieldMembers = "members"
	FieldInterns = "interns"
)

// Bool collapses a checkbox wire value to a boolean.
func Bool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val == "on" || val == "1"
	case int:
		return val == 1
	case int64:
		return val == 1
	case float64:
		// JSON numbers decode to float64.
		return val == 1
	default:
		return false
	}
}

// NullableBool is Bool with explicit absence preserved: nil stays nil
// so "not tracked" is distinguishable from "not completed".
func NullableBool(v any) *bool {
	if v == nil {
		return nil
	}
	b := Bool(v)
	return &b
}

// Payload rewrites the checkbox groups of a raw submission payload in
// canonical form and leaves every other key untouched. It handles the
// three shapes the form produces: a flat class-completion group, an
// ordered list of member entries, and an ordered list of intern
// entries whose flags may be absent.
func Payload(payload map[string]any, fields []string) map[string]any {
	if payload == nil {
		return nil
	}

	if group, ok := payload[FieldClasses].(map[string]any); ok {
		payload[FieldClasses] = flatGroup(group, fields)
	}
	if list, ok := payload[FieldMembers].([]any); ok {
		payload[FieldMembers] = entryList(list, fields, false)
	}
	if list, ok := payload[FieldInterns].([]any); ok {
		payload[FieldInterns] = entryList(list, fields, true)
	}

	return payload
}

func flatGroup(group map[string]any, fields []string) map[string]any {
	for _, f := range fields {
		group[f] = Bool(group[f])
	}
	return group
}

func entryList(list []any, fields []string, nullable bool) []any {
	for i, raw := range list {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		for _, f := range fields {
			if nullable {
				if b := NullableBool(entry[f]); b == nil {
					entry[f] = nil
				} else {
					entry[f] = *b
				}
				continue
			}
			entry[f] = Bool(entry[f])
		}
		list[i] = entry
	}
	return list
}
