package adb

import "strings"

const unknownModel = "<Unknown>"

// Parse `getprop` output where every line looks like `[key]: [value]`
func parseProperties(output string) map[string]string {
	properties := make(map[string]string)

	for _, line := range strings.Split(output, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = stripBrackets(strings.TrimSpace(key))
		value = stripBrackets(strings.TrimSpace(value))
		if key == "" {
			continue
		}
		properties[key] = value
	}

	return properties
}

// Drop the first and last character of a bracketed token
func stripBrackets(token string) string {
	if len(token) < 2 {
		return ""
	}
	return token[1 : len(token)-1]
}

// Human readable model, manufacturer first
func modelName(properties map[string]string) string {
	var parts []string
	if manufacturer, ok := properties["ro.product.manufacturer"]; ok {
		parts = append(parts, manufacturer)
	}
	if model, ok := properties["ro.product.model"]; ok {
		parts = append(parts, model)
	}
	if len(parts) == 0 {
		return unknownModel
	}
	return strings.Join(parts, " ")
}
