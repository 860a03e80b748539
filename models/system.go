package models

import (
	"errors"
	"strings"
)

type System string

const (
	SystemAndroid System = "android"
	SystemIOS     System = "ios"
)

var ErrUnknownSystem = errors.New("unknown system")

// Parse the value of the `system` header, case insensitive
func ParseSystem(value string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "android":
		return SystemAndroid, nil
	case "ios":
		return SystemIOS, nil
	}
	return "", ErrUnknownSystem
}
