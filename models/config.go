package models

// Configuration holds the settings the device operations depend on.
// An empty AdbCommand means the executable was never configured.
type Configuration struct {
	AdbCommand string `json:"adb_command,omitempty" yaml:"adb_command,omitempty" toml:"adb_command,omitempty"`
}

func (c Configuration) HasAdbCommand() bool {
	return c.AdbCommand != ""
}
