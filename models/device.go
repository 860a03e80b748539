package models

// Device is a single entry of a device enumeration.
// Entries are rebuilt on every listing request and carry no identity between calls.
type Device struct {
	ID        string   `json:"id"`
	IsRemote  bool     `json:"is_remote"`
	IsOffline bool     `json:"is_offline"`
	Model     string   `json:"model,omitempty"`
	Alias     string   `json:"alias,omitempty"`
	KnownIPs  []string `json:"known_ips"`
}

// ServiceEndpoint is a wireless debugging endpoint advertised over mDNS
type ServiceEndpoint struct {
	Instance  string   `json:"instance"`
	Host      string   `json:"host"`
	Port      int      `json:"port"`
	Addresses []string `json:"addresses"`
}
