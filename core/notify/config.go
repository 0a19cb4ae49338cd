package notify

import "strings"

// Drivers supported by New.
const (
	DriverSMTP    = "smtp"
	DriverStorage = "storage"
	DriverLog     = "log"
	DriverNone    = "none"
)

// Config holds configuration for the report notifier.
type Config struct {
	// Driver selects the notifier (smtp, storage, log, none).
	Driver string `mapstructure:"driver" default:"log"`
	// Host is the SMTP server host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the SMTP server port.
	Port int `mapstructure:"port" default:"587"`
	// Username enables PLAIN authentication when set.
	Username string `mapstructure:"username" default:""`
	// Password is the SMTP password.
	Password string `mapstructure:"password" default:""`
	// From is the sender address.
	From string `mapstructure:"from" default:"change-detector@localhost"`
	// To is a comma separated list of recipients.
	To string `mapstructure:"to" default:""`
	// ReportPrefix is the bucket prefix of stored reports.
	ReportPrefix string `mapstructure:"report_prefix" default:"reports/"`
}

// Recipients returns the trimmed, non-empty recipients.
func (c Config) Recipients() []string {
	var out []string
	for _, r := range strings.Split(c.To, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}
