package tz

import "time"

// Location is the league display timezone. Defaults to UTC until Set is
// called from config at startup.
var Location = time.UTC

// Set loads and installs the named IANA timezone.
func Set(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return err
	}
	Location = loc
	return nil
}
