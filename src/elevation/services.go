package elevation

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoElevationService is returned when the helper services carry no elevationSync entry.
var ErrNoElevationService = errors.New("elevation: cannot get the elevation service")

// HelperService is one entry of the helper services config.
type HelperService struct {
	URL string `json:"url"`
}

// Services mirrors the organization's helper services; only elevationSync is used.
type Services struct {
	ElevationSync *HelperService `json:"elevationSync,omitempty"`
	// Token is appended to service requests when set.
	Token string `json:"token,omitempty"`
}

// ProfileURL is the Profile task endpoint of the elevationSync service.
func (s Services) ProfileURL() (string, error) {
	if s.ElevationSync == nil || strings.TrimSpace(s.ElevationSync.URL) == "" {
		return "", ErrNoElevationService
	}
	return strings.TrimRight(s.ElevationSync.URL, "/") + "/Profile", nil
}

// StripJSONC loads a JSONC file (full-line // comments) and returns raw JSON bytes suitable for unmarshalling.
func StripJSONC(filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []byte
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		// Inline // stays: service URLs contain it.
		out = append(out, []byte(line+"\n")...)
	}
	return out, scanner.Err()
}

// LoadServices reads the JSONC helper services file.
func LoadServices(path string) (Services, error) {
	var s Services
	b, err := StripJSONC(path)
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(b, &s); err != nil {
		return s, fmt.Errorf("parse services %s: %w", path, err)
	}
	return s, nil
}
