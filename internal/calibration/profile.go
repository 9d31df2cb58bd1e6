// This file persists calibration results as a JSON profile in the user's
// home directory.

package calibration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/agbru/apcalc/internal/errors"
)

// ProfileFileName is the default profile location relative to the user's
// home directory.
const ProfileFileName = ".apcalc_calibration.json"

// Profile is a persisted set of measured cutoffs.
type Profile struct {
	MulKaratsubaCutoff int       `json:"mul_karatsuba_cutoff"`
	MulToomCutoff      int       `json:"mul_toom_cutoff"`
	SqrKaratsubaCutoff int       `json:"sqr_karatsuba_cutoff"`
	SqrToomCutoff      int       `json:"sqr_toom_cutoff"`
	CreatedAt          time.Time `json:"created_at"`
}

// DefaultProfilePath returns the profile path under the user's home
// directory, falling back to the working directory when home is unknown.
func DefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ProfileFileName
	}
	return filepath.Join(home, ProfileFileName)
}

// Save writes the profile to path as indented JSON.
func Save(p Profile, path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return apperrors.WrapError(err, "encoding calibration profile")
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return apperrors.WrapError(err, "writing calibration profile %q", path)
	}
	return nil
}

// Load reads a profile from path. A missing file is not an error and
// returns ok=false.
func Load(path string) (Profile, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Profile{}, false, nil
		}
		return Profile{}, false, apperrors.WrapError(err, "reading calibration profile %q", path)
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, false, apperrors.WrapError(err, "decoding calibration profile %q", path)
	}
	return p, true, nil
}
