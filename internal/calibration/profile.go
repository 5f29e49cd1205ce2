package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/agbru/vsort/internal/hardware"
)

// CurrentProfileVersion is bumped whenever the on-disk layout or the meaning
// of a stored threshold changes; older files are then ignored.
const CurrentProfileVersion = 2

// DefaultProfileFileName is the file created in the user's home directory.
const DefaultProfileFileName = ".vsort_calibration.json"

// CalibrationProfile is a persisted calibration result together with the
// machine fingerprint it was measured on.
type CalibrationProfile struct {
	NumCPU         int    `json:"num_cpu" yaml:"num_cpu"`
	GOARCH         string `json:"goarch" yaml:"goarch"`
	GOOS           string `json:"goos" yaml:"goos"`
	GoVersion      string `json:"go_version" yaml:"go_version"`
	WordSize       int    `json:"word_size" yaml:"word_size"`
	CPUModel       string `json:"cpu_model" yaml:"cpu_model"`
	ProfileVersion int    `json:"profile_version" yaml:"profile_version"`

	CalibratedAt time.Time `json:"calibrated_at" yaml:"calibrated_at"`

	Thresholds Thresholds `json:"thresholds" yaml:"thresholds"`

	// CalibrationN is the largest array length sorted during calibration.
	CalibrationN int `json:"calibration_n" yaml:"calibration_n"`
	// CalibrationTime is the wall time of the run, as a duration string.
	CalibrationTime string `json:"calibration_time" yaml:"calibration_time"`
}

// NewProfile returns a profile fingerprinted for the running process, with
// thresholds calibrated from the detected hardware.
func NewProfile() *CalibrationProfile {
	hw := hardware.Detect()
	return &CalibrationProfile{
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
		CPUModel:       hw.Model,
		ProfileVersion: CurrentProfileVersion,
		CalibratedAt:   time.Now(),
		Thresholds:     Calibrate(hw),
	}
}

// IsValid reports whether the profile was recorded on a machine matching the
// current one and in the current format. A nil profile is invalid.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.WordSize == 32<<(^uint(0)>>63) &&
		p.Thresholds.Validate() == nil
}

// IsStale reports whether the profile is older than maxAge. A nil profile is
// always stale.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

// String summarises the profile for display.
func (p *CalibrationProfile) String() string {
	return fmt.Sprintf("calibration profile v%d (%s/%s, %d CPUs, %s) at %s: %s",
		p.ProfileVersion, p.GOOS, p.GOARCH, p.NumCPU, p.CPUModel,
		p.CalibratedAt.Format(time.RFC3339), p.Thresholds)
}

// SaveProfile writes the profile to path, as YAML when the extension is
// .yaml or .yml and as indented JSON otherwise.
func (p *CalibrationProfile) SaveProfile(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(p)
	} else {
		data, err = json.MarshalIndent(p, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encoding calibration profile: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating profile directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing calibration profile: %w", err)
	}
	return nil
}

// LoadProfile reads a profile written by SaveProfile. It does not check
// validity; see IsValid.
func LoadProfile(path string) (*CalibrationProfile, error) {
	return loadProfile(path)
}

func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p CalibrationProfile
	if isYAML(path) {
		err = yaml.Unmarshal(data, &p)
	} else {
		err = json.Unmarshal(data, &p)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding calibration profile %s: %w", path, err)
	}
	return &p, nil
}

// LoadOrCreateProfile loads the profile at path when it exists and is valid,
// and otherwise returns a fresh profile. loaded reports which happened.
func LoadOrCreateProfile(path string) (p *CalibrationProfile, loaded bool) {
	if existing, err := loadProfile(path); err == nil && existing.IsValid() {
		return existing, true
	}
	return NewProfile(), false
}

// GetDefaultProfilePath returns ~/.vsort_calibration.json, or the bare file
// name in the working directory when the home directory is unknown.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
