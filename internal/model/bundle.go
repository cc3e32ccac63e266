package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// BundleSchema is the persisted format version. Bumped only on
// incompatible layout changes.
const BundleSchema = "v1"

var (
	// ErrNoModel reports a predict attempt with no persisted bundle.
	ErrNoModel = errors.New("no trained model found")

	// ErrInvalidBundle reports a bundle file that exists but cannot be
	// used: unparsable, wrong schema, or internally inconsistent.
	ErrInvalidBundle = errors.New("invalid model bundle")
)

// Bundle is the atomic unit of training output and inference input:
// the fitted regression weights together with the exact scaler
// parameters and polynomial basis they were fitted against. A loaded
// bundle is read-only, so concurrent predictions against it are safe.
type Bundle struct {
	SchemaVersion string    `json:"schema_version"`
	TrainedAt     time.Time `json:"trained_at"`
	Rows          int       `json:"rows"`
	Degree        int       `json:"degree"`
	NoiseLevel    float64   `json:"noise_level"`

	Scaler StandardizationParams `json:"scaler"`
	Basis  BasisSpec             `json:"basis"`
	Model  Coefficients          `json:"model"`
}

// Validate checks that the three fitted artifacts agree with each
// other, guarding against a hand-edited or mismatched bundle.
func (b *Bundle) Validate() error {
	if b.SchemaVersion != BundleSchema {
		return fmt.Errorf("%w: schema_version %q (want %q)", ErrInvalidBundle, b.SchemaVersion, BundleSchema)
	}
	if len(b.Scaler.Mean) != b.Basis.Inputs || len(b.Scaler.Std) != b.Basis.Inputs {
		return fmt.Errorf("%w: scaler width %d does not match basis inputs %d",
			ErrInvalidBundle, len(b.Scaler.Mean), b.Basis.Inputs)
	}
	if len(b.Model.Weights) != b.Basis.Size() {
		return fmt.Errorf("%w: %d weights for %d basis terms",
			ErrInvalidBundle, len(b.Model.Weights), b.Basis.Size())
	}
	return nil
}

// Save persists the bundle as JSON. The file is written to a temporary
// name in the destination directory and renamed into place, so a
// concurrent reader sees either the old bundle or the new one, never a
// partial write. Retraining overwrites wholesale.
func (b *Bundle) Save(path string) error {
	if err := b.Validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create bundle directory: %w", err)
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal bundle: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".bundle-*.json")
	if err != nil {
		return fmt.Errorf("create temp bundle: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write bundle: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close bundle: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace bundle: %w", err)
	}
	return nil
}

// LoadBundle reads a persisted bundle fully into memory. A missing file
// is the handled ErrNoModel condition; anything unreadable beyond that
// is ErrInvalidBundle.
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w (looked in %s)", ErrNoModel, path)
		}
		return nil, fmt.Errorf("read bundle: %w", err)
	}

	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBundle, err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}
