package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"loop-field/internal/dataset"
)

func trainedBundle(t *testing.T) *Bundle {
	t.Helper()
	obs := []dataset.Observation{
		{Current: 1.0, Radius: 0.10, Field: 1.2566e-5},
		{Current: 2.0, Radius: 0.10, Field: 2.5133e-5},
		{Current: 1.0, Radius: 0.20, Field: 6.2830e-6},
		{Current: 3.0, Radius: 0.15, Field: 2.5133e-5},
	}
	b, err := Train(obs, Options{Degree: 2, NoiseLevel: 0, Seed: 1})
	require.NoError(t, err)
	return b
}

func TestBundleSaveLoadRoundTrip(t *testing.T) {
	b := trainedBundle(t)
	path := filepath.Join(t.TempDir(), "field_model.json")

	require.NoError(t, b.Save(path))

	loaded, err := LoadBundle(path)
	require.NoError(t, err)
	require.Equal(t, b.Degree, loaded.Degree)
	require.Equal(t, b.Basis.Terms, loaded.Basis.Terms)
	require.Equal(t, b.Scaler, loaded.Scaler)
	require.Equal(t, b.Model.Weights, loaded.Model.Weights)

	// Loaded bundle predicts identically to the in-memory one.
	want, err := PredictOne(b, 1.5, 0.12)
	require.NoError(t, err)
	got, err := PredictOne(loaded, 1.5, 0.12)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestLoadBundleMissing(t *testing.T) {
	_, err := LoadBundle(filepath.Join(t.TempDir(), "absent.json"))
	require.ErrorIs(t, err, ErrNoModel)
}

func TestLoadBundleCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadBundle(path)
	require.ErrorIs(t, err, ErrInvalidBundle)
	require.NotErrorIs(t, err, ErrNoModel)
}

func TestLoadBundleWrongSchema(t *testing.T) {
	b := trainedBundle(t)
	b.SchemaVersion = "v0"
	path := filepath.Join(t.TempDir(), "old.json")
	require.ErrorIs(t, b.Save(path), ErrInvalidBundle)
}

func TestValidateMismatchedArtifacts(t *testing.T) {
	b := trainedBundle(t)
	b.Model.Weights = b.Model.Weights[:3]
	require.ErrorIs(t, b.Validate(), ErrInvalidBundle)

	b = trainedBundle(t)
	b.Scaler.Mean = b.Scaler.Mean[:2]
	require.ErrorIs(t, b.Validate(), ErrInvalidBundle)
}

func TestSaveOverwritesWholesale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field_model.json")

	first := trainedBundle(t)
	require.NoError(t, first.Save(path))

	second := trainedBundle(t)
	second.Rows = 99
	require.NoError(t, second.Save(path))

	loaded, err := LoadBundle(path)
	require.NoError(t, err)
	require.Equal(t, 99, loaded.Rows)

	// No temp files left behind by the atomic replace.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
