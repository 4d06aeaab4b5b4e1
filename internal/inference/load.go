package inference

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/kiranshivaraju/healthassist/pkg/models"
)

type artifact struct {
	Kind         string    `json:"kind"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	Scaler       *Scaler   `json:"scaler,omitempty"`
}

var validKinds = map[string]bool{
	KindLinearSVC:          true,
	KindLogisticRegression: true,
}

// Load reads a JSON model artifact from disk.
func Load(path string) (*LinearModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}

	var a artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrArtifactInvalid, path, err)
	}
	if err := a.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrArtifactInvalid, path, err)
	}

	return &LinearModel{
		kind:      a.Kind,
		coef:      a.Coefficients,
		intercept: a.Intercept,
		scaler:    a.Scaler,
	}, nil
}

func (a *artifact) validate() error {
	if !validKinds[a.Kind] {
		return fmt.Errorf("unknown kind %q", a.Kind)
	}
	if len(a.Coefficients) == 0 {
		return fmt.Errorf("no coefficients")
	}
	if math.IsNaN(a.Intercept) || math.IsInf(a.Intercept, 0) {
		return fmt.Errorf("intercept is not finite")
	}
	if a.Scaler == nil {
		return nil
	}
	n := len(a.Coefficients)
	if len(a.Scaler.Mean) != n || len(a.Scaler.Scale) != n {
		return fmt.Errorf("scaler has %d/%d entries, want %d", len(a.Scaler.Mean), len(a.Scaler.Scale), n)
	}
	for i, s := range a.Scaler.Scale {
		if s == 0 {
			return fmt.Errorf("scaler scale[%d] is zero", i)
		}
	}
	return nil
}

// LoadCatalog loads one artifact per disease from dir, keyed by slug.
// Each artifact must expect exactly as many features as its disease form has.
func LoadCatalog(dir string, diseases []*models.Disease) (map[string]models.Classifier, error) {
	out := make(map[string]models.Classifier, len(diseases))
	for _, d := range diseases {
		m, err := Load(filepath.Join(dir, d.ModelFile))
		if err != nil {
			return nil, fmt.Errorf("load %s model: %w", d.Slug, err)
		}
		if m.Dim() != len(d.Fields) {
			return nil, fmt.Errorf("load %s model: %w: model expects %d features, form has %d",
				d.Slug, ErrArtifactInvalid, m.Dim(), len(d.Fields))
		}
		out[d.Slug] = m
	}
	return out, nil
}
