package inference

import "errors"

var (
	ErrArtifactInvalid = errors.New("model artifact invalid")
	ErrFeatureCount    = errors.New("feature vector has wrong length")
	ErrNonFinite       = errors.New("feature vector contains NaN or Inf")
)
