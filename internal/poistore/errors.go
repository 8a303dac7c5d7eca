package poistore

import "github.com/rotisserie/eris"

// ErrInvalidInput marks caller errors (missing or out-of-range center
// coordinates). Provider failures never surface as errors; they fall back
// to the offline catalog.
var ErrInvalidInput = eris.New("poistore: invalid input")
