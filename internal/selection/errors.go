package selection

import "errors"

// -- Sentinels --

var (
	ErrSelectionLimit  = errors.New("selection limit reached")
	ErrUnknownPath     = errors.New("path is not in the candidate list")
	ErrWholeRepository = errors.New("selection is fixed in whole-repository mode")
)
