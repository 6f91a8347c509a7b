package errors

import (
	"fmt"
)

var (
	ErrInvalidConfig      = fmt.Errorf("educhat: invalid config")
	ErrNotFound           = fmt.Errorf("educhat: not found")
	ErrProfileNotFound    = fmt.Errorf("educhat: character profile not found")
	ErrInvalidParams      = fmt.Errorf("educhat: invalid params")
	ErrStorageUnavailable = fmt.Errorf("educhat: storage unavailable")
	ErrGenerationFailed   = fmt.Errorf("educhat: generation failed")
	ErrInternal           = fmt.Errorf("educhat: internal error")
)
