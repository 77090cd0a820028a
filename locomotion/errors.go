package locomotion

import "errors"

var (
	ErrMissingDependency = errors.New("locomotion: missing dependency")
	ErrInvalidConfig     = errors.New("locomotion: invalid config")
)
