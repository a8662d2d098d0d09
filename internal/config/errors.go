package config

import (
	"errors"
)

var (
	// ErrEnvConfigNotObject is returned if the JSON env override is not a JSON object.
	ErrEnvConfigNotObject = errors.New("env config override must be a json object")

	// ErrInstancePathEmpty is returned if no instance path was given to Resolve.
	ErrInstancePathEmpty = errors.New("instance path can not be empty")
)
