package configuration

import "errors"

var ErrStorageRequired = errors.New("upload.target storage requires storage.type to be set")
