package render

import "errors"

var (
	ErrLayersLocked    = errors.New("layers are locked")
	ErrLayersUnlocked  = errors.New("layers are not locked")
	ErrDuplicateLayer  = errors.New("duplicate layer name")
	ErrUnknownLayer    = errors.New("unknown layer")
	ErrLayerLimit      = errors.New("layer limit reached")
	ErrCamLayerCount   = errors.New("camera layer count exceeds layer count")
	ErrSlotCount       = errors.New("slot count must be a positive multiple of 8 within the limit")
	ErrCharBatchLimit  = errors.New("no free char batch in layer")
	ErrCharCapacity    = errors.New("char batch capacity out of range")
	ErrTextLength      = errors.New("text length out of range")
	ErrUnsupportedChar = errors.New("character outside supported range")
	ErrInvalidKey      = errors.New("invalid key")
)
