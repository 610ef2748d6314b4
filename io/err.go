package io

import (
	"errors"

	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	// Image errors
	ErrRomTooLarge = errors.New(f("image larger than memory"))
)
