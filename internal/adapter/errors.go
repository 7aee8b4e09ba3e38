package adapter

import "errors"

var (
	ErrNoToken        = errors.New("no bearer token set")
	ErrInvalidAddress = errors.New("invalid server address")
	ErrDecodeResponse = errors.New("cannot decode server response")
)
