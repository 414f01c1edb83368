package service

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrScoreOutOfBand = errors.New("score out of band")
	ErrInvalidParams  = errors.New("invalid params")
)
