package domain

import "errors"

var ErrInvalidAmount = errors.New("The amount must be greater than zero")
var ErrInsufficientBalance = errors.New("Insufficient balance")
