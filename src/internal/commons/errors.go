package commons

import "errors"

var ErrRecordNotFound = errors.New("Record not found")
var ErrDuplicateAccount = errors.New("Account number already in use")
var ErrStaleBalance = errors.New("Account balance changed since it was read")
