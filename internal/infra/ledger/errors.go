package ledger

import "errors"

var ErrInvalidKey = errors.New("ledger key requires reminder id and date")
