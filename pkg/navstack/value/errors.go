package value

import "errors"

// ErrClosed is returned by Mailbox.Receive after Close.
var ErrClosed = errors.New("value: mailbox closed")
