package protocol

import "github.com/op/go-logging"

var log = logging.MustGetLogger("protocol")
