package chainmanager

import (
	"github.com/witnet/witnetd/infrastructure/logger"
)

var log = logger.RegisterSubSystem("CHMG")
