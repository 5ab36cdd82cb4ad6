package utxotransitionmanager

import (
	"github.com/witnet/witnetd/infrastructure/logger"
)

var log = logger.RegisterSubSystem("UTXO")
