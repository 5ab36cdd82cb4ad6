package app

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/witnet/witnetd/domain/chainmanager"
	"github.com/witnet/witnetd/domain/consensus"
	"github.com/witnet/witnetd/domain/consensus/datastructures/chainstore"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
	"github.com/witnet/witnetd/domain/miningmanager"
	"github.com/witnet/witnetd/infrastructure/config"
	"github.com/witnet/witnetd/infrastructure/db/database/ldb"
	"github.com/witnet/witnetd/infrastructure/logger"
	"github.com/witnet/witnetd/infrastructure/os/signal"
	"github.com/witnet/witnetd/util/panics"
)

type witnetdApp struct {
	cfg *config.Config
}

// StartApp starts witnetd, and blocks until it finishes running
func StartApp() error {
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	logger.InitLog(cfg.LogFile, cfg.ErrLogFile)
	defer logger.BackendLog.Close()
	defer panics.HandlePanic(log, nil)

	err = logger.ParseAndSetLogLevels(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	app := &witnetdApp{cfg: cfg}
	err = app.main(signal.InterruptListener())
	if err != nil {
		log.Criticalf("%+v", err)
		return err
	}
	return nil
}

func (app *witnetdApp) main(interrupt <-chan struct{}) error {
	params := app.cfg.NetParams()
	log.Infof("Starting witnetd on %s", params.Name)

	if app.cfg.Reset {
		log.Infof("Deleting the stored chain at %s", app.cfg.DataDir)
		err := os.RemoveAll(app.cfg.DataDir)
		if err != nil {
			return errors.WithStack(err)
		}
	}

	db, err := openDB(app.cfg.DataDir, app.cfg.DBCacheSizeMiB)
	if err != nil {
		return err
	}
	defer func() {
		log.Infof("Gracefully shutting down the database...")
		err := db.Close()
		if err != nil {
			log.Errorf("Failed to close the database: %s", err)
		}
	}()

	chainStore, err := chainstore.New(db)
	if err != nil {
		return err
	}
	consensusInstance := consensus.New(params, nil)
	miningManager := miningmanager.NewFactory().NewMiningManager(consensusInstance)
	chainManager, err := chainmanager.New(consensusInstance, chainStore, miningManager)
	if err != nil {
		return err
	}

	currentEpoch := externalapi.Epoch(app.cfg.Epoch)
	if currentEpoch == 0 {
		currentEpoch = params.EpochAt(time.Now())
	}
	log.Infof("Current epoch is %d", currentEpoch)

	if app.cfg.BlocksFile != "" {
		err = importBlocksFile(app.cfg.BlocksFile, chainManager, currentEpoch, interrupt)
		if err != nil {
			return err
		}
	}

	if app.cfg.MinerPKH != nil && !signal.InterruptRequested(interrupt) {
		err = mineBlock(chainManager, currentEpoch, *app.cfg.MinerPKH)
		if err != nil {
			return err
		}
	}

	if app.cfg.ExportFile != "" {
		err = exportBlocksFile(app.cfg.ExportFile, chainManager)
		if err != nil {
			return err
		}
	}

	logChainState(chainManager)
	return nil
}

func openDB(dataDir string, cacheSizeMiB int) (*ldb.LevelDB, error) {
	err := os.MkdirAll(dataDir, 0700)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	versionFileExists, err := checkDatabaseVersion(dataDir)
	if err != nil {
		return nil, err
	}

	log.Infof("Loading database from '%s'", dataDir)
	db, err := ldb.NewLevelDB(dataDir, cacheSizeMiB)
	if err != nil {
		return nil, err
	}

	if !versionFileExists {
		err = createDatabaseVersionFile(dataDir)
		if err != nil {
			closeErr := db.Close()
			if closeErr != nil {
				log.Errorf("Failed to close the database: %s", closeErr)
			}
			return nil, err
		}
	}
	return db, nil
}

func importBlocksFile(path string, chainManager *chainmanager.ChainManager, currentEpoch externalapi.Epoch,
	interrupt <-chan struct{}) error {

	file, err := os.Open(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer file.Close()

	imported, err := importBlocks(file, chainManager, currentEpoch, interrupt)
	log.Infof("Imported %d blocks from %s", imported, path)
	return err
}

func exportBlocksFile(path string, chainManager *chainmanager.ChainManager) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}

	exported, err := exportBlocks(file, chainManager)
	closeErr := file.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return errors.WithStack(closeErr)
	}
	log.Infof("Exported %d blocks to %s", exported, path)
	return nil
}

func mineBlock(chainManager *chainmanager.ChainManager, currentEpoch externalapi.Epoch,
	minerPKH externalapi.PublicKeyHash) error {

	if currentEpoch <= chainManager.Tip().Checkpoint {
		log.Warnf("Not mining: the chain tip is already at epoch %d", chainManager.Tip().Checkpoint)
		return nil
	}

	block := chainManager.BlockTemplate(currentEpoch, minerPKH)
	_, err := chainManager.ProcessBlock(block, currentEpoch)
	if err != nil {
		return errors.Wrapf(err, "mined an invalid block")
	}
	logBlockRewards(chainManager, block)
	return nil
}
