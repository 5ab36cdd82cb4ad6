package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcutil"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
	"github.com/witnet/witnetd/domain/consensus/utils/addresses"
	"github.com/witnet/witnetd/infrastructure/logger"
)

const (
	defaultConfigFilename = "witnetd.conf"
	defaultDataDirname    = "data"
	defaultLogLevel       = "info"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "witnetd.log"
	defaultErrLogFilename = "witnetd_err.log"
	defaultDBCacheSizeMiB = 64
)

var (
	// DefaultAppDir is the default home directory for witnetd.
	DefaultAppDir = btcutil.AppDataDir("witnetd", false)

	defaultConfigFile = filepath.Join(DefaultAppDir, defaultConfigFilename)
)

// Flags defines the configuration options for witnetd.
//
// See LoadConfig for details on the configuration load process.
type Flags struct {
	ConfigFile     string `short:"C" long:"configfile" description:"Path to configuration file"`
	AppDir         string `short:"b" long:"appdir" description:"Directory to store data"`
	LogDir         string `long:"logdir" description:"Directory to log output."`
	LogLevel       string `short:"d" long:"loglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	BlocksFile     string `long:"blocks" description:"Import the length prefixed serialized blocks stored in this file"`
	ExportFile     string `long:"export" description:"Write the blocks of the chain to this file, in the format --blocks reads"`
	Epoch          uint32 `long:"epoch" description:"Use this epoch as the current epoch instead of deriving it from the clock"`
	MinerAddress   string `long:"mineraddr" description:"Build a block template for the next epoch paying its reward to this address"`
	DBCacheSizeMiB int    `long:"dbcache" description:"Size of the database cache in MiB"`
	Reset          bool   `long:"reset" description:"Delete the stored chain before starting"`
	NetworkFlags
}

// Config defines the configuration options for witnetd, as resolved from
// Flags.
type Config struct {
	*Flags
	DataDir    string
	LogFile    string
	ErrLogFile string

	// MinerPKH is set when a miner address was given
	MinerPKH *externalapi.PublicKeyHash
}

func cleanAndExpandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(DefaultAppDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}

	return filepath.Clean(os.ExpandEnv(path))
}

func defaultFlags() *Flags {
	return &Flags{
		ConfigFile:     defaultConfigFile,
		AppDir:         DefaultAppDir,
		LogLevel:       defaultLogLevel,
		DBCacheSizeMiB: defaultDBCacheSizeMiB,
	}
}

// LoadConfig initializes and parses the config using a config file and command
// line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
func LoadConfig(args []string) (*Config, error) {
	cfgFlags := defaultFlags()

	preCfg := *cfgFlags
	preParser := flags.NewParser(&preCfg, flags.HelpFlag)
	_, err := preParser.ParseArgs(args)
	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stderr, err)
			return nil, err
		}
	}

	appName := filepath.Base(os.Args[0])
	appName = strings.TrimSuffix(appName, filepath.Ext(appName))
	usageMessage := fmt.Sprintf("Use %s -h to show usage", appName)

	parser := flags.NewParser(cfgFlags, flags.Default)
	err = flags.NewIniParser(parser).ParseFile(preCfg.ConfigFile)
	if err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			fmt.Fprintf(os.Stderr, "Error parsing config file: %s\n", err)
			fmt.Fprintln(os.Stderr, usageMessage)
			return nil, err
		}
	}

	_, err = parser.ParseArgs(args)
	if err != nil {
		return nil, err
	}

	cfg := &Config{Flags: cfgFlags}
	err = cfg.ResolveNetwork(parser)
	if err != nil {
		return nil, err
	}

	if cfg.LogLevel == "show" {
		fmt.Println("Supported subsystems", logger.SupportedSubsystems())
		os.Exit(0)
	}

	if cfg.DBCacheSizeMiB <= 0 {
		err := errors.Errorf("the --dbcache option must be positive, got %d", cfg.DBCacheSizeMiB)
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usageMessage)
		return nil, err
	}

	if cfg.MinerAddress != "" {
		pkh, err := addresses.DecodeAddress(cfg.NetParams().Bech32HRP, cfg.MinerAddress)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			fmt.Fprintln(os.Stderr, usageMessage)
			return nil, err
		}
		cfg.MinerPKH = &pkh
	}

	// Namespace the data and log directories per network, since their
	// contents are specific to a network
	cfg.AppDir = cleanAndExpandPath(cfg.AppDir)
	cfg.DataDir = filepath.Join(cfg.AppDir, cfg.NetParams().Name, defaultDataDirname)
	if cfg.LogDir == "" {
		cfg.LogDir = filepath.Join(cfg.AppDir, defaultLogDirname)
	}
	cfg.LogDir = filepath.Join(cleanAndExpandPath(cfg.LogDir), cfg.NetParams().Name)
	cfg.LogFile = filepath.Join(cfg.LogDir, defaultLogFilename)
	cfg.ErrLogFile = filepath.Join(cfg.LogDir, defaultErrLogFilename)

	if cfg.BlocksFile != "" {
		cfg.BlocksFile = cleanAndExpandPath(cfg.BlocksFile)
	}
	if cfg.ExportFile != "" {
		cfg.ExportFile = cleanAndExpandPath(cfg.ExportFile)
	}

	return cfg, nil
}
