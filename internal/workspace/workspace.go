package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"realestate/internal/domain"
	"realestate/internal/programs/realestate"
	"realestate/internal/protocol/anchor"
)

// Provider environment variables read by Anchor tooling.
const (
	EnvProviderURL = "ANCHOR_PROVIDER_URL"
	EnvWallet      = "ANCHOR_WALLET"

	envPrefix  = "REALESTATE"
	configName = "Anchor"
)

// Config is the resolved workspace configuration.
type Config struct {
	Provider ProviderConfig `mapstructure:"provider"`
	Build    BuildConfig    `mapstructure:"build"`
	Log      LogConfig      `mapstructure:"log"`
	Trace    TraceConfig    `mapstructure:"trace"`
}

type ProviderConfig struct {
	Cluster             string        `mapstructure:"cluster"`
	Wallet              string        `mapstructure:"wallet"`
	Commitment          string        `mapstructure:"commitment"`
	PreflightCommitment string        `mapstructure:"preflight_commitment"`
	Timeout             time.Duration `mapstructure:"timeout"`
}

type BuildConfig struct {
	Command string        `mapstructure:"command"`
	Dir     string        `mapstructure:"dir"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type TraceConfig struct {
	File string `mapstructure:"file"`
}

// FlagKeys maps command-line flag names to the config keys they override.
var FlagKeys = map[string]string{
	"url":        "provider.cluster",
	"wallet":     "provider.wallet",
	"commitment": "provider.commitment",
	"trace-file": "trace.file",
	"dir":        "build.dir",
	"cmd":        "build.command",
}

// ProgramRef identifies a program to invoke.
type ProgramRef struct {
	Name string
	ID   domain.Pubkey
	IDL  *anchor.IDL
}

// Workspace is a loaded program workspace.
type Workspace struct {
	Root string
	// AnchorRoot holds the Anchor.toml in use: Root, or the program
	// directory when Root has none. Equal to Root when neither has one.
	AnchorRoot string
	ConfigFile string
	Config     Config

	v   *viper.Viper
	log *zap.Logger
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("provider.cluster", "localnet")
	v.SetDefault("provider.wallet", "~/.config/solana/id.json")
	v.SetDefault("provider.commitment", string(domain.CommitmentProcessed))
	v.SetDefault("provider.preflight_commitment", string(domain.CommitmentProcessed))
	v.SetDefault("provider.timeout", 90*time.Second)
	v.SetDefault("build.command", "anchor build")
	v.SetDefault("build.dir", "real-estate")
	v.SetDefault("build.timeout", 10*time.Minute)
	v.SetDefault("log.level", "info")
	v.SetDefault("trace.file", "")
}

// Load reads the workspace rooted at root. A missing Anchor.toml is not an
// error. Flags in flags that appear in FlagKeys override the matching keys
// when set on the command line; flags may be nil.
func Load(root string, flags *pflag.FlagSet, log *zap.Logger) (*Workspace, error) {
	if log == nil {
		log = zap.NewNop()
	}
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.AddConfigPath(root)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("provider.cluster", EnvProviderURL, envPrefix+"_PROVIDER_CLUSTER"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("provider.wallet", EnvWallet, envPrefix+"_PROVIDER_WALLET"); err != nil {
		return nil, err
	}

	setDefaults(v)

	if flags != nil {
		for name, key := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	w := &Workspace{Root: root, AnchorRoot: root, v: v, log: log}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read %s.toml: %w", configName, err)
		}
		if err := w.readProgramDirConfig(); err != nil {
			return nil, err
		}
	} else {
		w.ConfigFile = v.ConfigFileUsed()
	}

	if err := v.Unmarshal(&w.Config); err != nil {
		return nil, fmt.Errorf("decode workspace config: %w", err)
	}
	if _, err := w.Commitment(); err != nil {
		return nil, err
	}
	if _, err := w.PreflightCommitment(); err != nil {
		return nil, err
	}
	return w, nil
}

// readProgramDirConfig falls back to the Anchor.toml inside the build
// directory, which is where `anchor init` puts it.
func (w *Workspace) readProgramDirConfig() error {
	dir, err := resolvePath(w.Root, w.v.GetString("build.dir"))
	if err != nil {
		return err
	}
	path := filepath.Join(dir, configName+".toml")
	if _, err := os.Stat(path); err != nil {
		w.log.Debug("no Anchor.toml found; using defaults and environment",
			zap.String("root", w.Root), zap.String("program_dir", dir))
		return nil
	}
	w.v.SetConfigFile(path)
	if err := w.v.ReadInConfig(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	w.AnchorRoot = dir
	w.ConfigFile = path
	w.log.Debug("using program directory Anchor.toml", zap.String("path", path))
	return nil
}

// ClusterURL returns the RPC endpoint of the configured cluster.
func (w *Workspace) ClusterURL() string {
	return domain.ResolveCluster(w.Config.Provider.Cluster)
}

// ClusterName returns the name used for the [programs.<cluster>] table.
func (w *Workspace) ClusterName() string {
	return domain.ClusterName(w.Config.Provider.Cluster)
}

// WalletPath returns the payer keypair path with ~ expanded. Relative paths
// are resolved against AnchorRoot, as Anchor does.
func (w *Workspace) WalletPath() (string, error) {
	return resolvePath(w.AnchorRoot, w.Config.Provider.Wallet)
}

// BuildDir returns the program directory the build runs in, relative to
// Root.
func (w *Workspace) BuildDir() (string, error) {
	return resolvePath(w.Root, w.Config.Build.Dir)
}

func resolvePath(base, p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(base, p)
	}
	return p, nil
}

// Commitment returns the confirmation commitment level.
func (w *Workspace) Commitment() (domain.Commitment, error) {
	return domain.ParseCommitment(w.Config.Provider.Commitment)
}

// PreflightCommitment returns the commitment used for simulation.
func (w *Workspace) PreflightCommitment() (domain.Commitment, error) {
	return domain.ParseCommitment(w.Config.Provider.PreflightCommitment)
}

// Program resolves a program by name. The name may be given in PascalCase,
// snake_case or kebab-case. The address is taken from the generated IDL,
// then from Anchor.toml for the selected cluster, then from the built-in
// program definitions.
func (w *Workspace) Program(name string) (ProgramRef, error) {
	ref := ProgramRef{Name: anchor.SnakeCase(name)}

	if path, ok := w.findIDL(ref.Name); ok {
		idl, err := anchor.LoadIDL(path)
		if err != nil {
			return ProgramRef{}, err
		}
		ref.IDL = idl
		id, ok, err := idl.ProgramID()
		if err != nil {
			return ProgramRef{}, fmt.Errorf("idl %s: %w", path, err)
		}
		if ok {
			ref.ID = id
			w.log.Debug("program address from idl", zap.String("program", ref.Name), zap.Stringer("id", id))
			return ref, nil
		}
	}

	key := "programs." + w.ClusterName() + "." + ref.Name
	if addr := w.v.GetString(key); addr != "" {
		id, err := domain.ParsePubkey(addr)
		if err != nil {
			return ProgramRef{}, fmt.Errorf("%s: %w", key, err)
		}
		ref.ID = id
		w.log.Debug("program address from Anchor.toml", zap.String("program", ref.Name), zap.Stringer("id", id))
		return ref, nil
	}

	if ref.Name == realestate.Name {
		ref.ID = realestate.ProgramID
		return ref, nil
	}
	return ProgramRef{}, fmt.Errorf("program %q not found in workspace %s", name, w.AnchorRoot)
}

// findIDL searches AnchorRoot and then the build directory for the
// program's generated IDL.
func (w *Workspace) findIDL(name string) (string, bool) {
	if path, ok := anchor.FindIDL(w.AnchorRoot, name); ok {
		return path, true
	}
	dir, err := w.BuildDir()
	if err != nil || dir == w.AnchorRoot {
		return "", false
	}
	return anchor.FindIDL(dir, name)
}
