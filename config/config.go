package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// Program is the name of the project and module
	Program = "jnodes"

	// EnvPrefix is the prefix of the environment variables overriding
	// configuration keys. Ex: JNODES_INSECURE=true
	EnvPrefix = "JNODES"
)

type (
	// T is the top level configuration structure
	T struct {
		// Server is the default build server url.
		Server string `mapstructure:"server"`

		// Username is the default acting user.
		Username string `mapstructure:"username"`

		Insecure bool `mapstructure:"insecure"`

		// CertFile and KeyFile are the tls client certificate and key, for
		// servers requiring a client certificate.
		CertFile string `mapstructure:"cert_file"`
		KeyFile  string `mapstructure:"key_file"`

		// Netrc is the path of the netrc file holding the credentials.
		Netrc string `mapstructure:"netrc"`

		// Timeout limits the whole script submission. Zero means no limit,
		// as the online and offline scripts wait unbounded.
		Timeout time.Duration `mapstructure:"timeout"`

		// DialTimeout limits the connection establishment.
		DialTimeout time.Duration `mapstructure:"dial_timeout"`

		CrumbPath  string `mapstructure:"crumb_path"`
		ScriptPath string `mapstructure:"script_path"`

		Log     logSection     `mapstructure:"log"`
		Palette paletteSection `mapstructure:"palette"`
	}

	logSection struct {
		File       string `mapstructure:"file"`
		MaxSize    int    `mapstructure:"max_size"`
		MaxBackups int    `mapstructure:"max_backups"`
		MaxAge     int    `mapstructure:"max_age"`
	}

	paletteSection struct {
		Online       string `mapstructure:"online"`
		Offline      string `mapstructure:"offline"`
		Connecting   string `mapstructure:"connecting"`
		Disconnected string `mapstructure:"disconnected"`
		Error        string `mapstructure:"error"`
	}
)

var (
	// DefaultFile is the configuration file loaded when none is specified.
	DefaultFile = filepath.FromSlash("~/." + Program + ".yaml")

	ErrLoad = errors.New("load configuration")
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server", "")
	v.SetDefault("username", "")
	v.SetDefault("insecure", false)
	v.SetDefault("cert_file", "")
	v.SetDefault("key_file", "")
	v.SetDefault("netrc", filepath.FromSlash("~/.netrc"))
	v.SetDefault("timeout", 0*time.Second)
	v.SetDefault("dial_timeout", 10*time.Second)
	v.SetDefault("crumb_path", "crumbIssuer/api/json")
	v.SetDefault("script_path", "scriptText")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 5)
	v.SetDefault("log.max_backups", 1)
	v.SetDefault("log.max_age", 30)
	v.SetDefault("palette.online", "green")
	v.SetDefault("palette.offline", "hiyellow")
	v.SetDefault("palette.connecting", "cyan")
	v.SetDefault("palette.disconnected", "hiblack")
	v.SetDefault("palette.error", "red")
}

// Load returns the configuration merged from the defaults, the system env
// file, the yaml configuration file and the JNODES_* environment variables,
// in increasing priority order.
//
// An empty configFile selects DefaultFile, which is allowed to be absent.
func Load(configFile string) (T, error) {
	var t T
	v := viper.New()
	setDefaults(v)

	for k, val := range readEnvFile(envFileCandidates) {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	optional := configFile == ""
	if optional {
		configFile = DefaultFile
	}
	p, err := homedir.Expand(configFile)
	if err != nil {
		return t, fmt.Errorf("%w: %s: %s", ErrLoad, configFile, err)
	}
	if _, err := os.Stat(p); err == nil {
		v.SetConfigFile(p)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return t, fmt.Errorf("%w: %s: %s", ErrLoad, p, err)
		}
	} else if !optional || !errors.Is(err, os.ErrNotExist) {
		return t, fmt.Errorf("%w: %s", ErrLoad, err)
	}

	if err := v.Unmarshal(&t); err != nil {
		return t, fmt.Errorf("%w: %s", ErrLoad, err)
	}
	if t.Netrc, err = homedir.Expand(t.Netrc); err != nil {
		return t, fmt.Errorf("%w: netrc: %s", ErrLoad, err)
	}
	if t.Log.File, err = homedir.Expand(t.Log.File); err != nil {
		return t, fmt.Errorf("%w: log.file: %s", ErrLoad, err)
	}
	if t.CertFile, err = homedir.Expand(t.CertFile); err != nil {
		return t, fmt.Errorf("%w: cert_file: %s", ErrLoad, err)
	}
	if t.KeyFile, err = homedir.Expand(t.KeyFile); err != nil {
		return t, fmt.Errorf("%w: key_file: %s", ErrLoad, err)
	}
	return t, nil
}
