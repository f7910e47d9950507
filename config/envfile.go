package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/msoap/byline"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var (
	envFileCandidates = []string{
		filepath.FromSlash("/etc/sysconfig/" + Program),
		filepath.FromSlash("/etc/default/" + Program),
		filepath.FromSlash("/etc/defaults/" + Program),
	}

	regexpEnvLine = regexp.MustCompile(`^\s*` + EnvPrefix + `_[A-Z][A-Z_]*\s*=`)
)

// readEnvFile returns the configuration keys set by the first existing
// system env file, as lowercase dotted keys without the JNODES_ prefix.
//
// Example:
//
//	JNODES_LOG_FILE=/var/log/jnodes.log => log.file: /var/log/jnodes.log
func readEnvFile(candidates []string) map[string]string {
	m := make(map[string]string)
	for _, p := range candidates {
		reader, err := os.Open(p)
		if err != nil {
			continue
		}
		defer reader.Close()
		envVip := viper.New()
		envVip.SetConfigType("env")
		lr := byline.NewReader(reader)
		lr.GrepByRegexp(regexpEnvLine)
		if err := envVip.ReadConfig(lr); err != nil {
			log.Warn().Err(err).Str("file", p).Msg("read env file")
			return m
		}
		for _, k := range envVip.AllKeys() {
			m[envKeyToConfigKey(k)] = envVip.GetString(k)
		}
		return m
	}
	return m
}

func envKeyToConfigKey(k string) string {
	k = strings.TrimPrefix(strings.ToLower(k), strings.ToLower(EnvPrefix)+"_")
	for _, section := range []string{"log", "palette"} {
		if strings.HasPrefix(k, section+"_") {
			return section + "." + strings.TrimPrefix(k, section+"_")
		}
	}
	return k
}
