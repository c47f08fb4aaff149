package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/procwarden/procwarden/scanner/domain"
	"github.com/spf13/viper"
)

const (
	DefaultConfigName  = "scanner_config"
	DefaultCyclePeriod = 3 * time.Second
	DefaultServerHost  = "127.0.0.1:8090"
	envPrefix          = "PROCWARDEN"
)

type ServerConfig struct {
	Host string `mapstructure:"host"`
}

// ListenAddr returns the configured listen address, DefaultServerHost when unset.
func (c ServerConfig) ListenAddr() string {
	if c.Host == "" {
		return DefaultServerHost
	}
	return c.Host
}

// Loopback reports whether the listen address only accepts local connections. An empty
// host part (":8090") binds every interface.
func (c ServerConfig) Loopback() bool {
	host, _, err := net.SplitHostPort(c.ListenAddr())
	if err != nil {
		return false
	}
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	FilePath   string `mapstructure:"file_path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// ScanConfig is the [scanner] section.
type ScanConfig struct {
	Backend          string        `mapstructure:"backend"`
	ProcRoot         string        `mapstructure:"proc_root"`
	CyclePeriod      time.Duration `mapstructure:"cycle_period"`
	SuspiciousNames  []string      `mapstructure:"suspicious_names"`
	KnownDigests     []string      `mapstructure:"known_digests"`
	KnownDigestsFile string        `mapstructure:"known_digests_file"`
	ProtectedNames   []string      `mapstructure:"protected_names"`
	AutoStart        bool          `mapstructure:"auto_start"`
	PIDFile          string        `mapstructure:"pid_file"`
}

type DigestConfig struct {
	ChunkSize    int     `mapstructure:"chunk_size"`
	CacheSize    int     `mapstructure:"cache_size"`
	MaxPerSecond float64 `mapstructure:"max_per_second"`
}

// SecretValue is a credential that must not show up in logs.
type SecretValue string

func (s SecretValue) String() string {
	if s == "" {
		return ""
	}
	return "******"
}

func (s SecretValue) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// MongoDBConfig is the optional detection audit store.
type MongoDBConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	Database       string        `mapstructure:"database"`
	User           string        `mapstructure:"user"`
	Password       SecretValue   `mapstructure:"password"`
	Port           string        `mapstructure:"port"`
	Host           string        `mapstructure:"host"`
	Options        string        `mapstructure:"options"`
	Migrate        bool          `mapstructure:"migrate"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// URI is the client connection string, without a database path.
func (c MongoDBConfig) URI() string {
	return c.uri("/")
}

// DatabaseURI carries the database name in the path, as the migration driver expects.
func (c MongoDBConfig) DatabaseURI() string {
	return c.uri("/" + c.Database)
}

func (c MongoDBConfig) uri(path string) string {
	u := url.URL{
		Scheme:   "mongodb",
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     path,
		RawQuery: c.Options,
	}
	if c.User != "" {
		u.User = url.UserPassword(c.User, string(c.Password))
	}
	return u.String()
}

// AuthConfig guards the control endpoints with RS256 bearer tokens.
type AuthConfig struct {
	Enabled              bool        `mapstructure:"enabled"`
	RsaPrivateKeyPem     SecretValue `mapstructure:"rsa_private_key_pem"`
	RsaPrivateKeyFile    string      `mapstructure:"rsa_private_key_file"`
	TokenDurationHr      int         `mapstructure:"token_duration_hr"` // in hours
	OperatorPasswordHash SecretValue `mapstructure:"operator_password_hash"`
}

// PrivateKeyPEM returns the inline key, or the content of rsa_private_key_file.
func (c AuthConfig) PrivateKeyPEM() (string, error) {
	if c.RsaPrivateKeyPem != "" {
		return string(c.RsaPrivateKeyPem), nil
	}
	if c.RsaPrivateKeyFile == "" {
		return "", errors.New("auth: neither rsa_private_key_pem nor rsa_private_key_file is set")
	}
	data, err := os.ReadFile(c.RsaPrivateKeyFile)
	if err != nil {
		return "", errors.Wrap(err, "read rsa private key file")
	}
	return string(data), nil
}

type ScannerConfig struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Scanner ScanConfig    `mapstructure:"scanner"`
	Digest  DigestConfig  `mapstructure:"digest"`
	MongoDB MongoDBConfig `mapstructure:"mongodb"`
	Auth    AuthConfig    `mapstructure:"auth"`
}

var backends = map[string]struct{}{
	"procfs":   {},
	"gopsutil": {},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", DefaultServerHost)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file_path", "")
	v.SetDefault("logging.max_size_mb", 100)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("scanner.backend", defaultBackend())
	v.SetDefault("scanner.proc_root", "/proc")
	v.SetDefault("scanner.cycle_period", DefaultCyclePeriod)
	v.SetDefault("scanner.suspicious_names", []string{})
	v.SetDefault("scanner.known_digests", []string{})
	v.SetDefault("scanner.known_digests_file", "")
	v.SetDefault("scanner.protected_names", []string{})
	v.SetDefault("scanner.auto_start", true)
	v.SetDefault("scanner.pid_file", defaultPIDFile())
	v.SetDefault("digest.chunk_size", 4096)
	v.SetDefault("digest.cache_size", 1024)
	v.SetDefault("digest.max_per_second", 0)
	v.SetDefault("mongodb.enabled", false)
	v.SetDefault("mongodb.host", "127.0.0.1")
	v.SetDefault("mongodb.port", "27017")
	v.SetDefault("mongodb.database", "procwarden")
	v.SetDefault("mongodb.user", "")
	v.SetDefault("mongodb.password", "")
	v.SetDefault("mongodb.options", "authSource=admin")
	v.SetDefault("mongodb.migrate", true)
	v.SetDefault("mongodb.connect_timeout", 5*time.Second)
	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.rsa_private_key_pem", "")
	v.SetDefault("auth.rsa_private_key_file", "")
	v.SetDefault("auth.token_duration_hr", 24)
	v.SetDefault("auth.operator_password_hash", "")
}

// defaultPIDFile keeps the lock out of world-writable directories: /run for root, the
// user's cache directory otherwise.
func defaultPIDFile() string {
	if runtime.GOOS != "windows" && os.Geteuid() == 0 {
		return "/run/procwarden/procwarden.pid"
	}
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "procwarden", "procwarden.pid")
	}
	return filepath.Join(GetAbsPath("run"), "procwarden.pid")
}

func defaultBackend() string {
	if runtime.GOOS == "linux" {
		return "procfs"
	}
	return "gopsutil"
}

// InitScannerConfig reads <configName>.toml from configPath and the repository config
// directory. Every key can be overridden by a PROCWARDEN_ prefixed environment variable,
// e.g. PROCWARDEN_SCANNER_CYCLE_PERIOD=10s. A missing file leaves the defaults in place.
func InitScannerConfig(configName string, configPath string) (ScannerConfig, error) {
	var cfg ScannerConfig
	v := viper.New()
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	if configName == "" {
		configName = DefaultConfigName
	}
	v.AddConfigPath(GetAbsPath("config"))
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, err
		}
	}

	err = v.Unmarshal(&cfg)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the scanner cannot run with.
func (c ScannerConfig) Validate() error {
	if _, ok := backends[c.Scanner.Backend]; !ok {
		return fmt.Errorf("scanner.backend: unknown backend %q", c.Scanner.Backend)
	}
	if c.Scanner.CyclePeriod <= 0 {
		return fmt.Errorf("scanner.cycle_period must be positive, got %s", c.Scanner.CyclePeriod)
	}
	if c.Digest.ChunkSize <= 0 {
		return fmt.Errorf("digest.chunk_size must be positive, got %d", c.Digest.ChunkSize)
	}
	if c.Digest.CacheSize < 0 {
		return fmt.Errorf("digest.cache_size must not be negative, got %d", c.Digest.CacheSize)
	}
	if c.Digest.MaxPerSecond < 0 {
		return fmt.Errorf("digest.max_per_second must not be negative, got %v", c.Digest.MaxPerSecond)
	}
	if _, err := domain.NewPatternSet(c.Scanner.SuspiciousNames); err != nil {
		return errors.Wrap(err, "scanner.suspicious_names")
	}
	for i, name := range c.Scanner.ProtectedNames {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("scanner.protected_names: entry #%d is empty", i)
		}
	}
	for i, d := range c.Scanner.KnownDigests {
		if _, err := domain.NormalizeDigest(d); err != nil {
			return errors.Wrapf(err, "scanner.known_digests #%d", i)
		}
	}
	if c.MongoDB.Enabled {
		if c.MongoDB.Host == "" || c.MongoDB.Port == "" {
			return errors.New("mongodb: host and port are required when enabled")
		}
		if c.MongoDB.Database == "" {
			return errors.New("mongodb: database is required when enabled")
		}
	}
	if !c.Auth.Enabled && !c.Server.Loopback() {
		return fmt.Errorf("server.host %q accepts remote connections; enable [auth] or bind a loopback address", c.Server.ListenAddr())
	}
	if c.Auth.Enabled {
		if c.Auth.RsaPrivateKeyPem == "" && c.Auth.RsaPrivateKeyFile == "" {
			return errors.New("auth: a rsa private key is required when enabled")
		}
		if c.Auth.OperatorPasswordHash == "" {
			return errors.New("auth: operator_password_hash is required when enabled")
		}
	}
	return nil
}

// LoadKnownDigests merges the inline digests with the digest list file, if configured.
func (c ScanConfig) LoadKnownDigests() ([]string, error) {
	digests := make([]string, 0, len(c.KnownDigests))
	digests = append(digests, c.KnownDigests...)
	if c.KnownDigestsFile == "" {
		return digests, nil
	}
	f, err := os.Open(c.KnownDigestsFile)
	if err != nil {
		return nil, errors.Wrap(err, "open known digests file")
	}
	defer f.Close()
	fromFile, err := domain.ReadDigestList(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", c.KnownDigestsFile)
	}
	return append(digests, fromFile...), nil
}

// GetAbsPath returns the absolute path by joining the given paths with the project root directory
func GetAbsPath(paths ...string) string {
	_, filePath, _, _ := runtime.Caller(1)
	basePath := filepath.Dir(filePath)
	rootPath := filepath.Join(basePath, "..")
	return filepath.Join(rootPath, filepath.Join(paths...))
}
