package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

const (
	ConfigurationName = "config.yaml"
	AuditLogName      = "audit.jsonl"
	HistoryName       = "history"
)

type Configuration struct {
	dir      string
	configFs afero.Fs

	Motd   string `json:"motd"`
	Prompt string `json:"prompt" validate:"required"`

	// TrustMode is the mode new sessions start in. Commands defined in
	// a more trusted mode than the session's are hidden from lookup.
	TrustMode string `json:"trust_mode" validate:"oneof=full restricted"`

	Search Search `json:"search"`

	Env map[string]string `json:"env"`

	Aliases []Alias `json:"aliases" validate:"unique=Name"`
}

// Search configures command path search.
type Search struct {
	LookupDirs []string `json:"lookup_dirs" validate:"required,min=1"`

	ScriptExt string   `json:"script_ext" validate:"required,startswith=."`
	ModuleExt string   `json:"module_ext" validate:"required,startswith=."`
	DataExt   string   `json:"data_ext" validate:"required,startswith=."`
	ExecExts  []string `json:"exec_exts" validate:"dive,startswith=."`

	// PathAllowList guards path-like lookups from remote origins.
	// Entries are path prefixes, "*" allows everything, an empty list
	// denies everything.
	PathAllowList []string `json:"path_allow_list"`

	FuzzyMatching         bool `json:"fuzzy_matching"`
	AbbreviationExpansion bool `json:"abbreviation_expansion"`
	LiteralBeforeWildcard bool `json:"literal_before_wildcard"`
}

type Alias struct {
	Name        string `json:"name" validate:"required"`
	Command     string `json:"command" validate:"required"`
	Description string `json:"description"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// Dir returns the directory the configuration was loaded from, or ""
// for the built-in default.
func (c *Configuration) Dir() string {
	return c.dir
}

func (c *Configuration) fs() afero.Fs {
	return c.configFs
}

// OpenAuditLog opens the audit trail in an append only state.
func (c *Configuration) OpenAuditLog() (afero.File, error) {
	return c.fs().OpenFile(AuditLogName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

func (c *Configuration) ReadAuditLog() (afero.File, error) {
	return c.fs().OpenFile(AuditLogName, os.O_RDONLY, 0600)
}

// HistoryPath returns the path the interactive prompt stores its
// history under.
func (c *Configuration) HistoryPath() string {
	return filepath.Join(c.dir, HistoryName)
}

// Default returns the embedded default configuration. It is backed by
// memory until a configuration is loaded from a directory.
func Default() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	out.configFs = afero.NewMemMapFs()
	return &out
}
