package config

import (
	_ "embed"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
	AppLogName        = "app.log"
)

const (
	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"

	SortNone = "none"
	SortPID  = "pid"
)

type Configuration struct {
	configFs afero.Fs

	Prompt      string `json:"prompt"`
	QuitCommand string `json:"quit_command" validate:"required"`
	Color       string `json:"color" validate:"oneof=always auto never"`
	EventLog    bool   `json:"event_log"`

	Ps Ps `json:"ps"`
}

type Ps struct {
	Sort string `json:"sort" validate:"oneof=none pid"`
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

func (c *Configuration) fs() afero.Fs {
	return c.configFs
}

// HasStorage reports whether the configuration is backed by a directory.
func (c *Configuration) HasStorage() bool {
	return c.configFs != nil
}

// OpenAppLog opens the application log in an append only state.
func (c *Configuration) OpenAppLog() (afero.File, error) {
	if !c.HasStorage() {
		return nil, os.ErrNotExist
	}
	return c.fs().OpenFile(AppLogName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

func (c *Configuration) ReadAppLog() (afero.File, error) {
	if !c.HasStorage() {
		return nil, os.ErrNotExist
	}
	return c.fs().OpenFile(AppLogName, os.O_RDONLY, 0600)
}

// Default returns the built-in configuration without a backing directory.
func Default() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
