package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Host       string     `koanf:"host" validate:"required"`
	Port       int        `koanf:"port" validate:"min=1,max=65535"`
	Timezone   string     `koanf:"timezone"`
	Scheduling Scheduling `koanf:"scheduling"`
	Highlights Highlights `koanf:"highlights"`
}

type Scheduling struct {
	BufferMinutes      int `koanf:"bufferminutes" validate:"min=0"`
	WorkdayStartHour   int `koanf:"workdaystarthour" validate:"min=0,max=23"`
	WorkdayEndHour     int `koanf:"workdayendhour" validate:"min=1,max=24,gtfield=WorkdayStartHour"`
	SearchDays         int `koanf:"searchdays" validate:"min=1,max=60"`
	PreferredStartHour int `koanf:"preferredstarthour" validate:"min=0,max=23"`
	PreferredEndHour   int `koanf:"preferredendhour" validate:"min=1,max=24,gtfield=PreferredStartHour"`
}

type Highlights struct {
	WeekStartDay string `koanf:"weekstartday"`
}

func (s Scheduling) Buffer() time.Duration {
	return time.Duration(s.BufferMinutes) * time.Minute
}

// Location resolves the configured timezone; empty means the process local zone.
func (a Application) Location() (*time.Location, error) {
	if a.Timezone == "" {
		return time.Local, nil
	}
	location, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", a.Timezone, err)
	}
	return location, nil
}

func Defaults() Application {
	return Application{
		Host: "0.0.0.0",
		Port: 8181,
		Scheduling: Scheduling{
			BufferMinutes:      15,
			WorkdayStartHour:   9,
			WorkdayEndHour:     17,
			SearchDays:         7,
			PreferredStartHour: 8,
			PreferredEndHour:   20,
		},
		Highlights: Highlights{
			WeekStartDay: "sunday",
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "DAYPLANNER_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "DAYPLANNER_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	if err := validator.New().Struct(app); err != nil {
		return Application{}, fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := app.Location(); err != nil {
		return Application{}, err
	}

	return app, nil
}
