/*
 * Copyright 2022 The Gremlins Authors
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

// Package configuration loads mutantkraken.config.json (flags > env >
// file > defaults) into a mutex-guarded Viper instance, and exposes
// the typed RunConfig the driver package consumes.
package configuration

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/kraken-mutate/mutantkraken/internal/driver"
	"github.com/kraken-mutate/mutantkraken/internal/log"
	"github.com/kraken-mutate/mutantkraken/internal/operator"
)

// This is the list of the keys available in the config file and as flags.
const (
	GeneralTimeoutKey         = "general.timeout"
	GeneralOverallTimeoutKey  = "general.overall_timeout"
	GeneralOperatorsKey       = "general.operators"
	GeneralAnnotateMutantsKey = "general.annotate_mutants"
	IgnoreFilesKey            = "ignore.ignore_files"
	IgnoreDirectoriesKey      = "ignore.ignore_directories"
	ThreadingMaxThreadsKey    = "threading.max_threads"
	OutputDisplayEndTableKey  = "output.display_end_table"
	LoggingLogLevelKey        = "logging.log_level"
)

const (
	cfgName      = "mutantkraken.config"
	envVarPrefix = "MUTANTKRAKEN"

	xdgConfigHomeKey = "XDG_CONFIG_HOME"

	windowsOS = "windows"
)

// DefaultMaxThreads is used when threading.max_threads is absent, per
// the external config schema.
const DefaultMaxThreads = 30

// DefaultPerMutantTimeout is used when general.timeout is absent or
// zero: every mutant gets a bounded build+test budget by default
// rather than none.
const DefaultPerMutantTimeout = 30 * time.Second

// DefaultIgnoreFiles is the default ignore_files pattern list: skip
// the language's own test-class naming convention.
var DefaultIgnoreFiles = []string{`^.*Test\.[^.]*$`}

// DefaultIgnoreDirectories is the default ignore_directories list.
var DefaultIgnoreDirectories = []string{"dist", "build", "bin", ".gradle", ".idea", "gradle"}

// Init initializes the Viper configuration for mutantkraken.
//
// It sets the configuration file name as mutantkraken.config.json,
// adds the given paths as config search paths, and enables
// AutomaticEnv with an MUTANTKRAKEN prefix. Environment variables take
// precedence over the file and must be in the format
// MUTANTKRAKEN_<SECTION>_<KEY>.
func Init(cPaths []string) error {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	viper.SetEnvKeyReplacer(replacer)
	viper.SetEnvPrefix(envVarPrefix)
	viper.AutomaticEnv()
	viper.SetConfigName(cfgName)
	viper.SetConfigType("json")

	if isSpecificFile(cPaths) {
		viper.SetConfigFile(cPaths[0])
		if err := viper.ReadInConfig(); err != nil {
			return err
		}
	} else if arePathsNotSet(cPaths) {
		cPaths = defaultConfigPaths()
	}

	for _, p := range cPaths {
		viper.AddConfigPath(p)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warnf("config file unreadable, falling back to defaults: %s", err)
		}
	}

	return nil
}

func isSpecificFile(cPaths []string) bool {
	return len(cPaths) == 1 && filepath.Ext(cPaths[0]) != ""
}

func arePathsNotSet(cPaths []string) bool {
	return len(cPaths) == 0 || len(cPaths) == 1 && cPaths[0] == ""
}

func defaultConfigPaths() []string {
	result := make([]string, 0, 5)

	// Current directory first: the project root is the common case.
	result = append(result, ".")

	if root := findModuleRoot(); root != "" && root != "." {
		result = append(result, root)
	}

	homeLocation, err := homedir.Expand("~/.mutantkraken")
	if err == nil {
		result = append(result, homeLocation)
	}

	xchLocation, _ := homedir.Expand("~/.config")
	if x := os.Getenv(xdgConfigHomeKey); x != "" {
		xchLocation = x
	}
	result = append(result, filepath.Join(xchLocation, "mutantkraken"))

	if runtime.GOOS != windowsOS {
		result = append(result, "/etc/mutantkraken")
	}

	return result
}

// findModuleRoot walks upward from the working directory looking for
// a build-tool marker. Configuration is initialized before any
// project is located, so this can't simply call into gradleproject.
func findModuleRoot() string {
	path, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		for _, marker := range []string{"settings.gradle", "settings.gradle.kts"} {
			if fi, err := os.Stat(filepath.Join(path, marker)); err == nil && !fi.IsDir() {
				return path
			}
		}
		d := filepath.Dir(path)
		if d == path {
			break
		}
		path = d
	}

	return ""
}

var mutex sync.RWMutex

// Set offers synchronized access to Viper.
func Set[T any](k string, v T) {
	mutex.Lock()
	defer mutex.Unlock()
	viper.Set(k, v)
}

// Get offers synchronized access to Viper.
func Get[T any](k string) T {
	var r T
	mutex.RLock()
	defer mutex.RUnlock()
	r, _ = viper.Get(k).(T)

	return r
}

// Reset is used mainly for testing purposes, to clean up the Viper instance.
func Reset() {
	mutex.Lock()
	defer mutex.Unlock()
	viper.Reset()
}

// RunConfig builds the typed driver.RunConfig from whatever Init
// loaded, applying this package's documented defaults for every field
// left unset.
func RunConfig(projectRoot string) driver.RunConfig {
	return driver.RunConfig{
		ProjectRoot:         projectRoot,
		IgnoreDirectories:   ignoreDirectories(),
		IgnoreFileRegexes:   ignoreFileRegexes(),
		EnabledOperators:    enabledOperators(),
		MaxDiscoveryThreads: maxThreads(),
		PerMutantTimeout:    perMutantTimeout(),
		OverallTimeout:      overallTimeout(),
		AnnotateMutants:     Get[bool](GeneralAnnotateMutantsKey),
		DisplaySummaryTable: Get[bool](OutputDisplayEndTableKey),
	}
}

func ignoreDirectories() []string {
	if v := Get[[]any](IgnoreDirectoriesKey); len(v) > 0 {
		return toStrings(v)
	}

	return DefaultIgnoreDirectories
}

func ignoreFileRegexes() []*regexp.Regexp {
	patterns := DefaultIgnoreFiles
	if v := Get[[]any](IgnoreFilesKey); len(v) > 0 {
		patterns = toStrings(v)
	}

	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			log.Warnf("ignoring invalid ignore_files pattern %q: %s", p, err)

			continue
		}
		out = append(out, re)
	}

	return out
}

func enabledOperators() []string {
	v := Get[[]any](GeneralOperatorsKey)
	if len(v) == 0 {
		return nil // nil means operator.All() to the driver
	}

	return toStrings(v)
}

func maxThreads() int {
	if n := Get[int](ThreadingMaxThreadsKey); n > 0 {
		return n
	}
	if f := Get[float64](ThreadingMaxThreadsKey); f > 0 {
		return int(f)
	}

	return DefaultMaxThreads
}

func perMutantTimeout() time.Duration {
	if f := Get[float64](GeneralTimeoutKey); f > 0 {
		return time.Duration(f * float64(time.Second))
	}

	return DefaultPerMutantTimeout
}

func overallTimeout() time.Duration {
	if f := Get[float64](GeneralOverallTimeoutKey); f > 0 {
		return time.Duration(f * float64(time.Second))
	}

	return 0
}

func toStrings(v []any) []string {
	out := make([]string, 0, len(v))
	for _, e := range v {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}

	return out
}

// OperatorNames lists every registered operator name, used by `config
// --setup` to populate the template file's general.operators default.
func OperatorNames() []string {
	ops := operator.All()
	names := make([]string, 0, len(ops))
	for _, op := range ops {
		names = append(names, string(op.Name()))
	}

	return names
}
