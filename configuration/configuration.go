// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/runledger/publish"
	"github.com/bitmark-inc/runledger/query"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultLedgerDatabase   = "ledger.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "runledger.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultQueryBurst = 1
)

// DatabaseType - location of the leveldb files
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// QueryType - limits on the full owner scan
type QueryType struct {
	Rate         float64 `gluamapper:"rate" json:"rate"`
	Burst        int     `gluamapper:"burst" json:"burst"`
	CacheSeconds int     `gluamapper:"cache_seconds" json:"cache_seconds"`
}

// Configuration - the whole file
type Configuration struct {
	DataDirectory string                `gluamapper:"data_directory" json:"data_directory"`
	StartID       uint64                `gluamapper:"start_id" json:"start_id"`
	Database      DatabaseType          `gluamapper:"database" json:"database"`
	Query         QueryType             `gluamapper:"query" json:"query"`
	Publish       publish.Configuration `gluamapper:"publish" json:"publish"`
	Logging       logger.Configuration  `gluamapper:"logging" json:"logging"`
}

// QueryOptions - the query settings in the form used by the query layer
func (c *Configuration) QueryOptions() query.Options {
	return query.Options{
		Rate:        c.Query.Rate,
		Burst:       c.Query.Burst,
		CacheExpiry: time.Duration(c.Query.CacheSeconds) * time.Second,
	}
}

// DatabaseFile - absolute path of the leveldb database
func (c *Configuration) DatabaseFile() string {
	return c.Database.Name
}

// GetConfiguration - read, decode and verify the configuration
func GetConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory: defaultDataDirectory,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultLedgerDatabase,
		},

		Query: QueryType{
			Burst: defaultQueryBurst,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	if options.Query.Rate < 0 || options.Query.Burst < 0 || options.Query.CacheSeconds < 0 {
		return nil, fmt.Errorf("query: negative limit: %+v", options.Query)
	}

	// fail if any of these are not simple file names i.e. must not contain path separator
	// then add the correct directory prefix, file item is first and corresponding directory is second
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, &options.Logging.Directory},
	}
	for _, f := range mustNotBePaths {
		*f[1] = ensureAbsolute(options.DataDirectory, *f[1])
		switch filepath.Dir(*f[0]) {
		case "", ".":
			*f[0] = ensureAbsolute(*f[1], *f[0])
		default:
			return nil, fmt.Errorf("files: %q is not plain name", *f[0])
		}
	}

	// create directories if they do not already exist
	for _, d := range []string{options.Database.Directory, options.Logging.Directory} {
		if err := os.MkdirAll(d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}

// ensure the path is absolute
func ensureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}
