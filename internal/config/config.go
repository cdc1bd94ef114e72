package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shibukawa/configdir"
	"go.uber.org/zap"
)

const VendorName = "litclub"
const ApplicationName = "literature-client"

// DefaultServerURL is the room server all endpoints are relative to.
const DefaultServerURL = "http://localhost:8000"

// ErrorDisplayDuration is how long a surfaced error stays visible
// unless superseded by a newer one.
const ErrorDisplayDuration = 5 * time.Second

const logsDirectory = "logs"

var Logger = zap.NewNop()
var LogFilePath string

// SetupLogger configures the package logger to write to a file under the
// user config directory. Embedding applications may skip this and inject
// their own logger instead.
func SetupLogger(debug bool) {
	var c zap.Config
	if debug {
		c = zap.NewDevelopmentConfig()
	} else {
		c = zap.NewProductionConfig()
	}

	LogFilePath = createLogFile()
	c.OutputPaths = []string{LogFilePath}
	c.Development = false
	logger, err := c.Build()
	if err != nil {
		panic(err)
	}
	Logger = logger
}

func createLogFile() string {
	name := fmt.Sprintf("literature-%s.log", time.Now().UTC().Format(time.RFC3339))
	name = strings.Replace(name, ":", "-", -1)

	configDirs := configdir.New(VendorName, ApplicationName)
	folders := configDirs.QueryFolders(configdir.Global)
	path := filepath.Join(folders[0].Path, logsDirectory, name)

	if err := os.MkdirAll(filepath.Dir(path), 0770); err != nil {
		panic(err)
	}

	if _, err := os.Create(path); err != nil {
		panic(err)
	}

	return path
}
