// Package config loads and persists hintmgrd's TOML configuration,
// adapted from the config-file idiom used throughout the teacher
// project (XDG dir resolution, init-if-missing, log.Fatalf on
// unrecoverable I/O errors).
package config

import (
	"bytes"
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is hintmgrd's persisted configuration.
type Config struct {
	ScreenWidth  int32
	ScreenHeight int32
	DefaultHint  string
	DevicePath   string
	SysfsRoot    string
	SocketPath   string
}

const fileName = "hintmgrd.toml"

func defaults() Config {
	return Config{
		ScreenWidth:  1872,
		ScreenHeight: 1404,
		DefaultHint:  "Y4|D|R",
		DevicePath:   "/dev/dri/rockchip-ebc",
		SysfsRoot:    "/sys/class/graphics/fb0",
		SocketPath:   "/run/hintmgrd.sock",
	}
}

// InitializeIfNot writes a default config file if none exists yet.
func InitializeIfNot() {
	log.Println("Checking if config needs to be initialized")

	dir := configDir()
	ok, err := exists(dir)
	if err != nil {
		log.Fatalf("Couldn't check if config directory exists: %v\n", err)
	}
	if !ok {
		if err := os.MkdirAll(dir, 0700); err != nil {
			log.Fatalf("Couldn't create config directory: %v\n", err)
		}
	}

	f := filepath.Join(dir, fileName)
	ok, err = exists(f)
	if err != nil {
		log.Fatalf("Couldn't check if config file exists: %v\n", err)
	}
	if !ok {
		log.Println("Initializing config")
		conf := defaults()
		Write(&conf)
	}
}

// Read loads the config file, fatal on any I/O or parse error — the
// daemon has nothing sensible to run with otherwise.
func Read() *Config {
	f := filepath.Join(configDir(), fileName)
	conf := Config{}
	if _, err := toml.DecodeFile(f, &conf); err != nil {
		log.Fatalf("Couldn't read config file: %v\n", err)
	}
	return &conf
}

// Write persists conf to the config file.
func Write(conf *Config) {
	f := filepath.Join(configDir(), fileName)
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(conf); err != nil {
		log.Fatalf("Couldn't write config file: %v\n", err)
	}
	if err := os.WriteFile(f, buf.Bytes(), 0644); err != nil {
		log.Fatalf("Couldn't write config file: %v\n", err)
	}
}

// Path returns the config file's full path, for fsnotify to watch.
func Path() string {
	return filepath.Join(configDir(), fileName)
}

func configDir() string {
	return filepath.Join(xdgOrFallback("XDG_CONFIG_HOME", filepath.Join(os.Getenv("HOME"), ".config")), "hintmgrd")
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func xdgOrFallback(xdg, fallback string) string {
	dir := os.Getenv(xdg)
	if dir != "" {
		if ok, err := exists(dir); ok && err == nil {
			log.Printf("Resolved $%s to '%s'\n", xdg, dir)
			return dir
		}
	}
	log.Printf("Couldn't resolve $%s falling back to '%s'\n", xdg, fallback)
	return fallback
}
