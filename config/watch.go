package config

import (
	"log"

	"github.com/fsnotify/fsnotify"
)

// Watch pushes the freshly-reloaded Config on changed every time the
// config file is written, until stop is closed. Errors opening the
// watcher are fatal (mirrors Read's fail-fast stance); errors from
// individual fsnotify events are logged and skipped.
func Watch(stop <-chan struct{}) <-chan Config {
	changed := make(chan Config)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatalf("Couldn't start config watcher: %v\n", err)
	}
	if err := watcher.Add(configDir()); err != nil {
		log.Fatalf("Couldn't watch config directory: %v\n", err)
	}

	go func() {
		defer watcher.Close()
		path := Path()

		for {
			select {
			case <-stop:
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Name != path {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				changed <- *Read()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Config watcher error: %v\n", err)
			}
		}
	}()

	return changed
}
