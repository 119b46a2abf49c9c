// Command hintmgrd is the rendering-hint compositor daemon: it serves
// the command stream of spec.md §6.1 over a websocket control socket,
// reconciles window-manager bridges against the registry, and uploads
// computed hints to the rockchip_ebc driver.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"hintmgrd/bridge"
	"hintmgrd/compositor"
	"hintmgrd/config"
	"hintmgrd/dispatch"
	"hintmgrd/driver"
	"hintmgrd/hint"
	"hintmgrd/ipc"
	"hintmgrd/rect"
)

var version = "unknown" // set by build

type cliOpts struct {
	verbose bool
	dryRun  bool
}

func parseCLIOpts() cliOpts {
	var opt cliOpts
	flag.BoolVar(&opt.verbose, "v", false, "verbose output (print logs to stderr)")
	flag.BoolVar(&opt.dryRun, "dry-run", false, "use the null driver sink instead of the real device")
	flag.Parse()
	return opt
}

func main() {
	opt := parseCLIOpts()

	if opt.verbose {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}
	log.Printf("hintmgrd starting. Version: %s\n", version)

	warnIfMissingDriverCaps()

	config.InitializeIfNot()
	conf := config.Read()

	defaultHint, err := hint.Parse(conf.DefaultHint)
	if err != nil {
		log.Fatalf("Invalid default_hint %q in config: %v\n", conf.DefaultHint, err)
	}

	sink := openSink(opt, conf)
	if closer, ok := sink.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	screenArea := rect.New(0, 0, conf.ScreenWidth, conf.ScreenHeight)
	c := compositor.New(defaultHint, screenArea)
	d := dispatch.New(c, sink)

	commands := make(chan dispatch.Command, 64)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go d.Run(ctx, commands)

	server := ipc.NewServer(commands)
	startControlSocket(conf.SocketPath, server)

	staticBridge := bridge.NewStaticSource()
	reconciler := bridge.NewReconciler(commands)
	go func() {
		if err := reconciler.Run(ctx, staticBridge); err != nil {
			log.Printf("bridge: reconciler stopped: %v\n", err)
		}
	}()

	stopWatch := make(chan struct{})
	defer close(stopWatch)
	go watchConfig(commands, stopWatch)

	waitForShutdown()
	log.Println("hintmgrd shutting down")
}

func openSink(opt cliOpts, conf *config.Config) driver.Sink {
	if opt.dryRun {
		log.Println("Using null driver sink (--dry-run)")
		return driver.NewNull()
	}

	ebc, err := driver.OpenEBC(conf.DevicePath)
	if err != nil {
		log.Printf("Couldn't open %s, falling back to null driver sink: %v\n", conf.DevicePath, err)
		return driver.NewNull()
	}
	return ebc
}

func startControlSocket(path string, server *ipc.Server) {
	_ = os.Remove(path)

	listener, err := net.Listen("unix", path)
	if err != nil {
		log.Fatalf("Couldn't listen on control socket %s: %v\n", path, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/", server)

	go func() {
		if err := http.Serve(listener, mux); err != nil {
			log.Printf("ipc: control socket server stopped: %v\n", err)
		}
	}()

	log.Printf("Listening for commands on %s\n", path)
}

// watchConfig pushes SetDefaultHint whenever the config file's
// default_hint is edited on disk.
func watchConfig(commands chan<- dispatch.Command, stop <-chan struct{}) {
	changed := config.Watch(stop)
	for {
		select {
		case <-stop:
			return
		case conf, ok := <-changed:
			if !ok {
				return
			}
			h, err := hint.Parse(conf.DefaultHint)
			if err != nil {
				log.Printf("Ignoring invalid default_hint %q from reloaded config: %v\n", conf.DefaultHint, err)
				continue
			}
			commands <- dispatch.SetDefaultHint{Hint: h}
		}
	}
}

func waitForShutdown() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	s := <-sig
	fmt.Fprintf(os.Stderr, "Received signal %s\n", s)
}
