package main

// satradio: a software satellite radio multiplex transmitter. Reads one
// YAML configuration describing the master output and every configured
// sub-carrier channel, then runs the mux loop until interrupted.

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	satradio "github.com/doismellburning/samoyed/src"
	"github.com/spf13/pflag"
)

func main() {
	var configFile = pflag.StringP("config", "c", "", "Configuration file name (required).")
	var verbose = pflag.BoolP("verbose", "V", false, "Enable verbose logging.")
	var version = pflag.BoolP("version", "v", false, "Print version and exit.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "satradio - a software satellite radio multiplex transmitter.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: satradio -c config.yaml [options]\n\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	if *version {
		satradio.PrintVersion(*verbose)
		os.Exit(0)
	}

	if *configFile == "" {
		fmt.Fprintln(os.Stderr, "satradio: -c/--config is required")
		pflag.Usage()
		os.Exit(1)
	}

	satradio.SetVerbose(*verbose)

	var cfg, cfgErr = satradio.LoadConfig(*configFile)
	if cfgErr != nil {
		fmt.Fprintf(os.Stderr, "satradio: %s\n", cfgErr)
		os.Exit(1)
	}

	var mux, muxErr = satradio.NewMux(cfg)
	if muxErr != nil {
		fmt.Fprintf(os.Stderr, "satradio: %s\n", muxErr)
		os.Exit(1)
	}

	var sig = make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		mux.Stop()
	}()

	if *verbose {
		var stopWatch = satradio.WatchKeypress(mux.Stop)
		defer stopWatch()
		fmt.Fprintln(os.Stderr, "satradio: press 'q' to stop")
	}

	var runErr = mux.Run()

	if closeErr := mux.Close(); closeErr != nil && runErr == nil {
		runErr = closeErr
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "satradio: %s\n", runErr)
		os.Exit(1)
	}
}
