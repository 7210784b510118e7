// Command ssh_test_server serves a saved hotspot report over SSH so that
// wifi-dumper can be run end to end without a router:
//
//	ssh_test_server --report report/testdata/show_ip_hotspot.txt
//	wifi-dumper sync --target 127.0.0.1:20222 --strict-host-key=false --dry-run
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/JustAGod1/wifi-dumper/tools/sshserv"
)

func main() {
	listen := pflag.StringP("listen", "l", "127.0.0.1:20222", "Address to listen on")
	reportPath := pflag.StringP("report", "r", "", "File served as the output of --command")
	command := pflag.StringP("command", "c", "show ip hotspot", "Command answered with the report")
	pflag.Parse()

	if *reportPath == "" {
		_, _ = fmt.Fprintln(os.Stderr, "--report is required")
		os.Exit(2)
	}
	b, err := os.ReadFile(*reportPath)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "failed to read report:", err)
		os.Exit(1)
	}

	srv, err := sshserv.Start(*listen, sshserv.Static(*command, string(b)))
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "failed to start test ssh server:", err)
		os.Exit(1)
	}
	_, _ = fmt.Fprintln(os.Stderr, "test ssh server listening on", srv.Addr())
	defer srv.Close()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
}
