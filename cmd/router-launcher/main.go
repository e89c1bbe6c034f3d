// Package main is the entry point for the router launcher.
//
// The binary is installed once per router deployment and invoked by the
// init system as "<launcher> start". It delegates all functionality to the
// internal/cli package.
//
// Build-time variables are injected via ldflags. appName selects the
// compiled deployment profile, e.g.
//
//	go build -ldflags "-X main.appName=route_xdcdb-users" ./cmd/router-launcher
package main

import (
	"github.com/warehouse-apps/router-launcher/internal/cli"
)

// version, commit, and date identify the build in the router start log.
// appName selects the deployment profile; empty means the default profile.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	appName = ""
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date
	if appName != "" {
		cli.AppName = appName
	}

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
