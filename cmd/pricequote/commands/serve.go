package commands

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/zeptools/pricequote/conf"
	"github.com/zeptools/pricequote/web"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the quote HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	core := &conf.Core{}
	if err := core.BaseInit(appRoot, rootCtx, rootCancel); err != nil {
		return err
	}
	if listen := os.Getenv("LISTEN"); listen != "" {
		core.Listen = listen
	}

	if err := core.PrepareSessionManager(); err != nil {
		return err
	}
	if err := core.PrepareSessionStore(); err != nil {
		return err
	}
	defer core.ResourceCleanUp()
	core.PrepareComposer()
	core.PrepareThrottleStore()

	app := &web.App{
		Manager:      core.SessionManager,
		Store:        core.SessionStore,
		Composer:     core.Composer,
		Throttle:     core.ThrottleStore,
		SessionLocks: core.SessionLocks,
	}
	core.PrepareWebService(core.Listen, app.Routes())

	if core.UDSSocketPath != "" {
		core.PrepareUDSService(adminCommands(core))
	}

	if err := core.StartServices(); err != nil {
		core.RootCancel()
		core.StopServices()
		return err
	}
	log.Printf("[INFO] app [%s] up", core.AppName)

	if err := core.WaitServicesDone(); err != nil {
		return err
	}
	log.Printf("[INFO] app [%s] shutdown complete", core.AppName)
	return nil
}
