package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/gglive"
	"github.com/gogpu/gglive/httpd"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd(configPath *string) *cobra.Command {
	var (
		demo     bool
		genToken bool
	)
	flags := gglive.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start a device and serve it over HTTP",
		Long: `Start a device, serve it over HTTP and idle as its host until
interrupted. With --demo the host draws the demo pages first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags(), *configPath)
			if err != nil {
				return err
			}
			if genToken && cfg.Token == "" {
				if cfg.Token, err = gglive.RandomToken(16); err != nil {
					return err
				}
			}
			log := setupLogging(cfg)

			// This goroutine is the host from here on.
			d, err := gglive.Start(cfg,
				gglive.WithTransport(httpd.New(cfg, httpd.WithLogger(log))),
				gglive.WithLogger(log),
			)
			if err != nil {
				return err
			}

			st := d.State()
			url := "http://" + net.JoinHostPort(st.Host, strconv.Itoa(st.Port)) + "/"
			if st.Token != "" {
				url += "?token=" + st.Token
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				log.Info("shutting down")
				sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := d.Shutdown(sctx); err != nil {
					log.Error("shutdown", "err", err)
				}
			}()

			if demo {
				if err := drawDemo(d.Host()); err != nil {
					_ = d.Close()
					return err
				}
			}
			return d.Loop(context.Background())
		},
	}
	flags.BindFlags(cmd.Flags())
	cmd.Flags().BoolVar(&demo, "demo", true, "draw the demo pages on start")
	cmd.Flags().BoolVar(&genToken, "gen-token", false, "generate a token when none is configured")
	return cmd
}
