package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inkwellcms/inkwell/internal/server"
)

const banner = `
 ___       _                _ _
|_ _|_ __ | | ____      __ | | |
 | || '_ \| |/ /\ \ /\ / / | | |
 | || | | |   <  \ V  V /| | | |
|___|_| |_|_|\_\  \_/\_/ |_|_|_|
`

func newServeCmd() *cobra.Command {
	var (
		port     int
		host     string
		memory   bool
		dev      bool
		mediaDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Inkwell API server",
		Long:  "Start the HTTP server that exposes the CMS content, lead capture, and admin endpoints.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(host, port, memory, dev, mediaDir)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8000, "HTTP listen port")
	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "HTTP listen host")
	cmd.Flags().BoolVar(&memory, "memory", false, "Use an in-memory store instead of MongoDB")
	cmd.Flags().BoolVar(&dev, "dev", false, "Enable development mode (verbose logging, CORS *)")
	cmd.Flags().StringVar(&mediaDir, "media-dir", "", "Directory for uploaded media (default: ./uploads)")

	viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	viper.BindPFlag("server.host", cmd.Flags().Lookup("host"))

	return cmd
}

func runServe(host string, port int, memory, dev bool, mediaDir string) error {
	fmt.Print(banner)
	fmt.Println()

	if dev {
		viper.Set("log.level", "debug")
	}
	logger := newLogger()

	st, err := openStore(context.Background(), memory, logger)
	if err != nil {
		return err
	}

	authSvc := newAuthService(st, logger)

	// Warn on first run so the operator knows to create an account.
	admins, err := st.ListAdmins(context.Background())
	if err != nil {
		logger.Warn("failed to check for admin accounts", "error", err)
	} else if len(admins) == 0 {
		logger.Warn("no admin account found - run: inkwell admin create, or POST /auth/register")
	}

	cfg := server.DefaultConfig()
	cfg.Host = host
	cfg.Port = port
	if mediaDir != "" {
		cfg.MediaDir = mediaDir
	} else if dir := viper.GetString("media.dir"); dir != "" {
		cfg.MediaDir = dir
	}
	if origins := viper.GetStringSlice("server.cors_origins"); len(origins) > 0 && !dev {
		cfg.CORSOrigins = origins
	}

	srv, err := server.New(cfg, st, authSvc, logger)
	if err != nil {
		st.Close(context.Background())
		return fmt.Errorf("init server: %w", err)
	}

	fmt.Printf("→ Inkwell CMS backend\n")
	fmt.Printf("→ Listening on http://%s:%d\n", host, port)
	fmt.Printf("→ Health:   http://%s:%d/healthz\n", host, port)
	fmt.Printf("→ Schema:   http://%s:%d/schema\n", host, port)
	fmt.Println()

	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server exited", "error", err)
		return err
	}
	return nil
}
