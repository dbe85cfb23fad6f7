// cmd/rma-create/main.go
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/peterbourgon/ff/v3/ffcli"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	awsclient "rma-desk/internal/common/aws"
	"rma-desk/internal/common/config"
	"rma-desk/internal/common/database"
	"rma-desk/internal/common/logger"
	"rma-desk/internal/common/zendesk"
	"rma-desk/internal/rma"
	"rma-desk/internal/rma/audit"
	"rma-desk/internal/rma/create"
	"rma-desk/internal/rma/directory"
	"rma-desk/internal/rma/notify"
	"rma-desk/internal/rma/pdf"
	"rma-desk/internal/rma/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "rma-create:", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("rma-create", flag.ContinueOnError)
	flagConfig := fs.String("config", "", "config file path (default: configs/config.yaml)")
	flagEmail := fs.String("email", "", "customer email to look up (required)")
	flagCategory := fs.String("category", "", "return category")
	flagComplaint := fs.String("complaint", "", "customer complaint text")
	flagReply := fs.String("reply", "", "reply text")
	flagCondition := fs.String("condition", "", "product condition")
	flagProduct := fs.String("product", "", "product name")
	flagStatus := fs.String("status", "", "record status")
	flagDecon := fs.String("decontamination", "", "decontamination status")
	flagSerial := fs.String("serial", "", "product serial number")
	flagStore := fs.String("store", "", "workbook path override")
	flagYes := fs.Bool("yes", false, "skip the confirmation prompt")

	app := &ffcli.Command{
		Name:       "rma-create",
		ShortUsage: "rma-create -email customer@example.com [flags]",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if *flagEmail == "" {
				return flag.ErrHelp
			}

			var cfg *config.Config
			var err error
			if *flagConfig != "" {
				cfg, err = config.LoadFromFile(*flagConfig)
			} else {
				cfg, err = config.Load()
			}
			if err != nil {
				return err
			}
			if *flagStore != "" {
				cfg.Store.Path = *flagStore
			}

			zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
			defer zapLog.Sync()
			log := logger.NewZapAdapter(zapLog)

			if cfg.Metrics.Listen != "" {
				go func() {
					mux := http.NewServeMux()
					mux.Handle("/metrics", promhttp.Handler())
					if err := http.ListenAndServe(cfg.Metrics.Listen, mux); err != nil {
						zapLog.Warn("metrics listener failed", zap.Error(err))
					}
				}()
			}

			svc, cleanup, err := buildService(ctx, cfg, log, *flagYes)
			if err != nil {
				return err
			}
			defer cleanup()

			input := &create.Input{
				Email:           *flagEmail,
				Category:        *flagCategory,
				Complaint:       *flagComplaint,
				Reply:           *flagReply,
				Condition:       *flagCondition,
				Product:         *flagProduct,
				Status:          *flagStatus,
				Decontamination: *flagDecon,
				SerialNumber:    *flagSerial,
			}

			out, err := svc.Execute(ctx, input)
			if err != nil {
				return err
			}
			if !out.Success {
				fmt.Println(out.Message)
				return nil
			}
			fmt.Printf("RMA %d issued (%s)\n", out.Number, out.RequestID)
			return nil
		},
	}

	if err := app.ParseAndRun(context.Background(), os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	return nil
}

func buildService(ctx context.Context, cfg *config.Config, log logger.Logger, skipPrompt bool) (*create.Service, func(), error) {
	closers := []func(){}
	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}

	directoryClient := zendesk.NewClient(
		cfg.Directory.BaseURL,
		cfg.Directory.Email,
		cfg.Directory.Token,
		config.GetDuration(cfg.Directory.Timeout),
	)

	var cache directory.Cache
	if cfg.Cache.Enabled {
		rdb, err := database.NewRedis(cfg.Cache.Redis)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		if err := rdb.Ping(ctx); err != nil {
			// The cache is an accelerator, not a dependency.
			log.Warn("Lookup cache unavailable, continuing without it", map[string]interface{}{
				"error": err.Error(),
			})
			rdb.Close()
		} else {
			cache = rdb
			closers = append(closers, func() { rdb.Close() })
		}
	}

	lookup := directory.NewLookup(directory.LookupOptions{
		API:        directoryClient,
		Cache:      cache,
		CacheTTL:   config.GetDuration(cfg.Cache.TTL * 1000),
		MultiMatch: cfg.Directory.MultiMatch,
		Logger:     log,
	})

	deps := create.ServiceDependencies{
		Logger:    log,
		Directory: lookup,
		Store:     store.New(cfg.Store, log),
		Confirm:   consoleConfirm(skipPrompt),
	}

	if cfg.Audit.Enabled {
		pg, err := database.NewPostgres(cfg.Audit.Postgres)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		if err := pg.Ping(ctx); err != nil {
			cleanup()
			pg.Close()
			return nil, nil, fmt.Errorf("audit database unreachable: %w", err)
		}
		closers = append(closers, func() { pg.Close() })
		deps.Auditor = audit.NewTrail(pg, log)
	}

	if cfg.Notifications.Email.Enabled || cfg.Notifications.SMS.Enabled {
		opts := notify.Options{
			FromEmail: cfg.Notifications.Email.FromEmail,
			Logger:    log,
		}
		if cfg.Notifications.Email.Enabled {
			sesClient, err := awsclient.NewSESClient(ctx, cfg.Notifications.AWS.Region)
			if err != nil {
				cleanup()
				return nil, nil, err
			}
			opts.Email = sesClient
		}
		if cfg.Notifications.SMS.Enabled {
			snsClient, err := awsclient.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
			if err != nil {
				cleanup()
				return nil, nil, err
			}
			opts.SMS = snsClient
		}
		deps.Notifier = notify.New(opts)
	}

	if cfg.Documents.Enabled {
		outDir := cfg.Documents.OutputDir
		if outDir == "" {
			outDir = "."
		}
		deps.Renderer = pdf.NewRenderer(outDir)
	}

	svc := create.NewService(deps, create.ConfigFromApp(cfg))
	return svc, cleanup, nil
}

// consoleConfirm implements the confirmation gate as an interactive y/n
// prompt. The core pipeline only ever sees the resulting ConfirmFunc.
func consoleConfirm(skipPrompt bool) create.ConfirmFunc {
	return func(contact rma.Contact, req rma.Request) bool {
		printRecord(contact, req)
		if skipPrompt {
			return true
		}

		fmt.Print("Append this record? [y/N]: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}
}

func printRecord(contact rma.Contact, req rma.Request) {
	fmt.Println("--- RMA record ---")
	fields := []struct{ label, value string }{
		{"Name", contact.Name},
		{"Email", contact.Email},
		{"Phone", contact.Phone},
		{"Company", contact.Company},
		{"Street", contact.Street},
		{"City", contact.City},
		{"State", contact.State},
		{"Zip", contact.Zip},
		{"Country", contact.Country},
		{"Product", req.Product},
		{"Serial", req.SerialNumber},
		{"Category", req.Category},
		{"Condition", req.Condition},
		{"Decontamination", req.Decontamination},
		{"Complaint", req.Complaint},
		{"Reply", req.Reply},
		{"Status", req.Status},
	}
	for _, f := range fields {
		if f.value != "" {
			fmt.Printf("%-16s %s\n", f.label+":", f.value)
		}
	}
}
