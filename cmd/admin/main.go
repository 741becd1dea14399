package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/maxuni/miniapp-backend/internal/admin"
	"github.com/maxuni/miniapp-backend/internal/config"
	"github.com/maxuni/miniapp-backend/internal/logger"
	"github.com/maxuni/miniapp-backend/internal/model"
	"github.com/maxuni/miniapp-backend/internal/upstream"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	var (
		universityID int64
		login        string
		baseURL      string
	)
	flag.Int64Var(&universityID, "university", 0, "University ID")
	flag.StringVar(&login, "login", "", "University administrator login (prompted when empty)")
	flag.StringVar(&baseURL, "api", cfg.UpstreamBaseURL, "University API root")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 || universityID <= 0 {
		printUsage()
		os.Exit(2)
	}

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	api := upstream.NewClient(baseURL, cfg.UpstreamTimeout, log)

	current, err := api.UniversityConfig(ctx, universityID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load university config")
	}
	editor := admin.NewEditor(*current)

	command := args[0]
	switch command {
	case "show":
		status, err := api.EndpointStatus(ctx, universityID)
		if err != nil {
			log.Warn().Err(err).Msg("Endpoint status unavailable")
		}
		printStatus(editor, status)
		return
	case "enable", "disable":
		if len(args) < 2 {
			fatalUsage(command + " requires a feature id")
		}
		if command == "enable" {
			err = editor.Enable(args[1])
		} else {
			err = editor.Disable(args[1])
		}
	case "set-endpoint":
		if len(args) < 3 {
			fatalUsage("set-endpoint requires a feature id and a path")
		}
		err = editor.SetEndpoint(args[1], args[2])
	case "set-url":
		if len(args) < 2 {
			fatalUsage("set-url requires a URL")
		}
		err = editor.SetBaseURL(args[1])
	default:
		printUsage()
		os.Exit(2)
	}
	if errors.Is(err, admin.ErrUnknownFeature) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printFeatures()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// ─── Authenticate ──────────────────────────────────────────────────
	token, err := authenticate(ctx, api, universityID, login)
	if err != nil {
		log.Fatal().Err(err).Msg("University login failed")
	}

	next := editor.Config()
	next.UniversityID = universityID
	saved, err := api.PutUniversityConfig(ctx, token, &next)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to save university config")
	}

	fmt.Println("Config saved.")
	printStatus(admin.NewEditor(*saved), nil)
}

// authenticate prompts for whatever credential is missing and logs in.
func authenticate(ctx context.Context, api *upstream.Client, universityID int64, login string) (string, error) {
	reader := bufio.NewReader(os.Stdin)

	if login == "" {
		fmt.Print("Enter Login: ")
		line, _ := reader.ReadString('\n')
		login = strings.TrimSpace(line)
		if login == "" {
			return "", errors.New("login is required")
		}
	}

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // Newline after password input
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	return api.UniversityLogin(ctx, model.UniversityLoginRequest{
		UniversityID: universityID,
		Login:        login,
		Password:     string(bytePassword),
	})
}

// printStatus prints the feature table. remote may be nil.
func printStatus(editor *admin.Editor, remote model.EndpointStatus) {
	cfg := editor.Config()
	fmt.Printf("University %d, API %s\n\n", cfg.UniversityID, orDash(cfg.UniversityAPIBaseURL))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FEATURE\tENABLED\tENDPOINT\tNAME")
	for _, s := range editor.Status() {
		enabled := "no"
		if s.Enabled {
			enabled = "yes"
		}
		if remote != nil && remote[s.ID] != s.Enabled {
			enabled += " (remote differs)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, enabled, orDash(s.Endpoint), s.Name)
	}
	_ = w.Flush()
}

func printFeatures() {
	fmt.Println("Known features:")
	for _, f := range admin.Features() {
		fmt.Printf("  %-24s %s (default %s)\n", f.ID, f.Description, f.DefaultEndpoint)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func fatalUsage(msg string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	printUsage()
	os.Exit(2)
}

func printUsage() {
	fmt.Println("Usage: admin -university <id> [flags] <command>")
	fmt.Println("Commands:")
	fmt.Println("  show                       list features and endpoints")
	fmt.Println("  enable <feature>           enable with the default endpoint")
	fmt.Println("  disable <feature>          remove the endpoint")
	fmt.Println("  set-endpoint <feature> <p> override an endpoint path")
	fmt.Println("  set-url <url>              set the university API base URL")
	fmt.Println("Flags:")
	flag.PrintDefaults()
}
