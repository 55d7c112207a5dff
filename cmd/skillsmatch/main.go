package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/common-nighthawk/go-figure"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/skillsmatch/go-skillsmatch/api"
	"github.com/skillsmatch/go-skillsmatch/credentials/boltrepo"
	"github.com/skillsmatch/go-skillsmatch/internal/config"
	"github.com/skillsmatch/go-skillsmatch/session"
	"golang.org/x/term"
	"golang.org/x/time/rate"
)

const appName = "SkillsMatch"

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("Error: %s\n", err)
	}
}

func run(args []string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	flags := flag.NewFlagSet("skillsmatch", flag.ContinueOnError)
	configPath := flags.String("config", config.DefaultPath(), "path to the config file")
	flags.Usage = usage(flags)
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return errors.New("a command is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)

	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return errors.Wrap(err, "create data dir")
	}
	repo, err := boltrepo.Open(filepath.Join(cfg.DataDir, "session.db"))
	if err != nil {
		return err
	}
	defer func() {
		_ = repo.Close()
	}()

	mgr, err := session.New(cfg.BaseURL, repo,
		session.WithTimeout(cfg.Timeout.Std()),
		session.WithLogger(logger),
		session.WithLimiter(rate.NewLimiter(rate.Limit(10), 20)),
	)
	if err != nil {
		return err
	}
	client := api.New(mgr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch command := flags.Arg(0); command {
	case "login":
		return runLogin(ctx, mgr)
	case "logout":
		mgr.Logout()
		fmt.Println("Logged out.")
		return nil
	case "whoami":
		return runWhoami(ctx, mgr)
	case "employees", "departments", "jobs", "positions", "skills", "evaluations":
		if state := mgr.Bootstrap(ctx); !state.Authenticated {
			return errors.New("not logged in; run `skillsmatch login` first")
		}
		return runList(ctx, client, command)
	default:
		flags.Usage()
		return errors.Errorf("unknown command %q", command)
	}
}

func usage(flags *flag.FlagSet) func() {
	return func() {
		fmt.Fprintln(os.Stderr, "Usage: skillsmatch [flags] <command>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Commands:")
		fmt.Fprintln(os.Stderr, "  login        authenticate against the backend")
		fmt.Fprintln(os.Stderr, "  logout       clear the stored session")
		fmt.Fprintln(os.Stderr, "  whoami       show the authenticated user")
		fmt.Fprintln(os.Stderr, "  employees    list employees")
		fmt.Fprintln(os.Stderr, "  departments  list departments")
		fmt.Fprintln(os.Stderr, "  jobs         list jobs")
		fmt.Fprintln(os.Stderr, "  positions    list positions")
		fmt.Fprintln(os.Stderr, "  skills       list skills")
		fmt.Fprintln(os.Stderr, "  evaluations  list evaluations")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		flags.PrintDefaults()
	}
}

func newLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.WarnLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(parsed).With().Timestamp().Logger()
}

func runLogin(ctx context.Context, mgr *session.Manager) error {
	figure.NewFigure(appName, "cybermedium", true).Print()
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return errors.Wrap(err, "read username")
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return errors.Wrap(err, "read password")
	}

	user, err := mgr.Login(ctx, strings.TrimSpace(username), string(password))
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s.\n", user.FullName())
	return nil
}

func runWhoami(ctx context.Context, mgr *session.Manager) error {
	state := mgr.Bootstrap(ctx)
	if !state.Authenticated || state.User == nil {
		return errors.New("not logged in")
	}

	user := state.User
	fmt.Printf("%s", user.Username)
	if name := user.FullName(); name != user.Username {
		fmt.Printf(" (%s)", name)
	}
	if user.Email != "" {
		fmt.Printf(" <%s>", user.Email)
	}
	fmt.Println()
	return nil
}

func runList(ctx context.Context, client *api.Client, resource string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	switch resource {
	case "employees":
		page, err := client.Employees.List(ctx, nil)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tSTATUS")
		for _, e := range page.Results {
			fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\n", e.ID, e.FirstName, e.LastName, e.Email, e.EmploymentStatus)
		}
	case "departments":
		page, err := client.Departments.List(ctx, nil)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tNAME\tMANAGER")
		for _, d := range page.Results {
			fmt.Fprintf(w, "%d\t%s\t%s\n", d.ID, d.Name, d.ManagerName)
		}
	case "jobs":
		page, err := client.Jobs.List(ctx, nil)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tTITLE\tLEVEL")
		for _, j := range page.Results {
			fmt.Fprintf(w, "%d\t%s\t%s\n", j.ID, j.Title, j.Level)
		}
	case "positions":
		page, err := client.Positions.List(ctx, nil)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tJOB\tLOCATION\tSTATUS")
		for _, p := range page.Results {
			fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", p.ID, p.Job, p.Location, p.Status)
		}
	case "skills":
		page, err := client.Skills.List(ctx, nil)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tNAME\tCATEGORY")
		for _, s := range page.Results {
			fmt.Fprintf(w, "%d\t%s\t%s\n", s.ID, s.Name, s.Category)
		}
	case "evaluations":
		page, err := client.Evaluations.List(ctx, nil)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tEMPLOYEE\tSKILL\tLEVEL\tDATE")
		for _, e := range page.Results {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", e.ID, e.EmployeeName, e.SkillName, e.QuantitativeLevel, e.EvaluationDate)
		}
	}

	return nil
}
