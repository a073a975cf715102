package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/openn02/Tend/internal/client"
	"github.com/openn02/Tend/internal/config"
	"github.com/openn02/Tend/internal/connect"
	"github.com/openn02/Tend/internal/dashboard"
	"github.com/openn02/Tend/internal/flow"
	"github.com/openn02/Tend/internal/onboarding"
	"github.com/openn02/Tend/internal/session"
	"github.com/openn02/Tend/internal/wellbeing"
)

// app bundles the client-side wiring shared by every subcommand.
type app struct {
	api     *client.Client
	session *session.Session
	auth    *flow.Auth
	nav     *cliNavigator
	notify  *cliNotifier
	logger  zerolog.Logger
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.LoadClient()
	if err != nil {
		log.Fatal().Err(err).Msg("client config")
	}

	store := session.NewStore(cfg.TokenFile)
	sess := session.New(store)
	api := client.New(cfg.BaseURL, cfg.HTTPTimeout, store)
	nav := &cliNavigator{}
	notify := &cliNotifier{}

	a := &app{
		api:     api,
		session: sess,
		auth:    flow.NewAuth(api, sess, nav, notify, log.Logger),
		nav:     nav,
		notify:  notify,
		logger:  log.Logger,
	}

	ctx := context.Background()
	cmd := os.Args[1]
	args := os.Args[2:]

	var runErr error
	switch cmd {
	case "login":
		runErr = a.runLogin(ctx, args)
	case "register":
		runErr = a.runRegister(ctx, args)
	case "logout":
		a.auth.Logout()
	case "whoami":
		runErr = a.runWhoami(ctx)
	case "dashboard":
		runErr = a.runDashboard(ctx)
	case "onboard":
		runErr = a.runOnboard(ctx, args)
	case "integrations":
		runErr = a.runIntegrations(ctx)
	case "connect":
		runErr = a.runConnect(ctx, args)
	default:
		usage()
		os.Exit(1)
	}

	if runErr != nil {
		log.Fatal().Err(runErr).Str("command", cmd).Msg("command failed")
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "tend CLI")
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "  tend login --email you@corp.com --password secret")
	fmt.Fprintln(os.Stderr, "  tend register --email you@corp.com --password secret --name \"Your Name\" [--role employee|manager|hr]")
	fmt.Fprintln(os.Stderr, "  tend logout")
	fmt.Fprintln(os.Stderr, "  tend whoami")
	fmt.Fprintln(os.Stderr, "  tend dashboard")
	fmt.Fprintln(os.Stderr, "  tend onboard --role manager --consent [--weekly-insights=false]")
	fmt.Fprintln(os.Stderr, "  tend integrations")
	fmt.Fprintln(os.Stderr, "  tend connect slack|google|zoom")
}

// guard enforces route access before a command runs, mirroring what the web
// dashboard's router does.
func (a *app) guard(route string) bool {
	decision := session.Guard(route, a.session.Authenticated())
	if !decision.Allow {
		fmt.Printf("redirected to %s\n", decision.RedirectTo)
		return false
	}
	return true
}

func (a *app) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("email and password are required")
	}

	if !a.guard(session.RouteLogin) {
		return nil
	}
	return a.auth.Login(ctx, *email, *password)
}

func (a *app) runRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	name := fs.String("name", "", "full name")
	role := fs.String("role", "employee", "employee, manager or hr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" || *name == "" {
		return fmt.Errorf("email, password and name are required")
	}

	if !a.guard(session.RouteRegister) {
		return nil
	}
	return a.auth.Register(ctx, *name, *email, *password, *role)
}

func (a *app) runWhoami(ctx context.Context) error {
	if !a.guard(session.RouteDashboard) {
		return nil
	}

	profile, err := a.api.Me(ctx)
	if err != nil {
		if client.IsUnauthorized(err) {
			a.auth.Logout()
			return nil
		}
		return err
	}

	fmt.Printf("%s <%s>\n", profile.FullName, profile.Email)
	fmt.Printf("role: %s\n", profile.Role)
	fmt.Printf("data consent: %t, onboarding completed: %t\n",
		profile.DataConsentGiven, profile.OnboardingCompleted)
	return nil
}

func (a *app) runDashboard(ctx context.Context) error {
	if !a.guard(session.RouteDashboard) {
		return nil
	}

	profile, err := a.api.Me(ctx)
	if err != nil {
		if client.IsUnauthorized(err) {
			a.auth.Logout()
			return nil
		}
		return err
	}

	if !profile.DataConsentGiven {
		fmt.Printf("redirected to %s\n", session.RouteOnboarding)
		fmt.Println("run `tend onboard` to finish setting up your account")
		return nil
	}

	page := dashboard.NewPage(profile.Role)
	renderPage(profile.FullName, page)
	return nil
}

func (a *app) runOnboard(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("onboard", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	roleArg := fs.String("role", "employee", "employee, manager or hr")
	consent := fs.Bool("consent", false, "grant data processing consent")
	weekly := fs.Bool("weekly-insights", true, "weekly insight emails")
	checkins := fs.Bool("manager-checkins", true, "allow manager check-in requests")
	trends := fs.Bool("team-trends", true, "contribute to anonymized team trends")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !a.guard(session.RouteOnboarding) {
		return nil
	}

	role, ok := wellbeing.ParseRole(*roleArg)
	if !ok {
		return fmt.Errorf("unknown role %q", *roleArg)
	}

	wizard := onboarding.NewWizard(a.api, a.session, a.nav, a.notify)
	if err := wizard.ChooseRole(role); err != nil {
		return err
	}
	if err := wizard.SetConsent(*consent); err != nil {
		return err
	}
	if err := wizard.Next(); err != nil {
		return err
	}

	prefs := wizard.Preferences()
	prefs.WeeklyInsights = *weekly
	prefs.ManagerCheckIns = *checkins
	prefs.TeamTrends = *trends
	if err := wizard.SetPreferences(prefs); err != nil {
		return err
	}

	return wizard.Submit(ctx)
}

func (a *app) runIntegrations(ctx context.Context) error {
	if !a.guard(session.RouteSettings) {
		return nil
	}

	connector := connect.New(a.api, a.nav, a.logger)
	statuses, err := connector.Statuses(ctx, connect.Providers)
	if err != nil {
		return err
	}

	for _, provider := range connect.Providers {
		status := statuses[provider]
		state := "not connected"
		if status.Connected {
			state = "connected"
			if status.LastSync != nil {
				state += ", last sync " + status.LastSync.Format(time.RFC3339)
			}
		}
		fmt.Printf("%-8s %s\n", provider, state)
	}
	return nil
}

func (a *app) runConnect(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: tend connect <provider>")
	}

	if !a.guard(session.RouteSettings) {
		return nil
	}

	connector := connect.New(a.api, a.nav, a.logger)
	return connector.Connect(ctx, args[0])
}

func renderPage(name string, page *dashboard.Page) {
	fmt.Printf("Welcome back, %s\n\n", firstName(name))

	if banner := page.Banner(); banner.Visible {
		fmt.Println("check-in request:")
		fmt.Println("  " + banner.Message)
		fmt.Println()
	}

	switch page.View.Kind {
	case dashboard.ViewIndividual:
		v := page.View.Individual
		fmt.Println(v.WeeklyMessage)
		fmt.Println(v.Insight)
		fmt.Println()
		for _, card := range v.Signals {
			fmt.Printf("%-12s %-10s %-10s %s\n", card.Name, card.Label, card.Trend, card.Change)
		}
		fmt.Println()
		fmt.Println(v.TrendSummary)
		fmt.Println(v.PrivacyNote)
	case dashboard.ViewManager:
		v := page.View.Manager
		fmt.Println(v.Overall.Message)
		if v.Burnout.Detected {
			fmt.Println("!! " + v.Burnout.Message)
			fmt.Println("   " + v.Burnout.Recommendation)
		}
		fmt.Println()
		for _, card := range v.Dimensions {
			fmt.Printf("%-12s %-10s %-10s %s\n", card.Name, card.Label, card.Trend, card.Change)
		}
		fmt.Println()
		fmt.Println("team breakdown:")
		for _, row := range v.Breakdown {
			fmt.Printf("  %-14s workload=%s sentiment=%s engagement=%s recovery=%s\n",
				row.Name, row.Workload, row.Sentiment, row.Engagement, row.Recovery)
		}
		fmt.Println()
		fmt.Println(v.PrivacyNote)
	case dashboard.ViewPlaceholder:
		v := page.View.Placeholder
		fmt.Println(v.Title)
		fmt.Println(v.Message)
	}
}

func firstName(full string) string {
	if i := strings.IndexByte(full, ' '); i > 0 {
		return full[:i]
	}
	return full
}

// cliNavigator prints navigations instead of driving a browser.
type cliNavigator struct{}

func (cliNavigator) Navigate(path string) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		fmt.Printf("open in your browser: %s\n", path)
		return
	}
	fmt.Printf("navigated to %s\n", path)
}

// cliNotifier prints flow notifications to the terminal.
type cliNotifier struct{}

func (cliNotifier) Success(message string) { fmt.Println(message) }
func (cliNotifier) Error(message string)   { fmt.Fprintln(os.Stderr, message) }
