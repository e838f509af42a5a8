package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/genxsop/genxsop/pkg/config"
	"github.com/genxsop/genxsop/pkg/rbac"
	"github.com/genxsop/genxsop/pkg/sopclient"
)

// app wires the SDK once per invocation and is shared by every command.
type app struct {
	cfg     *config.Config
	session *sopclient.Session
	prefs   *sopclient.Prefs
	client  *sopclient.Client

	auth      *sopclient.AuthService
	products  *sopclient.ProductService
	demand    *sopclient.DemandService
	supply    *sopclient.SupplyService
	inventory *sopclient.InventoryService
	forecasts *sopclient.ForecastService
	scenarios *sopclient.ScenarioService
	cycles    *sopclient.SOPCycleService
	kpis      *sopclient.KPIService
	dashboard *sopclient.DashboardService
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	session, err := sopclient.NewSession(cfg.Client.StateDir)
	if err != nil {
		return nil, err
	}
	prefs, err := sopclient.NewPrefs(cfg.Client.StateDir)
	if err != nil {
		return nil, err
	}
	session.OnInvalidated(func() {
		fmt.Fprintln(os.Stderr, "Session expired, please sign in again with 'sopctl login'.")
	})

	client := sopclient.New(cfg.Client, session)
	return &app{
		cfg:       cfg,
		session:   session,
		prefs:     prefs,
		client:    client,
		auth:      sopclient.NewAuthService(client),
		products:  sopclient.NewProductService(client),
		demand:    sopclient.NewDemandService(client),
		supply:    sopclient.NewSupplyService(client),
		inventory: sopclient.NewInventoryService(client),
		forecasts: sopclient.NewForecastService(client),
		scenarios: sopclient.NewScenarioService(client),
		cycles:    sopclient.NewSOPCycleService(client),
		kpis:      sopclient.NewKPIService(client),
		dashboard: sopclient.NewDashboardService(client),
	}, nil
}

// requireModule refuses early when the signed-in role cannot reach a module,
// mirroring the permission gate the web UI applies to its navigation.
func (a *app) requireModule(m rbac.Module) error {
	u := a.session.User()
	if u == nil {
		return fmt.Errorf("not signed in, run 'sopctl login' first")
	}
	if !rbac.CanAccessModule(rbac.Role(u.Role), m) {
		return fmt.Errorf("your role (%s) has no access to %s", u.Role, m)
	}
	return nil
}

func (a *app) requirePermission(p rbac.Permission) error {
	u := a.session.User()
	if u == nil {
		return fmt.Errorf("not signed in, run 'sopctl login' first")
	}
	if !rbac.Can(rbac.Role(u.Role), p) {
		return fmt.Errorf("your role (%s) is not allowed to do that", u.Role)
	}
	return nil
}

func newRootCmd() *cobra.Command {
	var a *app

	root := &cobra.Command{
		Use:           "sopctl",
		Short:         "Command line client for the GenX S&OP platform",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a, err = newApp()
			return err
		},
	}

	root.AddCommand(
		newLoginCmd(&a),
		newLogoutCmd(&a),
		newWhoamiCmd(&a),
		newDashboardCmd(&a),
		newProductCmd(&a),
		newDemandCmd(&a),
		newSupplyCmd(&a),
		newInventoryCmd(&a),
		newForecastCmd(&a),
		newScenarioCmd(&a),
		newCycleCmd(&a),
		newKPICmd(&a),
		newPrefsCmd(&a),
	)
	return root
}

// table renders aligned columns to stdout.
func table(header []string, rows [][]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for i, h := range header {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, h)
	}
	fmt.Fprintln(w)
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, cell)
		}
		fmt.Fprintln(w)
	}
	_ = w.Flush()
}

// dateArg converts a YYYY-MM-DD flag value into the RFC 3339 instant the API
// expects (midnight UTC).
func dateArg(s string) (string, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t.UTC().Format(time.RFC3339), nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
