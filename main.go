package main

import (
	"fmt"
	"os"

	"hackathon_system/api"
	"hackathon_system/common"
	"hackathon_system/common/config"
	"hackathon_system/common/connectors/apiconn"
	"hackathon_system/common/db"
	"hackathon_system/lib/logger"

	"github.com/spf13/cobra"
)

var createUser bool

func main() {
	rootCmd := &cobra.Command{
		Use:          "hackathon_system",
		Short:        "Hackathon events platform backend",
		SilenceUsage: true,
	}

	serveCmd := &cobra.Command{
		Use:   "serve <config>",
		Short: "Run API server",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			hs := common.InitHackathonSystem(args[0])
			api.SetupHandler(hs)
			hs.Run()
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate <config>",
		Short: "Create or update database schema",
		Args:  cobra.ExactArgs(1),
		RunE:  runMigrate,
	}

	issueTokenCmd := &cobra.Command{
		Use:   "issue-token <config> <email>",
		Short: "Create session token for user",
		Args:  cobra.ExactArgs(2),
		RunE:  runIssueToken,
	}
	issueTokenCmd.Flags().BoolVar(&createUser, "create", false, "create user if it does not exist")

	eventsCmd := &cobra.Command{
		Use:   "events <address> [query]",
		Short: "List events of running server",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runEvents,
	}

	rootCmd.AddCommand(serveCmd, migrateCmd, issueTokenCmd, eventsCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg := config.ReadConfig(args[0])
	logger.InitLogger(cfg.Logger)
	database, err := db.NewDB(cmd.Context(), cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close(database)
	logger.Info("Database schema is up to date")
	return nil
}

func runIssueToken(cmd *cobra.Command, args []string) error {
	cfg := config.ReadConfig(args[0])
	logger.InitLogger(cfg.Logger)
	database, err := db.NewDB(cmd.Context(), cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close(database)

	session, user, err := api.CreateSession(cmd.Context(), database, args[1], createUser)
	if err != nil {
		return fmt.Errorf("can not issue token for %s: %w", args[1], err)
	}
	fmt.Printf("User:  %s (%s)\n", user.Email, user.ID)
	fmt.Printf("Token: %s\n", session.Token)
	return nil
}

func runEvents(cmd *cobra.Command, args []string) error {
	conn := apiconn.NewConnector(&config.Connection{
		Address: args[0],
		Token:   os.Getenv("HACKATHON_TOKEN"),
	})
	filter := &apiconn.EventsFilter{Count: 100, Page: 1}
	if len(args) > 1 {
		filter.Query = args[1]
	}
	list, err := conn.ListEvents(cmd.Context(), filter)
	if err != nil {
		return err
	}
	for _, event := range list.Events {
		fmt.Printf("%5d  %-10s  %s  %s\n", event.ID, event.Status, event.StartDate.Format("2006-01-02 15:04"), event.Name)
	}
	fmt.Printf("Total: %d, upcoming: %d, active: %d, completed: %d, cancelled: %d\n",
		list.Total, list.Counts["upcoming"], list.Counts["active"], list.Counts["completed"], list.Counts["cancelled"])
	return nil
}
