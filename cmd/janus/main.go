package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/janus-parse/janus/examples/routes"
	"github.com/janus-parse/janus/httpreq"
)

var log = commonlog.GetLogger("janus")

func main() {
	var verbose int

	rootCmd := &cobra.Command{
		Use:   "janus",
		Short: "Bidirectional URL routing demo",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbose, nil)
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(newMatchCmd())
	rootCmd.AddCommand(newURLCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newMatchCmd() *cobra.Command {
	var method string
	var data string

	cmd := &cobra.Command{
		Use:   "match <url>",
		Short: "Parse a URL into a route",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			httpRequest, err := http.NewRequest(strings.ToUpper(method), args[0], strings.NewReader(data))
			if err != nil {
				return fmt.Errorf("build request: %w", err)
			}

			req, err := httpreq.FromHTTP(httpRequest)
			if err != nil {
				return fmt.Errorf("convert request: %w", err)
			}

			log.Debugf("matching %s %s", req.Method, args[0])

			route, err := routes.Match(req)
			if err != nil {
				return fmt.Errorf("no route matched: %w", err)
			}

			fmt.Println(route)

			return nil
		},
	}

	cmd.Flags().StringVarP(&method, "method", "X", "GET", "request method")
	cmd.Flags().StringVarP(&data, "data", "d", "", "request body")

	return cmd
}

func newURLCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "url",
		Short: "Print a route back into a request",
	}

	cmd.AddCommand(newURLHomeCmd())
	cmd.AddCommand(newURLEpisodesCmd())
	cmd.AddCommand(newURLEpisodeCmd())
	cmd.AddCommand(newURLSearchCmd())
	cmd.AddCommand(newURLSignUpCmd())

	return cmd
}

func newURLHomeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "URL of the front page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return reportURL(routes.Home{})
		},
	}
}

func newURLEpisodesCmd() *cobra.Command {
	var limit int
	var offset int

	cmd := &cobra.Command{
		Use:   "episodes",
		Short: "URL of the episode listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			route := routes.Episodes{}
			if cmd.Flags().Changed("limit") {
				route.Limit = &limit
			}
			if cmd.Flags().Changed("offset") {
				route.Offset = &offset
			}

			return reportURL(route)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "page offset")

	return cmd
}

func newURLEpisodeCmd() *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:   "episode",
		Short: "URL of a single episode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return reportURL(routes.Episode{ID: id})
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "episode id")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func newURLSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "URL of a search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return reportURL(routes.Search{Query: args[0]})
		},
	}
}

func newURLSignUpCmd() *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "sign-up",
		Short: "URL and body of the sign-up request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return reportURL(routes.SignUp{User: routes.User{
				Email:    email,
				Password: password,
			}})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func reportURL(route routes.Route) error {
	req, err := routes.URL(route)
	if err != nil {
		return fmt.Errorf("print route: %w", err)
	}

	httpRequest, err := httpreq.ToHTTP(req)
	if err != nil {
		return fmt.Errorf("convert request: %w", err)
	}

	log.Debugf("printed %v", route)

	fmt.Printf("%s %s\n", httpRequest.Method, httpRequest.URL)
	if len(req.Body) > 0 {
		fmt.Println(string(req.Body))
	}

	return nil
}
